package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// projectFiles are looked up in the working directory, in order.
var projectFiles = []string{"tada.toml", ".tada.toml", "tada.yaml", "tada.yml"}

// Load builds the configuration in priority order:
// 1. Defaults
// 2. Config file (path if given, else the first project file found, else
//    the user config file)
// 3. Environment variables
func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	file := path
	if file == "" {
		file = findConfigFile()
	}
	if file != "" {
		if err := loadConfigFile(cfg, file); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", file, err)
		}
		cfg.File = file
	}

	loadFromEnv(cfg)

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	for _, name := range projectFiles {
		if fileExists(name) {
			return name
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "tada", "config.toml")
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func loadConfigFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(b), cfg)
		if err != nil {
			return fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
	default:
		return errors.New("unsupported config format (want .toml, .yaml or .yml)")
	}
	return nil
}
