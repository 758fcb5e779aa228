package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const secretFileName = "session_secret"

// Secret signs session ids stored in cookies.
type Secret struct {
	Key    []byte
	Source string // "config" | "file" | "generated"
}

func secretDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "tada"), nil
}

// ResolveSecret picks the signing key: the configured value when set
// (TADA_SESSION_SECRET or session_secret), else the key file in the user
// config dir, else a freshly generated key that is written to that file.
func ResolveSecret(configured string) (*Secret, error) {
	if v := strings.TrimSpace(configured); v != "" {
		return &Secret{Key: []byte(v), Source: "config"}, nil
	}

	dir, err := secretDir()
	if err != nil {
		return nil, err
	}
	p := filepath.Join(dir, secretFileName)
	b, err := os.ReadFile(p)
	if err == nil {
		key, err := hex.DecodeString(strings.TrimSpace(string(b)))
		if err != nil || len(key) == 0 {
			return nil, fmt.Errorf("parse %s: invalid key", p)
		}
		return &Secret{Key: key, Source: "file"}, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read secret: %w", err)
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	// owner-only, like any other credential
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(p, []byte(hex.EncodeToString(key)+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("write secret: %w", err)
	}
	return &Secret{Key: key, Source: "generated"}, nil
}

func (s *Secret) mac(id string) string {
	h := hmac.New(sha256.New, s.Key)
	h.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Sign returns the cookie value for id.
func (s *Secret) Sign(id string) string {
	return id + "." + s.mac(id)
}

// Verify returns the session id carried by a cookie value. ok is false
// for tampered, foreign or malformed values.
func (s *Secret) Verify(value string) (id string, ok bool) {
	id, sig, found := strings.Cut(value, ".")
	if !found || uuid.Validate(id) != nil {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.mac(id))) {
		return "", false
	}
	return id, true
}
