package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada-lists/internal/session"
	"github.com/Makepad-fr/tada-lists/internal/web"
)

const sweepInterval = 5 * time.Minute

func newServeCmd(app *App) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web app",
		Args:  exactArgs(0, "tada serve [--addr host:port]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				app.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func serve(ctx context.Context, app *App) error {
	cfg, logger := app.cfg, app.logger

	secret, err := session.ResolveSecret(cfg.SessionSecret)
	if err != nil {
		return fmt.Errorf("session secret: %w", err)
	}
	logger.Debug("session secret", "source", secret.Source)

	backend, err := session.OpenBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("session backend: %w", err)
	}
	sessions := session.NewManager(backend, cfg.TTL, logger)
	defer func() {
		if err := sessions.Close(); err != nil {
			logger.Warn("closing session backend", "err", err)
		}
	}()
	go sessions.RunSweeper(ctx, sweepInterval)

	gin.SetMode(gin.ReleaseMode)
	srv, err := web.NewServer(web.Options{
		Sessions:     sessions,
		Secret:       secret,
		Logger:       logger,
		CookieSecure: cfg.CookieSecure,
	})
	if err != nil {
		return fmt.Errorf("web server: %w", err)
	}
	logger.Info("starting", "backend", cfg.SessionBackend, "ttl", cfg.TTL)
	return srv.Run(ctx, cfg.Addr)
}
