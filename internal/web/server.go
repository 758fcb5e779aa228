package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/Makepad-fr/tada-lists/internal/session"
)

//go:embed templates/*.tmpl static/*
var assets embed.FS

// Options configures a Server.
type Options struct {
	Sessions     *session.Manager
	Secret       *session.Secret
	Logger       *log.Logger
	CookieSecure bool
}

// Server is the tada web front end.
type Server struct {
	sessions     *session.Manager
	secret       *session.Secret
	logger       *log.Logger
	cookieSecure bool
	router       *gin.Engine
}

// NewServer creates the server and registers its routes.
func NewServer(opts Options) (*Server, error) {
	tmpl, err := template.ParseFS(assets, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(opts.Logger))
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		sessions:     opts.Sessions,
		secret:       opts.Secret,
		logger:       opts.Logger,
		cookieSecure: opts.CookieSecure,
		router:       router,
	}

	router.StaticFileFS("/javascripts/app.js", "app.js", http.FS(static))
	router.StaticFileFS("/stylesheets/app.css", "app.css", http.FS(static))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	app := router.Group("/", s.sessionCookie)
	{
		app.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/lists") })
		app.GET("/lists", s.handle(s.handleLists))
		app.GET("/lists/new", s.handle(s.handleNewList))
		app.POST("/lists", s.handle(s.handleCreateList))
		app.GET("/lists/:id", s.handle(s.handleShowList))
		app.GET("/lists/:id/edit", s.handle(s.handleEditList))
		app.POST("/lists/:id", s.handle(s.handleRenameList))
		app.POST("/lists/:id/destroy", s.handle(s.handleDeleteList))
		app.POST("/lists/:id/complete_all", s.handle(s.handleCompleteAll))
		app.GET("/lists/:id/export.pdf", s.handle(s.handleExportList))
		app.POST("/lists/:id/todos", s.handle(s.handleAddTodo))
		app.POST("/lists/:id/todos/:todo_id", s.handle(s.handleUpdateTodo))
		app.POST("/lists/:id/todos/:todo_id/destroy", s.handle(s.handleDeleteTodo))
	}

	return s, nil
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		}
		switch {
		case status >= 500:
			logger.Error("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
