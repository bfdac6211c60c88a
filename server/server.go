package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/strangelove-ventures/ata-devtool/form"
	"github.com/strangelove-ventures/ata-devtool/relayer"
	"github.com/strangelove-ventures/ata-devtool/types"
)

const (
	sessionCookie  = "ata_session"
	evictionPeriod = time.Minute
	shutdownGrace  = 5 * time.Second
)

//go:embed templates/*.html
var templateFS embed.FS

// Server serves the ATA form page and its JSON API.
type Server struct {
	cfg      types.ServerSettings
	logger   log.Logger
	sessions *SessionStore
	engine   *gin.Engine
}

func New(cfg types.ServerSettings, adapter form.Adapter, logger log.Logger, metrics *relayer.PromMetrics) (*Server, error) {
	logger = logger.With("component", "server")

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("unable to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("unable to set trusted proxies: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		sessions: NewSessionStore(adapter, time.Duration(cfg.SessionTTL)*time.Second, logger, metrics),
		engine:   router,
	}

	router.GET("/", s.getIndex)
	router.POST("/", s.postIndex)
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/api/tokens", s.getTokens)
	router.POST("/api/submit", s.postSubmit)

	return s, nil
}

// Handler is the gin engine wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	if len(s.cfg.AllowedOrigins) == 0 {
		return s.engine
	}
	return cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(s.engine)
}

func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.sessions.StartEviction(ctx, evictionPeriod)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving ATA form", "address", s.cfg.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("unable to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}

func requestLogger(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("Handled request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
