package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/marketplace-console/config"
	httpx "github.com/target/marketplace-console/internal/http"
)

// devTemplateDir is read live in development so template edits show without a rebuild.
const devTemplateDir = "internal/http/templates"

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
	// ErrCh receives a listen failure; nil only logs it.
	ErrCh chan<- error
}

// BuildHTTPHandler assembles the router with readiness checks and optional compression.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	if cfg.Services.Auth == nil {
		return nil, errors.New("http server requires auth, which requires redis")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	renderer, err := buildRenderer(appCfg.IsDev, logger)
	if err != nil {
		return nil, err
	}

	var compression *httpx.CompressionConfig
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		compression = &httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel, Logger: logger}
	}

	return httpx.NewRouter(httpx.RouterServices{
		Services:     cfg.Services.HTTP,
		Auth:         cfg.Services.Auth,
		CookieDomain: appCfg.HTTP.CookieDomain,
		Renderer:     renderer,
		Readiness:    readinessChecks(cfg.DB, cfg.RedisClient),
		Compression:  compression,
		Metrics:      cfg.Services.Observability.Sink(),
		Logger:       logger,
	})
}

// buildRenderer returns nil (embedded templates) outside development or when the source tree
// is not next to the binary.
func buildRenderer(isDev bool, logger *slog.Logger) (*httpx.TemplateRenderer, error) {
	if !isDev {
		return nil, nil //nolint:nilnil // router falls back to the embedded templates
	}
	if info, err := os.Stat(devTemplateDir); err != nil || !info.IsDir() {
		return nil, nil //nolint:nilnil // same fallback
	}
	logger.Info("loading templates from disk", "dir", devTemplateDir)
	r, err := httpx.NewTemplateRenderer(httpx.TemplateRendererConfig{
		TemplateFS: os.DirFS(devTemplateDir),
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("parse templates from %s: %w", devTemplateDir, err)
	}
	return r, nil
}

func readinessChecks(db *sql.DB, rdb redis.UniversalClient) map[string]httpx.ReadinessCheck {
	checks := map[string]httpx.ReadinessCheck{}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if db != nil {
		checks["postgres"] = db.PingContext
	}
	return checks
}

// StartHTTPServer builds the handler and starts listening in the background.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	handler, err := BuildHTTPHandler(cfg)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return startServer(logger, handler, cfg.Config.HTTP.Addr, cfg.ErrCh), nil
}

func startServer(logger *slog.Logger, handler http.Handler, addr string, errCh chan<- error) *http.Server {
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// CSV exports stream for a while.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if errCh != nil {
				select {
				case errCh <- fmt.Errorf("http server: %w", err):
				default:
				}
			}
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer stops accepting requests and waits for in-flight ones.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}
	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(parent, shutdownWaitTimeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}
	return nil
}
