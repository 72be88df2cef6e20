package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/navboard/internal/auth"
	"github.com/mrlokans/navboard/internal/config"
	"github.com/mrlokans/navboard/internal/dashboard"
	"github.com/mrlokans/navboard/internal/database"
	http_controllers "github.com/mrlokans/navboard/internal/http"
	"github.com/mrlokans/navboard/internal/logger"
	"github.com/mrlokans/navboard/internal/metrics"
	"github.com/mrlokans/navboard/internal/setup"
)

// App holds the long-lived components shared by the server and the CLI.
type App struct {
	DB         *database.Database
	Categories *dashboard.CategoryService
	Bookmarks  *dashboard.BookmarkService
	Gate       *setup.Gate
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
}

// NewApp opens the store and builds the services on top of it. Metrics are
// created only when enabled in cfg.
func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)

	db, err := database.NewDatabase(cfg.Database, log.Named("database"))
	if err != nil {
		return nil, err
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	return &App{
		DB:         db,
		Categories: dashboard.NewCategoryService(db, log, m),
		Bookmarks:  dashboard.NewBookmarkService(db, log, m),
		Gate:       setup.NewGate(db, cfg.Auth, log, m),
		Metrics:    m,
		Logger:     log,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.DB.Close()
}

// Router wires the HTTP adapter: sessions in the same store, login rate
// limiting, and CSRF protection when a session secret is configured.
func (a *App) Router(cfg *config.Config, version string) (*gin.Engine, error) {
	sqlDB, err := a.DB.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session manager: %w", err)
	}

	csrfSecret := parseSecret(cfg.Auth.SessionSecret)
	if csrfSecret == nil {
		a.Logger.Warn("AUTH_SESSION_SECRET is not set, CSRF protection is disabled")
	}

	return http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       a.DB,
		CategoryStore:  a.Categories,
		BookmarkStore:  a.Bookmarks,
		Gate:           a.Gate,
		SessionManager: sessionManager,
		RateLimiter:    auth.NewRateLimiter(cfg.Auth),
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		Logger:         a.Logger,
		Metrics:        a.Metrics,
		Version:        version,
	}), nil
}

// parseSecret decodes a hex secret, falling back to the raw bytes.
func parseSecret(secret string) []byte {
	if secret == "" {
		return nil
	}
	if decoded, err := hex.DecodeString(secret); err == nil {
		return decoded
	}
	return []byte(secret)
}

// Serve runs srv on ln until ctx is cancelled, then shuts it down, waiting up
// to timeout for in-flight requests.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration, log *zap.Logger) error {
	log = logger.OrNop(log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server", zap.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("server exiting")
	return nil
}

// Run starts the dashboard server and blocks until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) error {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("starting navboard", zap.String("version", version))

	app, err := NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	state := app.Gate.State(context.Background())
	if !state.Ready() {
		log.Warn("setup is not complete, finish it through /api/setup or `navboard setup`",
			zap.String("state", string(state)))
	}

	router, err := app.Router(cfg, version)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	return Serve(ctx, srv, ln, timeout, log)
}
