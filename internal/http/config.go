package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/navboard/internal/auth"
	"github.com/mrlokans/navboard/internal/database"
	"github.com/mrlokans/navboard/internal/metrics"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database      *database.Database
	CategoryStore CategoryStore
	BookmarkStore BookmarkStore
	Gate          SetupGate

	// Authentication. Without a session manager nobody can log in and
	// every mutation answers 401.
	SessionManager *auth.SessionManager
	RateLimiter    *auth.RateLimiter
	CSRFSecret     []byte // CSRF protection is on when set
	SecureCookies  bool

	// Observability
	Logger  *zap.Logger
	Metrics *metrics.Metrics // nil disables /metrics

	// Application info
	Version string
}
