// Package auth provides admin authentication for the dashboard.
//
// There are no user accounts. A single admin password, hashed with bcrypt
// and stored in the config table, unlocks mutations. Logging in puts an
// admin flag into a server-side session (scs, stored in the sessions table
// of the dashboard database).
//
// # Configuration
//
//	AUTH_BCRYPT_COST=10            # bcrypt cost factor
//	AUTH_SESSION_LIFETIME=24h      # Session duration
//	AUTH_SESSION_SECRET=<hex>      # Enables CSRF protection when set
//	AUTH_SECURE_COOKIES=true       # HTTPS-only cookies
//	AUTH_MAX_LOGIN_ATTEMPTS=5      # Failed logins per IP before lockout
//
// # Usage
//
//	sm, err := auth.NewSessionManager(sqlDB, cfg.Auth)
//	router.Use(sm.SessionLoadSave(), sm.LoadAdmin())
//	router.POST("/api/categories", auth.RequireAdmin(), handler)
//
// Check the admin flag in handlers:
//
//	if auth.IsAdmin(c) { ... }
package auth
