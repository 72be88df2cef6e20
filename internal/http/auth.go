package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/navboard/internal/auth"
)

type AuthController struct {
	gate     SetupGate
	sessions *auth.SessionManager
	limiter  *auth.RateLimiter
}

func NewAuthController(gate SetupGate, sessions *auth.SessionManager, limiter *auth.RateLimiter) *AuthController {
	return &AuthController{gate: gate, sessions: sessions, limiter: limiter}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	LoginAt       *time.Time `json:"loginAt,omitempty"`
}

// Login starts an admin session when the password matches.
// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ip := c.ClientIP()
	if !ac.gate.VerifyAdminCredential(c.Request.Context(), req.Password) {
		requestLogger(c).Warn("admin login failed", zap.String("remote_ip", ip))
		if ac.limiter != nil {
			if locked, retryAfter := ac.limiter.RecordFailure(ip); locked {
				c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
				respondStatus(c, http.StatusTooManyRequests, "rate_limited", "too many login attempts")
				return
			}
		}
		respondStatus(c, http.StatusUnauthorized, CodeInvalidCredentials, "invalid password")
		return
	}

	if ac.limiter != nil {
		ac.limiter.RecordSuccess(ip)
	}
	if err := ac.sessions.CreateAdminSession(c.Request); err != nil {
		respondError(c, err, "create admin session")
		return
	}

	requestLogger(c).Info("admin logged in", zap.String("remote_ip", ip))
	respondSuccess(c, "logged in", nil)
}

// Logout ends the session. Logging out without a session succeeds.
// POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.sessions.DestroySession(c.Request); err != nil {
		respondError(c, err, "destroy session")
		return
	}
	respondSuccess(c, "logged out", nil)
}

// Session reports whether the caller is logged in.
// GET /api/auth/session
func (ac *AuthController) Session(c *gin.Context) {
	resp := SessionResponse{Authenticated: auth.IsAdmin(c)}
	if resp.Authenticated {
		if loginAt := ac.sessions.LoginAt(c.Request); !loginAt.IsZero() {
			resp.LoginAt = &loginAt
		}
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: resp})
}

// ChangePassword replaces the admin password. It needs an admin session,
// except for the first password while none is stored.
// PUT /api/auth/password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	if !auth.IsAdmin(c) {
		has, err := ac.gate.HasAdminCredential(ctx)
		if err != nil {
			respondError(c, err, "check admin credential")
			return
		}
		if has {
			respondStatus(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
	}

	if err := ac.gate.ChangeAdminCredential(ctx, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err, "change admin credential")
		return
	}

	if err := ac.sessions.CreateAdminSession(c.Request); err != nil {
		requestLogger(c).Error("failed to renew admin session", zap.Error(err))
	}

	respondSuccess(c, "password changed", nil)
}
