package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/navboard/internal/auth"
	"github.com/mrlokans/navboard/internal/setup"
)

type SetupController struct {
	gate     SetupGate
	sessions *auth.SessionManager
}

func NewSetupController(gate SetupGate, sessions *auth.SessionManager) *SetupController {
	return &SetupController{gate: gate, sessions: sessions}
}

type SetupStatusResponse struct {
	State         setup.State    `json:"state"`
	SetupComplete bool           `json:"setupComplete"`
	Authenticated bool           `json:"authenticated"`
	Branding      setup.Branding `json:"branding"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

// Status reports the setup state for the first-run wizard.
// GET /api/setup/status
func (sc *SetupController) Status(c *gin.Context) {
	ctx := c.Request.Context()
	state := sc.gate.State(ctx)

	branding, err := sc.gate.Branding(ctx)
	if err != nil {
		requestLogger(c).Warn("serving default branding", zap.Error(err))
		branding = setup.DefaultBranding()
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: SetupStatusResponse{
		State:         state,
		SetupComplete: state.Ready(),
		Authenticated: auth.IsAdmin(c),
		Branding:      branding,
	}})
}

// VerifyConnection probes the store.
// POST /api/setup/verify
func (sc *SetupController) VerifyConnection(c *gin.Context) {
	if err := sc.gate.VerifyConnection(c.Request.Context()); err != nil {
		respondError(c, err, "verify connection")
		return
	}
	respondSuccess(c, "database connection verified", nil)
}

// InitializeSchema creates the tables and seeds defaults. Safe to repeat.
// POST /api/setup/schema
func (sc *SetupController) InitializeSchema(c *gin.Context) {
	if err := sc.gate.InitializeSchema(c.Request.Context()); err != nil {
		respondError(c, err, "initialize schema")
		return
	}
	respondSuccess(c, "database schema initialized", nil)
}

// SetAdmin stores the first admin password and logs the caller in. It is
// refused once setup has completed; use PUT /api/auth/password instead.
// POST /api/setup/admin
func (sc *SetupController) SetAdmin(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	if sc.gate.IsSetupComplete(ctx) {
		respondStatus(c, http.StatusConflict, CodeSetupComplete, "setup has already been completed")
		return
	}

	if err := sc.gate.SetAdminCredential(ctx, req.Password); err != nil {
		respondError(c, err, "set admin credential")
		return
	}

	if sc.sessions != nil {
		if err := sc.sessions.CreateAdminSession(c.Request); err != nil {
			requestLogger(c).Error("failed to create admin session", zap.Error(err))
		}
	}

	respondSuccess(c, "admin password set", nil)
}

// Reset forgets the admin password and the logo and ends the session.
// Categories and bookmarks are kept.
// POST /api/setup/reset
func (sc *SetupController) Reset(c *gin.Context) {
	if err := sc.gate.ResetSetupState(c.Request.Context()); err != nil {
		respondError(c, err, "reset setup state")
		return
	}

	if sc.sessions != nil {
		if err := sc.sessions.DestroySession(c.Request); err != nil {
			requestLogger(c).Warn("failed to destroy session", zap.Error(err))
		}
	}

	respondSuccess(c, "setup state reset", nil)
}

// SetupOrAdmin lets a request through while setup is incomplete, and
// afterwards only with an admin session.
func (sc *SetupController) SetupOrAdmin(c *gin.Context) {
	if auth.IsAdmin(c) || !sc.gate.IsSetupComplete(c.Request.Context()) {
		c.Next()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error: "authentication required",
		Code:  "unauthorized",
	})
}
