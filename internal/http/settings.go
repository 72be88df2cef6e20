package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/navboard/internal/setup"
)

type SettingsController struct {
	gate SetupGate
}

func NewSettingsController(gate SetupGate) *SettingsController {
	return &SettingsController{gate: gate}
}

// GetLogo returns the dashboard logo.
// GET /api/settings/logo
func (sc *SettingsController) GetLogo(c *gin.Context) {
	branding, err := sc.gate.Branding(c.Request.Context())
	if err != nil {
		respondError(c, err, "get logo")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: branding})
}

// UpdateLogo replaces the logo. Empty fields reset to the defaults.
// PUT /api/settings/logo
func (sc *SettingsController) UpdateLogo(c *gin.Context) {
	var req setup.Branding
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	branding, err := sc.gate.SetBranding(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "update logo")
		return
	}
	respondSuccess(c, "logo updated", branding)
}
