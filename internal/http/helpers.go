package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/navboard/internal/auth"
	"github.com/mrlokans/navboard/internal/dashboard"
	"github.com/mrlokans/navboard/internal/database"
	"github.com/mrlokans/navboard/internal/setup"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is the envelope for every successful mutation.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Error codes
const (
	CodeInvalidInput       = "invalid_input"
	CodeDuplicateName      = "duplicate_name"
	CodeDuplicateURL       = "duplicate_url"
	CodeProtectedDefault   = "protected_default"
	CodeCategoryNotFound   = "category_not_found"
	CodeBookmarkNotFound   = "bookmark_not_found"
	CodeEmptyCredential    = "empty_credential"
	CodeEmptyNewCredential = "empty_new_credential"
	CodeMissingCurrent     = "missing_current"
	CodeInvalidCurrent     = "invalid_current"
	CodeInvalidCredentials = "invalid_credentials"
	CodeSchemaMissing      = "schema_missing"
	CodeStoreUnavailable   = "store_unavailable"
	CodeSetupRequired      = "setup_required"
	CodeSetupComplete      = "setup_complete"
	CodeInternal           = "internal_error"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// First match wins.
var errorMappings = []errorMapping{
	{dashboard.ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput},
	{dashboard.ErrDuplicateName, http.StatusConflict, CodeDuplicateName},
	{dashboard.ErrDuplicateURL, http.StatusConflict, CodeDuplicateURL},
	{dashboard.ErrProtectedDefault, http.StatusForbidden, CodeProtectedDefault},
	{dashboard.ErrCategoryNotFound, http.StatusNotFound, CodeCategoryNotFound},
	{dashboard.ErrBookmarkNotFound, http.StatusNotFound, CodeBookmarkNotFound},
	{setup.ErrEmptyCredential, http.StatusBadRequest, CodeEmptyCredential},
	{setup.ErrEmptyNewCredential, http.StatusBadRequest, CodeEmptyNewCredential},
	{setup.ErrMissingCurrent, http.StatusBadRequest, CodeMissingCurrent},
	{setup.ErrInvalidCurrent, http.StatusBadRequest, CodeInvalidCurrent},
	{auth.ErrPasswordTooLong, http.StatusBadRequest, CodeInvalidInput},
	{database.ErrSchemaMissing, http.StatusConflict, CodeSchemaMissing},
	{database.ErrStoreUnavailable, http.StatusServiceUnavailable, CodeStoreUnavailable},
}

// statusFor maps an error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

// --- Error Response Helpers ---

// respondError translates err into the error envelope. Store and internal
// failures are logged and reported without their cause.
func respondError(c *gin.Context, err error, context string) {
	status, code := statusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError || code == CodeSchemaMissing {
		requestLogger(c).Error("request failed", zap.String("context", context), zap.Error(err))
		message = http.StatusText(status)
		if code == CodeSchemaMissing {
			message = "database schema is not initialized"
		}
	}
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeInvalidInput})
}

// respondStatus sends an error envelope with an explicit status and code.
func respondStatus(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK envelope with a message and optional data.
func respondSuccess(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: message, Data: data})
}

// respondCreated sends a 201 Created envelope.
func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// orderRequest is the body of both reorder endpoints.
type orderRequest struct {
	IDs []uint `json:"ids"`
}
