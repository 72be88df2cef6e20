package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCSRFSecret = []byte("test-secret-key-32-bytes-long!!!")

func newCSRFRouter(reached *bool) *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware(testCSRFSecret, false))
	router.GET("/api/categories", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.POST("/api/categories", func(c *gin.Context) {
		*reached = true
		c.Status(http.StatusCreated)
	})
	return router
}

func TestCSRFMiddleware_AllowsGETAndIssuesToken(t *testing.T) {
	var reached bool
	router := newCSRFRouter(&reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(CSRFTokenHeader))
}

func TestCSRFMiddleware_BlocksPOSTWithoutToken(t *testing.T) {
	var reached bool
	router := newCSRFRouter(&reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/categories", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"csrf_invalid"`)
	assert.False(t, reached, "handler must not run after a CSRF failure")
}

func TestCSRFMiddleware_AcceptsRoundTrippedToken(t *testing.T) {
	var reached bool
	router := newCSRFRouter(&reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	token := w.Header().Get(CSRFTokenHeader)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodPost, "/api/categories", nil)
	req.Header.Set(CSRFTokenHeader, token)
	for _, cookie := range w.Result().Cookies() {
		req.AddCookie(cookie)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, reached)
}

func TestGetCSRFToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetCSRFToken(c))

	c.Set(contextKeyCSRFToken, "test-token-123")
	assert.Equal(t, "test-token-123", GetCSRFToken(c))
}
