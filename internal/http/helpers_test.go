package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/navboard/internal/auth"
	"github.com/mrlokans/navboard/internal/dashboard"
	"github.com/mrlokans/navboard/internal/database"
	"github.com/mrlokans/navboard/internal/entities"
	"github.com/mrlokans/navboard/internal/setup"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	id, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}

func TestParseIDParam_Negative(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "-1"}}

	id, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"duplicate name", dashboard.ErrDuplicateName, http.StatusConflict, CodeDuplicateName},
		{"duplicate url", dashboard.ErrDuplicateURL, http.StatusConflict, CodeDuplicateURL},
		{"protected default", dashboard.ErrProtectedDefault, http.StatusForbidden, CodeProtectedDefault},
		{"category not found", dashboard.ErrCategoryNotFound, http.StatusNotFound, CodeCategoryNotFound},
		{"bookmark not found", dashboard.ErrBookmarkNotFound, http.StatusNotFound, CodeBookmarkNotFound},
		{"wrapped invalid input", fmt.Errorf("name: %w", dashboard.ErrInvalidInput), http.StatusBadRequest, CodeInvalidInput},
		{"empty credential", setup.ErrEmptyCredential, http.StatusBadRequest, CodeEmptyCredential},
		{"empty new credential", setup.ErrEmptyNewCredential, http.StatusBadRequest, CodeEmptyNewCredential},
		{"missing current", setup.ErrMissingCurrent, http.StatusBadRequest, CodeMissingCurrent},
		{"invalid current", setup.ErrInvalidCurrent, http.StatusBadRequest, CodeInvalidCurrent},
		{"password too long", auth.ErrPasswordTooLong, http.StatusBadRequest, CodeInvalidInput},
		{"store error", database.Wrap("list", errors.New("disk I/O error")), http.StatusServiceUnavailable, CodeStoreUnavailable},
		{"missing table", database.Wrap("list", errors.New("no such table: categories")), http.StatusConflict, CodeSchemaMissing},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := statusFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestRespondError_HidesStoreCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, database.Wrap("list", errors.New("disk I/O error at /var/lib/secret.db")), "list")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "secret.db")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, CodeStoreUnavailable, resp.Code)
}

func TestRespondError_ShowsDomainMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, dashboard.ErrDuplicateURL, "create bookmark")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dashboard.ErrDuplicateURL.Error(), resp.Error)
}

func TestCategoryRef_UnmarshalJSON(t *testing.T) {
	seven := uint(7)

	tests := []struct {
		name    string
		body    string
		set     bool
		want    *uint
		wantErr bool
	}{
		{"absent", `{}`, false, nil, false},
		{"null", `{"categoryId": null}`, true, nil, false},
		{"default sentinel", `{"categoryId": "default"}`, true, nil, false},
		{"empty string", `{"categoryId": ""}`, true, nil, false},
		{"number", `{"categoryId": 7}`, true, &seven, false},
		{"quoted number", `{"categoryId": "7"}`, true, &seven, false},
		{"word", `{"categoryId": "work"}`, false, nil, true},
		{"negative", `{"categoryId": -1}`, false, nil, true},
		{"object", `{"categoryId": {}}`, false, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req struct {
				CategoryID categoryRef `json:"categoryId"`
			}
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidCategoryRef)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.set, req.CategoryID.set)
			assert.Equal(t, tt.want, req.CategoryID.id)
		})
	}
}

func TestPublicFilters(t *testing.T) {
	work := uint(1)
	secret := uint(2)
	cats := []entities.Category{
		{ID: work, Name: "Work"},
		{ID: secret, Name: "Secret", IsPrivate: true},
	}
	bms := []entities.Bookmark{
		{ID: 10, Name: "public", CategoryID: &work},
		{ID: 11, Name: "private bookmark", CategoryID: &work, IsPrivate: true},
		{ID: 12, Name: "in private category", CategoryID: &secret},
		{ID: 13, Name: "unassigned"},
	}

	visibleCats := publicCategories(cats)
	require.Len(t, visibleCats, 1)
	assert.Equal(t, "Work", visibleCats[0].Name)

	visible := publicBookmarks(bms, cats)
	ids := make([]uint, 0, len(visible))
	for _, bm := range visible {
		ids = append(ids, bm.ID)
	}
	assert.Equal(t, []uint{10, 13}, ids)
}
