package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/navboard/internal/auth"
	"github.com/mrlokans/navboard/internal/dashboard"
	"github.com/mrlokans/navboard/internal/entities"
)

// DefaultCategoryRef is the categoryId clients send for the default category.
const DefaultCategoryRef = "default"

var errInvalidCategoryRef = errors.New("categoryId must be a number, null or \"default\"")

// categoryRef decodes a bookmark's categoryId. null, "" and "default" select
// the default category; numbers, bare or quoted, select a real category.
type categoryRef struct {
	set bool
	id  *uint
}

func (r *categoryRef) UnmarshalJSON(b []byte) error {
	r.set = true
	r.id = nil

	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s == "" || s == DefaultCategoryRef {
			return nil
		}
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return errInvalidCategoryRef
		}
		id := uint(n)
		r.id = &id
		return nil
	}

	var n uint
	if err := json.Unmarshal(b, &n); err != nil {
		return errInvalidCategoryRef
	}
	r.id = &n
	return nil
}

type BookmarksController struct {
	store      BookmarkStore
	categories CategoryStore
}

func NewBookmarksController(store BookmarkStore, categories CategoryStore) *BookmarksController {
	return &BookmarksController{store: store, categories: categories}
}

type createBookmarkRequest struct {
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	CategoryID  categoryRef `json:"categoryId"`
	Description string      `json:"description"`
	IsPrivate   bool        `json:"isPrivate"`
}

// updateBookmarkRequest fields left out of the body keep their stored value.
type updateBookmarkRequest struct {
	Name        *string     `json:"name"`
	URL         *string     `json:"url"`
	CategoryID  categoryRef `json:"categoryId"`
	Description *string     `json:"description"`
	IsPrivate   *bool       `json:"isPrivate"`
	Priority    *int        `json:"priority"`
}

func (r updateBookmarkRequest) apply(bm *entities.Bookmark) {
	if r.Name != nil {
		bm.Name = *r.Name
	}
	if r.URL != nil {
		bm.URL = *r.URL
	}
	if r.CategoryID.set {
		bm.CategoryID = r.CategoryID.id
	}
	if r.Description != nil {
		bm.Description = *r.Description
	}
	if r.IsPrivate != nil {
		bm.IsPrivate = *r.IsPrivate
	}
	if r.Priority != nil {
		bm.Priority = *r.Priority
	}
}

// List returns the bookmarks. Anonymous callers don't see private bookmarks
// or bookmarks in private categories.
// GET /api/bookmarks
func (bc *BookmarksController) List(c *gin.Context) {
	ctx := c.Request.Context()
	bms := bc.store.ListBookmarks(ctx)
	if !auth.IsAdmin(c) {
		bms = publicBookmarks(bms, bc.categories.ListCategories(ctx))
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: bms})
}

// Create adds a bookmark at the top of the list.
// POST /api/bookmarks
func (bc *BookmarksController) Create(c *gin.Context) {
	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindMessage(err))
		return
	}

	bm, err := bc.store.CreateBookmark(c.Request.Context(), dashboard.CreateBookmarkInput{
		Name:        req.Name,
		URL:         req.URL,
		CategoryID:  req.CategoryID.id,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		respondError(c, err, "create bookmark")
		return
	}

	respondCreated(c, "bookmark created", bm)
}

// Update changes a bookmark.
// PUT /api/bookmarks/:id
func (bc *BookmarksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindMessage(err))
		return
	}

	current, err := bc.store.FindBookmark(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "update bookmark")
		return
	}
	bm := *current
	req.apply(&bm)

	updated, err := bc.store.UpdateBookmark(c.Request.Context(), bm)
	if err != nil {
		respondError(c, err, "update bookmark")
		return
	}

	respondSuccess(c, "bookmark updated", updated)
}

// Delete removes a bookmark. Deleting a missing id succeeds.
// DELETE /api/bookmarks/:id
func (bc *BookmarksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.DeleteBookmark(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete bookmark")
		return
	}
	respondSuccess(c, "bookmark deleted", nil)
}

// DeleteByCategory removes every bookmark of a category. The default
// category is refused and reports zero deletions.
// DELETE /api/categories/:id/bookmarks
func (bc *BookmarksController) DeleteByCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	removed, err := bc.store.DeleteBookmarksByCategoryID(c.Request.Context(), &id)
	if err != nil {
		respondError(c, err, "delete bookmarks by category")
		return
	}
	respondSuccess(c, "bookmarks deleted", gin.H{"deletedBookmarks": removed})
}

// Reorder assigns priorities from the order of ids, first id highest.
// PUT /api/bookmarks/order
func (bc *BookmarksController) Reorder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "ids must be a list of bookmark ids")
		return
	}

	if err := bc.store.ReorderBookmarks(c.Request.Context(), req.IDs); err != nil {
		respondError(c, err, "reorder bookmarks")
		return
	}
	respondSuccess(c, "bookmarks reordered", nil)
}

func bindMessage(err error) string {
	if errors.Is(err, errInvalidCategoryRef) {
		return errInvalidCategoryRef.Error()
	}
	return "invalid request body"
}
