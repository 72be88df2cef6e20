package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/navboard/internal/auth"
	"github.com/mrlokans/navboard/internal/dashboard"
	"github.com/mrlokans/navboard/internal/entities"
)

type CategoriesController struct {
	store CategoryStore
}

func NewCategoriesController(store CategoryStore) *CategoriesController {
	return &CategoriesController{store: store}
}

type createCategoryRequest struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	IsPrivate bool   `json:"isPrivate"`
	IsVisible *bool  `json:"isVisible"`
}

// updateCategoryRequest fields left out of the body keep their stored value.
type updateCategoryRequest struct {
	Name      *string `json:"name"`
	Icon      *string `json:"icon"`
	IsVisible *bool   `json:"isVisible"`
	IsPrivate *bool   `json:"isPrivate"`
	Priority  *int    `json:"priority"`
}

func (r updateCategoryRequest) apply(cat *entities.Category) {
	if r.Name != nil {
		cat.Name = *r.Name
	}
	if r.Icon != nil {
		cat.Icon = *r.Icon
	}
	if r.IsVisible != nil {
		cat.IsVisible = *r.IsVisible
	}
	if r.IsPrivate != nil {
		cat.IsPrivate = *r.IsPrivate
	}
	if r.Priority != nil {
		cat.Priority = *r.Priority
	}
}

// List returns the categories, without private ones for anonymous callers.
// GET /api/categories
func (cc *CategoriesController) List(c *gin.Context) {
	cats := cc.store.ListCategories(c.Request.Context())
	if !auth.IsAdmin(c) {
		cats = publicCategories(cats)
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: cats})
}

// Create adds a category at the top of the list.
// POST /api/categories
func (cc *CategoriesController) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	cat, err := cc.store.CreateCategory(c.Request.Context(), dashboard.CreateCategoryInput{
		Name:      req.Name,
		Icon:      req.Icon,
		IsPrivate: req.IsPrivate,
		IsVisible: req.IsVisible,
	})
	if err != nil {
		respondError(c, err, "create category")
		return
	}

	respondCreated(c, "category created", cat)
}

// Update changes a category. The default category keeps its name, icon and
// public flag whatever the body says.
// PUT /api/categories/:id
func (cc *CategoriesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	current, err := cc.store.FindCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "update category")
		return
	}
	cat := *current
	req.apply(&cat)

	updated, err := cc.store.UpdateCategory(c.Request.Context(), cat)
	if err != nil {
		respondError(c, err, "update category")
		return
	}

	respondSuccess(c, "category updated", updated)
}

// Delete removes a category. Its bookmarks move to the default category, or
// are deleted along with it when withBookmarks=true.
// DELETE /api/categories/:id
func (cc *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if c.Query("withBookmarks") == "true" {
		removed, err := cc.store.DeleteCategoryWithBookmarks(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "delete category with bookmarks")
			return
		}
		respondSuccess(c, "category deleted", gin.H{"deletedBookmarks": removed})
		return
	}

	if err := cc.store.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete category")
		return
	}
	respondSuccess(c, "category deleted", nil)
}

// Reorder assigns priorities from the order of ids, first id highest.
// PUT /api/categories/order
func (cc *CategoriesController) Reorder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "ids must be a list of category ids")
		return
	}

	if err := cc.store.ReorderCategories(c.Request.Context(), req.IDs); err != nil {
		respondError(c, err, "reorder categories")
		return
	}
	respondSuccess(c, "categories reordered", nil)
}
