package http

import (
	"context"

	"github.com/mrlokans/navboard/internal/dashboard"
	"github.com/mrlokans/navboard/internal/entities"
	"github.com/mrlokans/navboard/internal/setup"
)

// This file consolidates the service interfaces used by HTTP controllers.
// Production wiring passes the dashboard services and the setup gate.

// CategoryStore is the category surface of the dashboard.
type CategoryStore interface {
	ListCategories(ctx context.Context) []entities.Category
	FindCategory(ctx context.Context, id uint) (*entities.Category, error)
	CreateCategory(ctx context.Context, in dashboard.CreateCategoryInput) (*entities.Category, error)
	UpdateCategory(ctx context.Context, cat entities.Category) (*entities.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	DeleteCategoryWithBookmarks(ctx context.Context, id uint) (int64, error)
	ReorderCategories(ctx context.Context, ids []uint) error
}

// BookmarkStore is the bookmark surface of the dashboard.
type BookmarkStore interface {
	ListBookmarks(ctx context.Context) []entities.Bookmark
	FindBookmark(ctx context.Context, id uint) (*entities.Bookmark, error)
	CreateBookmark(ctx context.Context, in dashboard.CreateBookmarkInput) (*entities.Bookmark, error)
	UpdateBookmark(ctx context.Context, bm entities.Bookmark) (*entities.Bookmark, error)
	DeleteBookmark(ctx context.Context, id uint) error
	DeleteBookmarksByCategoryID(ctx context.Context, categoryID *uint) (int64, error)
	ReorderBookmarks(ctx context.Context, ids []uint) error
}

// SetupGate drives first-run configuration and the admin credential.
type SetupGate interface {
	State(ctx context.Context) setup.State
	VerifyConnection(ctx context.Context) error
	InitializeSchema(ctx context.Context) error
	SetAdminCredential(ctx context.Context, password string) error
	VerifyAdminCredential(ctx context.Context, password string) bool
	ChangeAdminCredential(ctx context.Context, current, next string) error
	HasAdminCredential(ctx context.Context) (bool, error)
	ResetSetupState(ctx context.Context) error
	IsSetupComplete(ctx context.Context) bool
	Branding(ctx context.Context) (setup.Branding, error)
	SetBranding(ctx context.Context, b setup.Branding) (setup.Branding, error)
}
