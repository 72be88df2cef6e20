package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/navboard/internal/dashboard"
	"github.com/mrlokans/navboard/internal/http"
	"github.com/mrlokans/navboard/internal/setup"
)

// =============================================================================
// Dashboard Services
// =============================================================================

// CategoryStore implementations
var _ http.CategoryStore = (*dashboard.CategoryService)(nil)

// BookmarkStore implementations
var _ http.BookmarkStore = (*dashboard.BookmarkService)(nil)

// =============================================================================
// Setup
// =============================================================================

// SetupGate implementations
var _ http.SetupGate = (*setup.Gate)(nil)
