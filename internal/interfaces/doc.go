// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Service Interfaces (consumed by the HTTP adapter)
//
//   - CategoryStore: category CRUD and ordering (internal/http/stores.go)
//   - BookmarkStore: bookmark CRUD, ordering and bulk delete (internal/http/stores.go)
//   - SetupGate: first-run state, admin credential and logo (internal/http/stores.go)
//
// The dashboard services and the setup gate implement them. Controllers
// depend only on the interfaces, so tests can swap in fakes.
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., bookmark tags):
//
//  1. Create sub-package: internal/database/tags/
//
//  2. Define a transaction-scoped repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Compose it inside a service transaction in internal/dashboard:
//
//     err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
//         return tags.NewRepository(tx).Attach(bookmarkID, tagID)
//     })
//
//  4. Expose the operation through an interface in internal/http/stores.go
//     and add a compile-time check to checks.go.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
