// Package database provides the data access layer for the dashboard.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Pool setup, schema migration, transactions
//	├── errors.go        # Store error taxonomy and constraint detection
//	├── categories/      # Category rows, default-category lookup
//	├── bookmarks/       # Bookmark rows, orphan re-homing
//	└── settings/        # config key/value table
//
// # Using Sub-packages
//
// Every repository is built on a *gorm.DB. Passing the transaction handle
// scopes the repository to that transaction:
//
//	db, err := database.NewDatabase(cfg.Database, log)
//
//	err = db.Transaction(ctx, func(tx *gorm.DB) error {
//		cats := categories.NewRepository(tx)
//		max, err := cats.MaxPriority()
//		...
//	})
//
// Repositories return raw gorm errors. Callers classify them with Wrap and
// IsUniqueViolation.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Register the entity in Database.Migrate
package database
