package database

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/navboard/internal/config"
	"github.com/mrlokans/navboard/internal/entities"
)

// schemaTables are the tables InitializeSchema creates. HasSchema requires all of them.
var schemaTables = []string{"config", "categories", "bookmarks"}

// Database owns the pooled store handle. It is constructed explicitly at
// startup and released with Close.
type Database struct {
	DB     *gorm.DB
	path   string
	logger *zap.Logger
}

func NewDatabase(cfg config.Database, log *zap.Logger) (*Database, error) {
	if log == nil {
		log = zap.NewNop()
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(buildDSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = config.DefaultMaxOpenConns
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(min(cfg.MaxIdleConns, maxOpen))
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Info("database opened",
		zap.String("path", cfg.Path),
		zap.Int("max_open_conns", maxOpen),
	)

	return &Database{DB: db, path: cfg.Path, logger: log}, nil
}

// buildDSN enables foreign keys and immediate transactions on every pooled
// connection. BEGIN IMMEDIATE takes the write lock up front, so two
// transactions can't both pass a uniqueness check before either writes.
func buildDSN(cfg config.Database) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_journal_mode", "WAL")
	params.Set("_txlock", "immediate")
	if cfg.BusyTimeout > 0 {
		params.Set("_busy_timeout", strconv.FormatInt(cfg.BusyTimeout.Milliseconds(), 10))
	}
	return cfg.Path + "?" + params.Encode()
}

func (d *Database) Path() string {
	return d.path
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that a pooled connection can reach the store.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return Wrap("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return Wrap("ping", err)
	}
	return nil
}

// HasSchema reports whether all dashboard tables exist.
func (d *Database) HasSchema(ctx context.Context) (bool, error) {
	var count int64
	err := d.DB.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ?", schemaTables).
		Scan(&count).Error
	if err != nil {
		return false, Wrap("check schema", err)
	}
	return count == int64(len(schemaTables)), nil
}

// Migrate creates the dashboard tables if they don't exist. Safe to call repeatedly.
func (d *Database) Migrate(ctx context.Context) error {
	err := d.DB.WithContext(ctx).AutoMigrate(
		&entities.ConfigEntry{},
		&entities.Category{},
		&entities.Bookmark{},
	)
	if err != nil {
		return Wrap("migrate", err)
	}
	d.logger.Info("database schema ready", zap.String("path", d.path))
	return nil
}

// Transaction runs fn inside one transaction. The connection goes back to the
// pool on commit, rollback, and panic.
func (d *Database) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.DB.WithContext(ctx).Transaction(fn)
}
