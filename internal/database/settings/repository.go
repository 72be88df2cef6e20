// Package settings provides database operations for the config key/value table.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	value, found, err := repo.Get(entities.ConfigKeySetupCompleted)
package settings

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/navboard/internal/entities"
)

// Repository handles all config database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository. db may be a transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves a value by key. found is false when the key is absent.
func (r *Repository) Get(key string) (value string, found bool, err error) {
	var entry entities.ConfigEntry
	err = r.db.Where("config_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// GetOrDefault returns the stored value, or fallback when the key is absent or empty.
func (r *Repository) GetOrDefault(key, fallback string) (string, error) {
	value, found, err := r.Get(key)
	if err != nil {
		return fallback, err
	}
	if !found || value == "" {
		return fallback, nil
	}
	return value, nil
}

// Set creates or replaces a value.
func (r *Repository) Set(key, value string) error {
	entry := entities.ConfigEntry{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"config_value"}),
	}).Create(&entry).Error
}

// SetIfAbsent stores value only when key has no entry yet. Returns whether it wrote.
func (r *Repository) SetIfAbsent(key, value string) (bool, error) {
	entry := entities.ConfigEntry{Key: key, Value: value}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the given keys. Missing keys are not an error.
func (r *Repository) Delete(keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	result := r.db.Where("config_key IN ?", keys).Delete(&entities.ConfigEntry{})
	return result.RowsAffected, result.Error
}

// All returns every entry as a map.
func (r *Repository) All() (map[string]string, error) {
	var entries []entities.ConfigEntry
	if err := r.db.Order("config_key").Find(&entries).Error; err != nil {
		return nil, err
	}
	values := make(map[string]string, len(entries))
	for _, e := range entries {
		values[e.Key] = e.Value
	}
	return values, nil
}
