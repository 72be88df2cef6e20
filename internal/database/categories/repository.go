// Package categories provides database operations for dashboard categories.
//
// Methods return raw gorm errors; lookups return (nil, nil) when the row
// does not exist.
//
// # Usage
//
//	repo := categories.NewRepository(tx)
//	def, err := repo.FindDefault()
package categories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/navboard/internal/entities"
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository. db may be a transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every category, highest priority first, ties by name.
func (r *Repository) List() ([]entities.Category, error) {
	var cats []entities.Category
	err := r.db.Order("priority DESC").Order("name ASC").Find(&cats).Error
	return cats, err
}

// FindByID retrieves a category by id.
func (r *Repository) FindByID(id uint) (*entities.Category, error) {
	var cat entities.Category
	return first(r.db.Where("id = ?", id), &cat)
}

// FindByName retrieves a category by its exact name.
func (r *Repository) FindByName(name string) (*entities.Category, error) {
	var cat entities.Category
	return first(r.db.Where("name = ?", name), &cat)
}

// FindDefault retrieves the default category, matched by name and icon.
func (r *Repository) FindDefault() (*entities.Category, error) {
	var cat entities.Category
	return first(r.db.Where("name = ? AND icon = ?", entities.DefaultCategoryName, entities.DefaultIcon), &cat)
}

// NameTaken reports whether a category other than excludeID uses name.
func (r *Repository) NameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Category{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

// MaxPriority returns the highest priority in use, or 0 for an empty table.
func (r *Repository) MaxPriority() (int, error) {
	var highest int
	err := r.db.Model(&entities.Category{}).Select("COALESCE(MAX(priority), 0)").Scan(&highest).Error
	return highest, err
}

// Create inserts a category. The store assigns its id and timestamps.
func (r *Repository) Create(cat *entities.Category) error {
	return r.db.Create(cat).Error
}

// Update writes every column of cat, including zero values.
func (r *Repository) Update(cat *entities.Category) error {
	return r.db.Model(cat).
		Select("name", "icon", "is_visible", "is_private", "priority", "updated_at").
		Updates(cat).Error
}

// Delete removes a category by id and returns the number of rows removed.
func (r *Repository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&entities.Category{}, id)
	return result.RowsAffected, result.Error
}

func first(q *gorm.DB, cat *entities.Category) (*entities.Category, error) {
	err := q.First(cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}
