// Package bookmarks provides database operations for dashboard bookmarks.
//
// Methods return raw gorm errors; lookups return (nil, nil) when the row
// does not exist.
//
// # Usage
//
//	repo := bookmarks.NewRepository(tx)
//	taken, err := repo.URLTaken("https://example.com", 0)
package bookmarks

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/navboard/internal/entities"
)

// Repository handles all bookmark database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new bookmarks repository. db may be a transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every bookmark, highest priority first, then newest first.
func (r *Repository) List() ([]entities.Bookmark, error) {
	var bms []entities.Bookmark
	err := r.db.Order("priority DESC").Order("created_at DESC").Order("id DESC").Find(&bms).Error
	return bms, err
}

// FindByID retrieves a bookmark by id.
func (r *Repository) FindByID(id uint) (*entities.Bookmark, error) {
	var bm entities.Bookmark
	return first(r.db.Where("id = ?", id), &bm)
}

// URLTaken reports whether a bookmark other than excludeID uses url.
func (r *Repository) URLTaken(url string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Bookmark{}).
		Where("url = ? AND id <> ?", url, excludeID).
		Count(&count).Error
	return count > 0, err
}

// MaxPriority returns the highest priority in use, or 0 for an empty table.
func (r *Repository) MaxPriority() (int, error) {
	var highest int
	err := r.db.Model(&entities.Bookmark{}).Select("COALESCE(MAX(priority), 0)").Scan(&highest).Error
	return highest, err
}

// Create inserts a bookmark without touching the referenced category row.
func (r *Repository) Create(bm *entities.Bookmark) error {
	return r.db.Omit(clause.Associations).Create(bm).Error
}

// Update writes every column of bm, including zero values and a nil category.
func (r *Repository) Update(bm *entities.Bookmark) error {
	return r.db.Model(bm).
		Select("name", "url", "category_id", "description", "is_private", "priority", "updated_at").
		Updates(bm).Error
}

// Delete removes a bookmark by id and returns the number of rows removed.
func (r *Repository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&entities.Bookmark{}, id)
	return result.RowsAffected, result.Error
}

// DeleteByCategory removes every bookmark of a category.
func (r *Repository) DeleteByCategory(categoryID uint) (int64, error) {
	result := r.db.Where("category_id = ?", categoryID).Delete(&entities.Bookmark{})
	return result.RowsAffected, result.Error
}

// AdoptOrphans points every bookmark without a category at categoryID.
func (r *Repository) AdoptOrphans(categoryID uint) (int64, error) {
	result := r.db.Model(&entities.Bookmark{}).
		Where("category_id IS NULL").
		Update("category_id", categoryID)
	return result.RowsAffected, result.Error
}

func first(q *gorm.DB, bm *entities.Bookmark) (*entities.Bookmark, error) {
	err := q.First(bm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return bm, nil
}
