package dashboard

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/navboard/internal/database"
	"github.com/mrlokans/navboard/internal/database/bookmarks"
	"github.com/mrlokans/navboard/internal/database/categories"
	"github.com/mrlokans/navboard/internal/entities"
	"github.com/mrlokans/navboard/internal/metrics"
	"github.com/mrlokans/navboard/internal/ordering"
)

// CreateBookmarkInput holds the caller-controlled fields of a new bookmark.
type CreateBookmarkInput struct {
	Name        string
	URL         string
	CategoryID  *uint // nil files the bookmark under the default category
	Description string
	IsPrivate   bool
}

type BookmarkService struct {
	db      *database.Database
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewBookmarkService(db *database.Database, log *zap.Logger, m *metrics.Metrics) *BookmarkService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookmarkService{db: db, logger: log.Named("bookmarks"), metrics: m}
}

// ListBookmarks returns every bookmark, highest priority first, newest first
// within a priority. Unassigned bookmarks report the default category's id.
// On a store error it returns an empty list.
func (s *BookmarkService) ListBookmarks(ctx context.Context) []entities.Bookmark {
	var err error
	defer func(start time.Time) { s.metrics.ObserveOperation("list_bookmarks", err, start) }(time.Now())

	db := s.db.DB.WithContext(ctx)

	var bms []entities.Bookmark
	bms, err = bookmarks.NewRepository(db).List()
	if err != nil {
		s.logger.Warn("failed to list bookmarks, serving empty list", zap.Error(database.Wrap("list bookmarks", err)))
		return []entities.Bookmark{}
	}

	var def *entities.Category
	def, err = categories.NewRepository(db).FindDefault()
	if err != nil {
		s.logger.Warn("failed to resolve default category, serving empty list", zap.Error(database.Wrap("list bookmarks", err)))
		return []entities.Bookmark{}
	}

	if def != nil {
		for i := range bms {
			if bms[i].CategoryID == nil {
				id := def.ID
				bms[i].CategoryID = &id
			}
		}
	}
	return bms
}

// CreateBookmark adds a bookmark on top of the current ordering. The URL is
// normalized before the uniqueness check.
func (s *BookmarkService) CreateBookmark(ctx context.Context, in CreateBookmarkInput) (_ *entities.Bookmark, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("create_bookmark", err, start) }(time.Now())

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidInput("bookmark name is required")
	}
	url := NormalizeURL(in.URL)
	if url == "" {
		return nil, invalidInput("bookmark URL is required")
	}

	bm := &entities.Bookmark{
		Name:        name,
		URL:         url,
		CategoryID:  in.CategoryID,
		Description: strings.TrimSpace(in.Description),
		IsPrivate:   in.IsPrivate,
	}

	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := bookmarks.NewRepository(tx)

		taken, err := repo.URLTaken(url, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateURL
		}

		if err := checkCategory(tx, bm.CategoryID); err != nil {
			return err
		}

		highest, err := repo.MaxPriority()
		if err != nil {
			return err
		}
		bm.Priority = highest + 1

		return repo.Create(bm)
	})
	if err = classify("create bookmark", err, ErrDuplicateURL); err != nil {
		return nil, err
	}

	s.logger.Info("bookmark created",
		zap.Uint("id", bm.ID),
		zap.String("url", bm.URL),
		zap.Int("priority", bm.Priority),
	)
	return bm, nil
}

// FindBookmark returns a single bookmark as stored. Unlike ListBookmarks it
// reports store errors, and a missing id is ErrBookmarkNotFound.
func (s *BookmarkService) FindBookmark(ctx context.Context, id uint) (_ *entities.Bookmark, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("find_bookmark", err, start) }(time.Now())

	bm, err := bookmarks.NewRepository(s.db.DB.WithContext(ctx)).FindByID(id)
	if err != nil {
		return nil, database.Wrap("find bookmark", err)
	}
	if bm == nil {
		return nil, ErrBookmarkNotFound
	}
	return bm, nil
}

// UpdateBookmark writes every field of bm, priority included.
func (s *BookmarkService) UpdateBookmark(ctx context.Context, bm entities.Bookmark) (_ *entities.Bookmark, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("update_bookmark", err, start) }(time.Now())

	name := strings.TrimSpace(bm.Name)
	if name == "" {
		return nil, invalidInput("bookmark name is required")
	}
	url := NormalizeURL(bm.URL)
	if url == "" {
		return nil, invalidInput("bookmark URL is required")
	}

	var updated entities.Bookmark
	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := bookmarks.NewRepository(tx)

		current, err := repo.FindByID(bm.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrBookmarkNotFound
		}

		taken, err := repo.URLTaken(url, bm.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateURL
		}

		if err := checkCategory(tx, bm.CategoryID); err != nil {
			return err
		}

		updated = *current
		updated.Name = name
		updated.URL = url
		updated.CategoryID = bm.CategoryID
		updated.Description = strings.TrimSpace(bm.Description)
		updated.IsPrivate = bm.IsPrivate
		updated.Priority = bm.Priority

		return repo.Update(&updated)
	})
	if err = classify("update bookmark", err, ErrDuplicateURL); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBookmark removes a bookmark. Deleting a missing id succeeds.
func (s *BookmarkService) DeleteBookmark(ctx context.Context, id uint) (err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("delete_bookmark", err, start) }(time.Now())

	deleted, err := bookmarks.NewRepository(s.db.DB.WithContext(ctx)).Delete(id)
	if err != nil {
		return database.Wrap("delete bookmark", err)
	}
	if deleted == 0 {
		s.logger.Debug("delete bookmark: no such bookmark", zap.Uint("id", id))
	}
	return nil
}

// DeleteBookmarksByCategoryID removes every bookmark of a category and
// returns the count. It refuses, returning 0, for a nil id and for the
// default category.
func (s *BookmarkService) DeleteBookmarksByCategoryID(ctx context.Context, categoryID *uint) (_ int64, err error) {
	if categoryID == nil {
		s.logger.Debug("refusing to bulk delete unassigned bookmarks")
		return 0, nil
	}
	defer func(start time.Time) { s.metrics.ObserveOperation("delete_bookmarks_by_category", err, start) }(time.Now())

	var deleted int64
	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		def, err := categories.NewRepository(tx).FindDefault()
		if err != nil {
			return err
		}
		if def != nil && def.ID == *categoryID {
			return nil
		}
		deleted, err = bookmarks.NewRepository(tx).DeleteByCategory(*categoryID)
		return err
	})
	if err = classify("delete bookmarks by category", err, nil); err != nil {
		return 0, err
	}

	s.logger.Info("bookmarks deleted by category", zap.Uint("category_id", *categoryID), zap.Int64("deleted", deleted))
	return deleted, nil
}

// ReorderBookmarks assigns priorities from ids in top-to-bottom order.
// An empty list is a no-op.
func (s *BookmarkService) ReorderBookmarks(ctx context.Context, ids []uint) (err error) {
	if len(ids) == 0 {
		return nil
	}
	defer func(start time.Time) { s.metrics.ObserveOperation("reorder_bookmarks", err, start) }(time.Now())

	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		_, err := ordering.Apply(tx, entities.Bookmark{}.TableName(), ids)
		return err
	})
	return classify("reorder bookmarks", err, nil)
}

func checkCategory(tx *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	cat, err := categories.NewRepository(tx).FindByID(*id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrCategoryNotFound
	}
	return nil
}
