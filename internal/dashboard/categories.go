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

// CreateCategoryInput holds the caller-controlled fields of a new category.
type CreateCategoryInput struct {
	Name      string
	Icon      string // outside the icon vocabulary falls back to entities.DefaultIcon
	IsPrivate bool
	IsVisible *bool // nil means visible
}

type CategoryService struct {
	db      *database.Database
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewCategoryService(db *database.Database, log *zap.Logger, m *metrics.Metrics) *CategoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CategoryService{db: db, logger: log.Named("categories"), metrics: m}
}

// ListCategories ensures the default category exists and returns every
// category, highest priority first. On a store error it returns a single
// placeholder category instead of failing.
func (s *CategoryService) ListCategories(ctx context.Context) []entities.Category {
	var (
		cats []entities.Category
		err  error
	)
	defer func(start time.Time) { s.metrics.ObserveOperation("list_categories", err, start) }(time.Now())

	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := EnsureDefault(tx); err != nil {
			return err
		}
		var listErr error
		cats, listErr = categories.NewRepository(tx).List()
		return listErr
	})
	if err != nil {
		s.logger.Warn("failed to list categories, serving placeholder", zap.Error(err))
		return []entities.Category{entities.PlaceholderCategory()}
	}
	return cats
}

// CreateCategory adds a category on top of the current ordering.
func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (_ *entities.Category, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("create_category", err, start) }(time.Now())

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidInput("category name is required")
	}

	cat := &entities.Category{
		Name:      name,
		Icon:      entities.NormalizeIcon(in.Icon),
		IsVisible: in.IsVisible == nil || *in.IsVisible,
		IsPrivate: in.IsPrivate,
	}

	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := categories.NewRepository(tx)

		taken, err := repo.NameTaken(name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}

		highest, err := repo.MaxPriority()
		if err != nil {
			return err
		}
		cat.Priority = highest + 1

		return repo.Create(cat)
	})
	if err = classify("create category", err, ErrDuplicateName); err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		zap.Uint("id", cat.ID),
		zap.String("name", cat.Name),
		zap.Int("priority", cat.Priority),
	)
	return cat, nil
}

// FindCategory returns a single category. Unlike ListCategories it reports
// store errors, and a missing id is ErrCategoryNotFound.
func (s *CategoryService) FindCategory(ctx context.Context, id uint) (_ *entities.Category, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("find_category", err, start) }(time.Now())

	cat, err := categories.NewRepository(s.db.DB.WithContext(ctx)).FindByID(id)
	if err != nil {
		return nil, database.Wrap("find category", err)
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}
	return cat, nil
}

// UpdateCategory writes the caller's name, icon, visibility, privacy and
// priority. The default category keeps its name and icon and stays public
// whatever the caller asks for, an empty name included.
func (s *CategoryService) UpdateCategory(ctx context.Context, cat entities.Category) (_ *entities.Category, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("update_category", err, start) }(time.Now())

	name := strings.TrimSpace(cat.Name)

	var updated entities.Category
	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := categories.NewRepository(tx)

		current, err := repo.FindByID(cat.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrCategoryNotFound
		}

		updated = *current
		updated.Name = name
		updated.Icon = entities.NormalizeIcon(cat.Icon)
		updated.IsVisible = cat.IsVisible
		updated.IsPrivate = cat.IsPrivate
		updated.Priority = cat.Priority

		if current.IsDefault() {
			updated.Name = entities.DefaultCategoryName
			updated.Icon = entities.DefaultIcon
			updated.IsPrivate = false
		}
		if updated.Name == "" {
			return invalidInput("category name is required")
		}

		taken, err := repo.NameTaken(updated.Name, updated.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}

		return repo.Update(&updated)
	})
	if err = classify("update category", err, ErrDuplicateName); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCategory removes a non-default category. Its bookmarks are detached
// by the store and then moved to the default category. A missing id is not
// an error; the default category check still runs.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) (err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("delete_category", err, start) }(time.Now())

	var deleted, rehomed int64
	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := categories.NewRepository(tx)

		current, err := repo.FindByID(id)
		if err != nil {
			return err
		}
		if current != nil {
			if current.IsDefault() {
				return ErrProtectedDefault
			}
			if deleted, err = repo.Delete(id); err != nil {
				return err
			}
		}

		rehomed, err = ensureDefault(tx)
		return err
	})
	if err = classify("delete category", err, nil); err != nil {
		return err
	}

	if deleted == 0 {
		s.logger.Debug("delete category: no such category", zap.Uint("id", id))
	} else {
		s.logger.Info("category deleted", zap.Uint("id", id), zap.Int64("bookmarks_rehomed", rehomed))
	}
	return nil
}

// DeleteCategoryWithBookmarks removes a non-default category together with
// all of its bookmarks and returns how many bookmarks were removed.
func (s *CategoryService) DeleteCategoryWithBookmarks(ctx context.Context, id uint) (_ int64, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("delete_category_with_bookmarks", err, start) }(time.Now())

	var removed int64
	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := categories.NewRepository(tx)

		current, err := repo.FindByID(id)
		if err != nil {
			return err
		}
		if current != nil {
			if current.IsDefault() {
				return ErrProtectedDefault
			}
			if removed, err = bookmarks.NewRepository(tx).DeleteByCategory(id); err != nil {
				return err
			}
			if _, err = repo.Delete(id); err != nil {
				return err
			}
		}

		_, err = ensureDefault(tx)
		return err
	})
	if err = classify("delete category with bookmarks", err, nil); err != nil {
		return 0, err
	}

	s.logger.Info("category deleted with bookmarks", zap.Uint("id", id), zap.Int64("bookmarks_deleted", removed))
	return removed, nil
}

// ReorderCategories assigns priorities from ids in top-to-bottom order.
// An empty list is a no-op.
func (s *CategoryService) ReorderCategories(ctx context.Context, ids []uint) (err error) {
	if len(ids) == 0 {
		return nil
	}
	defer func(start time.Time) { s.metrics.ObserveOperation("reorder_categories", err, start) }(time.Now())

	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		_, err := ordering.Apply(tx, entities.Category{}.TableName(), ids)
		return err
	})
	return classify("reorder categories", err, nil)
}

// EnsureDefaultCategory makes sure the default category exists and owns every
// bookmark without a category, then returns it.
func (s *CategoryService) EnsureDefaultCategory(ctx context.Context) (_ *entities.Category, err error) {
	defer func(start time.Time) { s.metrics.ObserveOperation("ensure_default_category", err, start) }(time.Now())

	var def *entities.Category
	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		def, err = EnsureDefault(tx)
		return err
	})
	if err = classify("ensure default category", err, nil); err != nil {
		return nil, err
	}
	return def, nil
}

// EnsureDefault is EnsureDefaultCategory scoped to an open transaction.
func EnsureDefault(tx *gorm.DB) (*entities.Category, error) {
	def, _, err := ensureDefaultCategory(tx)
	return def, err
}

func ensureDefault(tx *gorm.DB) (rehomed int64, err error) {
	_, rehomed, err = ensureDefaultCategory(tx)
	return rehomed, err
}

func ensureDefaultCategory(tx *gorm.DB) (*entities.Category, int64, error) {
	repo := categories.NewRepository(tx)

	def, err := repo.FindDefault()
	if err != nil {
		return nil, 0, err
	}

	if def == nil {
		// A row holding the reserved name with another icon is repaired
		// rather than duplicated; the name is unique.
		def, err = repo.FindByName(entities.DefaultCategoryName)
		if err != nil {
			return nil, 0, err
		}
		if def != nil {
			def.Icon = entities.DefaultIcon
			def.IsPrivate = false
			if err := repo.Update(def); err != nil {
				return nil, 0, err
			}
		} else {
			highest, err := repo.MaxPriority()
			if err != nil {
				return nil, 0, err
			}
			def = &entities.Category{
				Name:      entities.DefaultCategoryName,
				Icon:      entities.DefaultIcon,
				IsVisible: true,
				Priority:  highest + 1,
			}
			if err := repo.Create(def); err != nil {
				return nil, 0, err
			}
		}
	}

	rehomed, err := bookmarks.NewRepository(tx).AdoptOrphans(def.ID)
	if err != nil {
		return nil, 0, err
	}
	return def, rehomed, nil
}
