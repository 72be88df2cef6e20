package dashboard

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mrlokans/navboard/internal/config"
	"github.com/mrlokans/navboard/internal/database"
	"github.com/mrlokans/navboard/internal/entities"
)

type testEnv struct {
	db         *database.Database
	categories *CategoryService
	bookmarks  *BookmarkService
}

func setupTestDB(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewDatabase(config.Database{
		Path:         filepath.Join(t.TempDir(), "dashboard.db"),
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		BusyTimeout:  10 * time.Second,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))

	t.Cleanup(func() {
		db.Close()
	})

	return &testEnv{
		db:         db,
		categories: NewCategoryService(db, nil, nil),
		bookmarks:  NewBookmarkService(db, nil, nil),
	}
}

func (e *testEnv) mustCreateCategory(t *testing.T, name string) *entities.Category {
	t.Helper()
	cat, err := e.categories.CreateCategory(context.Background(), CreateCategoryInput{Name: name, Icon: "Folder"})
	require.NoError(t, err)
	return cat
}

func (e *testEnv) mustCreateBookmark(t *testing.T, name, url string, categoryID *uint) *entities.Bookmark {
	t.Helper()
	bm, err := e.bookmarks.CreateBookmark(context.Background(), CreateBookmarkInput{Name: name, URL: url, CategoryID: categoryID})
	require.NoError(t, err)
	return bm
}

func (e *testEnv) defaultCategory(t *testing.T) *entities.Category {
	t.Helper()
	def, err := e.categories.EnsureDefaultCategory(context.Background())
	require.NoError(t, err)
	return def
}

func (e *testEnv) bookmarkByID(t *testing.T, id uint) entities.Bookmark {
	t.Helper()
	for _, bm := range e.bookmarks.ListBookmarks(context.Background()) {
		if bm.ID == id {
			return bm
		}
	}
	t.Fatalf("bookmark %d not listed", id)
	return entities.Bookmark{}
}

func uintPtr(v uint) *uint {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
