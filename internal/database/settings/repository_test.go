package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/navboard/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "settings.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.ConfigEntry{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func TestRepository_Set_New(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.Set(entities.ConfigKeyLogoText, "Home")
	require.NoError(t, err)

	value, found, err := repo.Get(entities.ConfigKeyLogoText)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Home", value)
}

func TestRepository_Set_Replaces(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Set(entities.ConfigKeySetupCompleted, "false"))
	require.NoError(t, repo.Set(entities.ConfigKeySetupCompleted, "true"))

	value, found, err := repo.Get(entities.ConfigKeySetupCompleted)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", value)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	value, found, err := repo.Get("nonexistent")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestRepository_GetOrDefault(t *testing.T) {
	repo := setupTestDB(t)

	value, err := repo.GetOrDefault(entities.ConfigKeyLogoIcon, entities.DefaultLogoIcon)
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultLogoIcon, value)

	require.NoError(t, repo.Set(entities.ConfigKeyLogoIcon, "Star"))
	value, err = repo.GetOrDefault(entities.ConfigKeyLogoIcon, entities.DefaultLogoIcon)
	require.NoError(t, err)
	assert.Equal(t, "Star", value)
}

func TestRepository_SetIfAbsent(t *testing.T) {
	repo := setupTestDB(t)

	wrote, err := repo.SetIfAbsent(entities.ConfigKeyLogoText, "First")
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = repo.SetIfAbsent(entities.ConfigKeyLogoText, "Second")
	require.NoError(t, err)
	assert.False(t, wrote)

	value, _, err := repo.Get(entities.ConfigKeyLogoText)
	require.NoError(t, err)
	assert.Equal(t, "First", value)
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Set("a", "1"))
	require.NoError(t, repo.Set("b", "2"))
	require.NoError(t, repo.Set("c", "3"))

	deleted, err := repo.Delete("a", "b", "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"c": "3"}, all)
}

func TestRepository_Delete_NoKeys(t *testing.T) {
	repo := setupTestDB(t)

	deleted, err := repo.Delete()
	assert.NoError(t, err)
	assert.Zero(t, deleted)
}
