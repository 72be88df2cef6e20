package setup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/navboard/internal/config"
	"github.com/mrlokans/navboard/internal/dashboard"
	"github.com/mrlokans/navboard/internal/database"
	"github.com/mrlokans/navboard/internal/database/settings"
	"github.com/mrlokans/navboard/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, *Gate) {
	t.Helper()

	db, err := database.NewDatabase(config.Database{
		Path:         filepath.Join(t.TempDir(), "setup.db"),
		MaxOpenConns: 4,
		BusyTimeout:  5 * time.Second,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, NewGate(db, config.Auth{BcryptCost: bcrypt.MinCost}, nil, nil)
}

func setupInitialized(t *testing.T) (*database.Database, *Gate) {
	t.Helper()
	db, gate := setupTestDB(t)
	require.NoError(t, gate.InitializeSchema(context.Background()))
	return db, gate
}

func TestState_Transitions(t *testing.T) {
	ctx := context.Background()
	db, gate := setupTestDB(t)

	assert.Equal(t, StateConnectionVerified, gate.State(ctx))

	require.NoError(t, gate.InitializeSchema(ctx))
	assert.Equal(t, StateSchemaInitialized, gate.State(ctx))

	require.NoError(t, gate.SetAdminCredential(ctx, "hunter2"))
	state := gate.State(ctx)
	assert.Equal(t, StateAdminConfigured, state)
	assert.True(t, state.Ready())

	require.NoError(t, gate.ResetSetupState(ctx))
	assert.Equal(t, StateSchemaInitialized, gate.State(ctx))

	require.NoError(t, db.Close())
	assert.Equal(t, StateUnconfigured, gate.State(ctx))
}

func TestVerifyConnection(t *testing.T) {
	db, gate := setupTestDB(t)

	require.NoError(t, gate.VerifyConnection(context.Background()))
	assert.Equal(t, StateConnectionVerified, gate.State(context.Background()), "probe has no side effects")

	require.NoError(t, db.Close())
	err := gate.VerifyConnection(context.Background())
	assert.ErrorIs(t, err, database.ErrStoreUnavailable)
}

func TestInitializeSchema_SeedsAndIsReentrant(t *testing.T) {
	ctx := context.Background()
	db, gate := setupInitialized(t)

	branding, err := gate.Branding(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultBranding(), branding)

	_, err = gate.SetBranding(ctx, Branding{Text: "Home Lab", Icon: "Server"})
	require.NoError(t, err)

	require.NoError(t, gate.InitializeSchema(ctx))

	branding, err = gate.Branding(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Home Lab", branding.Text, "re-running keeps existing values")

	var cats []entities.Category
	require.NoError(t, db.DB.Find(&cats).Error)
	require.Len(t, cats, 1)
	assert.True(t, cats[0].IsDefault())
}

func TestSetAdminCredential(t *testing.T) {
	ctx := context.Background()
	db, gate := setupInitialized(t)

	assert.ErrorIs(t, gate.SetAdminCredential(ctx, ""), ErrEmptyCredential)
	assert.False(t, gate.IsSetupComplete(ctx))

	require.NoError(t, gate.SetAdminCredential(ctx, "hunter2"))
	assert.True(t, gate.IsSetupComplete(ctx))

	stored, found, err := settings.NewRepository(db.DB).Get(entities.ConfigKeyAdminHashedPassword)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotEqual(t, "hunter2", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("hunter2")))
}

func TestSetAdminCredential_DefaultCost(t *testing.T) {
	ctx := context.Background()
	db, _ := setupInitialized(t)
	gate := NewGate(db, config.Auth{}, nil, nil)

	require.NoError(t, gate.SetAdminCredential(ctx, "hunter2"))

	stored, _, err := settings.NewRepository(db.DB).Get(entities.ConfigKeyAdminHashedPassword)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(stored))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestVerifyAdminCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("schema missing", func(t *testing.T) {
		_, gate := setupTestDB(t)
		assert.False(t, gate.VerifyAdminCredential(ctx, "anything"))
	})

	t.Run("setup incomplete", func(t *testing.T) {
		_, gate := setupInitialized(t)
		assert.False(t, gate.VerifyAdminCredential(ctx, "anything"))
	})

	t.Run("hash present but setup flag cleared", func(t *testing.T) {
		db, gate := setupInitialized(t)
		require.NoError(t, gate.SetAdminCredential(ctx, "hunter2"))
		_, err := settings.NewRepository(db.DB).Delete(entities.ConfigKeySetupCompleted)
		require.NoError(t, err)
		assert.False(t, gate.VerifyAdminCredential(ctx, "hunter2"))
	})

	t.Run("configured", func(t *testing.T) {
		_, gate := setupInitialized(t)
		require.NoError(t, gate.SetAdminCredential(ctx, "hunter2"))
		assert.True(t, gate.VerifyAdminCredential(ctx, "hunter2"))
		assert.False(t, gate.VerifyAdminCredential(ctx, "hunter3"))
		assert.False(t, gate.VerifyAdminCredential(ctx, ""))
	})

	t.Run("store closed", func(t *testing.T) {
		db, gate := setupInitialized(t)
		require.NoError(t, gate.SetAdminCredential(ctx, "hunter2"))
		require.NoError(t, db.Close())
		assert.False(t, gate.VerifyAdminCredential(ctx, "hunter2"))
	})
}

func TestChangeAdminCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("first time without current", func(t *testing.T) {
		_, gate := setupInitialized(t)
		require.NoError(t, gate.ChangeAdminCredential(ctx, "", "first"))
		assert.True(t, gate.VerifyAdminCredential(ctx, "first"))
	})

	t.Run("errors", func(t *testing.T) {
		_, gate := setupInitialized(t)
		require.NoError(t, gate.SetAdminCredential(ctx, "old"))

		assert.ErrorIs(t, gate.ChangeAdminCredential(ctx, "old", ""), ErrEmptyNewCredential)
		assert.ErrorIs(t, gate.ChangeAdminCredential(ctx, "", "new"), ErrMissingCurrent)
		assert.ErrorIs(t, gate.ChangeAdminCredential(ctx, "wrong", "new"), ErrInvalidCurrent)

		assert.True(t, gate.VerifyAdminCredential(ctx, "old"), "failed changes leave the hash alone")
	})

	t.Run("replaces hash", func(t *testing.T) {
		_, gate := setupInitialized(t)
		require.NoError(t, gate.SetAdminCredential(ctx, "old"))

		require.NoError(t, gate.ChangeAdminCredential(ctx, "old", "new"))
		assert.False(t, gate.VerifyAdminCredential(ctx, "old"))
		assert.True(t, gate.VerifyAdminCredential(ctx, "new"))
	})
}

func TestHasAdminCredential(t *testing.T) {
	ctx := context.Background()
	_, gate := setupInitialized(t)

	has, err := gate.HasAdminCredential(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, gate.SetAdminCredential(ctx, "hunter2"))
	has, err = gate.HasAdminCredential(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestResetSetupState(t *testing.T) {
	ctx := context.Background()
	db, gate := setupInitialized(t)

	categories := dashboard.NewCategoryService(db, nil, nil)
	work, err := categories.CreateCategory(ctx, dashboard.CreateCategoryInput{Name: "Work"})
	require.NoError(t, err)

	require.NoError(t, gate.SetAdminCredential(ctx, "hunter2"))
	_, err = gate.SetBranding(ctx, Branding{Text: "Custom", Icon: "Star"})
	require.NoError(t, err)

	require.NoError(t, gate.ResetSetupState(ctx))

	values, err := settings.NewRepository(db.DB).All()
	require.NoError(t, err)
	assert.Empty(t, values)
	assert.False(t, gate.IsSetupComplete(ctx))

	branding, err := gate.Branding(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultBranding(), branding, "logo reverts to defaults")

	var count int64
	require.NoError(t, db.DB.Model(&entities.Category{}).Where("id = ?", work.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "categories are untouched")
}

func TestResetSetupState_MissingTable(t *testing.T) {
	_, gate := setupTestDB(t)
	assert.NoError(t, gate.ResetSetupState(context.Background()))
}

func TestIsSetupComplete_SchemaMissing(t *testing.T) {
	_, gate := setupTestDB(t)
	assert.False(t, gate.IsSetupComplete(context.Background()))
}

func TestBranding(t *testing.T) {
	ctx := context.Background()

	t.Run("schema missing serves defaults", func(t *testing.T) {
		_, gate := setupTestDB(t)
		b, err := gate.Branding(ctx)
		require.NoError(t, err)
		assert.Equal(t, DefaultBranding(), b)
	})

	t.Run("empty fields reset to defaults", func(t *testing.T) {
		_, gate := setupInitialized(t)
		b, err := gate.SetBranding(ctx, Branding{Text: "Mine"})
		require.NoError(t, err)
		assert.Equal(t, Branding{Text: "Mine", Icon: entities.DefaultLogoIcon}, b)

		stored, err := gate.Branding(ctx)
		require.NoError(t, err)
		assert.Equal(t, b, stored)
	})

	t.Run("store errors are reported", func(t *testing.T) {
		db, gate := setupInitialized(t)
		require.NoError(t, db.Close())

		b, err := gate.Branding(ctx)
		assert.ErrorIs(t, err, database.ErrStoreUnavailable)
		assert.Equal(t, DefaultBranding(), b)
	})
}
