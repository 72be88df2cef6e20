// Package setup gates the dashboard behind first-run configuration.
//
// The setup state is never stored. It is derived on every call from store
// reachability, schema presence, and the setupCompleted config key:
//
//	Unconfigured -> ConnectionVerified -> SchemaInitialized -> AdminConfigured
//
// Every transition is triggered by the caller (the setup wizard, the CLI);
// the gate runs nothing in the background.
package setup

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/navboard/internal/auth"
	"github.com/mrlokans/navboard/internal/config"
	"github.com/mrlokans/navboard/internal/dashboard"
	"github.com/mrlokans/navboard/internal/database"
	"github.com/mrlokans/navboard/internal/database/settings"
	"github.com/mrlokans/navboard/internal/entities"
	"github.com/mrlokans/navboard/internal/metrics"
)

var (
	ErrEmptyCredential    = errors.New("password is required")
	ErrEmptyNewCredential = errors.New("new password is required")
	ErrMissingCurrent     = errors.New("current password is required")
	ErrInvalidCurrent     = errors.New("current password is incorrect")
)

type State string

const (
	StateUnconfigured       State = "unconfigured"
	StateConnectionVerified State = "connection_verified"
	StateSchemaInitialized  State = "schema_initialized"
	StateAdminConfigured    State = "admin_configured"
)

// Ready reports whether the dashboard is usable.
func (s State) Ready() bool {
	return s == StateAdminConfigured
}

// Branding is the logo shown in the dashboard header.
type Branding struct {
	Text string `json:"logoText"`
	Icon string `json:"logoIcon"`
}

// DefaultBranding is served while the logo keys are unset.
func DefaultBranding() Branding {
	return Branding{Text: entities.DefaultLogoText, Icon: entities.DefaultLogoIcon}
}

var setupKeys = []string{
	entities.ConfigKeyAdminHashedPassword,
	entities.ConfigKeySetupCompleted,
	entities.ConfigKeyLogoText,
	entities.ConfigKeyLogoIcon,
}

type Gate struct {
	db         *database.Database
	bcryptCost int
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewGate(db *database.Database, cfg config.Auth, log *zap.Logger, m *metrics.Metrics) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	cost := cfg.BcryptCost
	if cost <= 0 {
		cost = config.DefaultBcryptCost
	}
	return &Gate{db: db, bcryptCost: cost, logger: log.Named("setup"), metrics: m}
}

// State derives the current setup state. A reachable store without tables
// reports StateConnectionVerified; StateUnconfigured means the store cannot
// be reached at all.
func (g *Gate) State(ctx context.Context) State {
	if err := g.db.Ping(ctx); err != nil {
		return StateUnconfigured
	}
	ok, err := g.db.HasSchema(ctx)
	if err != nil {
		return StateUnconfigured
	}
	if !ok {
		return StateConnectionVerified
	}
	if !g.IsSetupComplete(ctx) {
		return StateSchemaInitialized
	}
	return StateAdminConfigured
}

// VerifyConnection probes the store without changing anything.
func (g *Gate) VerifyConnection(ctx context.Context) error {
	if err := g.db.Ping(ctx); err != nil {
		g.logger.Warn("store connection check failed", zap.Error(err))
		return err
	}
	return nil
}

// InitializeSchema creates the tables and seeds the logo keys and the default
// category when they are missing. Safe to call repeatedly.
func (g *Gate) InitializeSchema(ctx context.Context) (err error) {
	defer func(start time.Time) { g.metrics.ObserveOperation("initialize_schema", err, start) }(time.Now())

	if err = g.db.Migrate(ctx); err != nil {
		return err
	}

	err = g.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := settings.NewRepository(tx)
		if _, err := repo.SetIfAbsent(entities.ConfigKeyLogoText, entities.DefaultLogoText); err != nil {
			return err
		}
		if _, err := repo.SetIfAbsent(entities.ConfigKeyLogoIcon, entities.DefaultLogoIcon); err != nil {
			return err
		}
		_, err := dashboard.EnsureDefault(tx)
		return err
	})
	if err != nil {
		return database.Wrap("initialize schema", err)
	}

	g.logger.Info("schema initialized")
	return nil
}

// SetAdminCredential stores the admin password hash and marks setup as
// completed in one transaction.
func (g *Gate) SetAdminCredential(ctx context.Context, password string) (err error) {
	defer func(start time.Time) { g.metrics.ObserveOperation("set_admin_credential", err, start) }(time.Now())

	if password == "" {
		return ErrEmptyCredential
	}

	hash, err := auth.HashPassword(password, g.bcryptCost)
	if err != nil {
		return err
	}

	if err = g.storeCredential(ctx, hash); err != nil {
		return err
	}

	g.logger.Info("admin credential set")
	return nil
}

// VerifyAdminCredential reports whether password matches the stored admin
// hash. It is false whenever setup is incomplete or the store can't answer.
func (g *Gate) VerifyAdminCredential(ctx context.Context, password string) bool {
	if password == "" {
		return false
	}

	values, err := settings.NewRepository(g.db.DB.WithContext(ctx)).All()
	if err != nil {
		g.logger.Debug("credential check failed to read config", zap.Error(database.Wrap("verify credential", err)))
		return false
	}
	if values[entities.ConfigKeySetupCompleted] != entities.ConfigValueTrue {
		return false
	}
	hash := values[entities.ConfigKeyAdminHashedPassword]
	if hash == "" {
		return false
	}

	return auth.CheckPassword(password, hash) == nil
}

// ChangeAdminCredential replaces the admin password. The current password is
// required once a hash exists; before that the new one is stored directly.
func (g *Gate) ChangeAdminCredential(ctx context.Context, current, next string) (err error) {
	defer func(start time.Time) { g.metrics.ObserveOperation("change_admin_credential", err, start) }(time.Now())

	if next == "" {
		return ErrEmptyNewCredential
	}

	hash, err := auth.HashPassword(next, g.bcryptCost)
	if err != nil {
		return err
	}

	err = g.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := settings.NewRepository(tx)

		stored, found, err := repo.Get(entities.ConfigKeyAdminHashedPassword)
		if err != nil {
			return err
		}
		if found && stored != "" {
			if current == "" {
				return ErrMissingCurrent
			}
			if err := auth.CheckPassword(current, stored); err != nil {
				return ErrInvalidCurrent
			}
		}

		if err := repo.Set(entities.ConfigKeyAdminHashedPassword, hash); err != nil {
			return err
		}
		return repo.Set(entities.ConfigKeySetupCompleted, entities.ConfigValueTrue)
	})
	if err != nil {
		if errors.Is(err, ErrMissingCurrent) || errors.Is(err, ErrInvalidCurrent) {
			return err
		}
		return database.Wrap("change admin credential", err)
	}

	g.logger.Info("admin credential changed")
	return nil
}

// HasAdminCredential reports whether an admin password hash is stored.
func (g *Gate) HasAdminCredential(ctx context.Context) (bool, error) {
	hash, _, err := settings.NewRepository(g.db.DB.WithContext(ctx)).Get(entities.ConfigKeyAdminHashedPassword)
	if err != nil {
		return false, database.Wrap("read admin credential", err)
	}
	return hash != "", nil
}

// ResetSetupState forgets the admin credential, the completion flag and the
// logo. Categories and bookmarks are untouched. A store without the config
// table counts as already reset.
func (g *Gate) ResetSetupState(ctx context.Context) (err error) {
	defer func(start time.Time) { g.metrics.ObserveOperation("reset_setup_state", err, start) }(time.Now())

	var removed int64
	err = g.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		removed, err = settings.NewRepository(tx).Delete(setupKeys...)
		return err
	})
	if err != nil {
		if database.IsMissingTable(err) {
			return nil
		}
		return database.Wrap("reset setup state", err)
	}

	g.logger.Info("setup state reset", zap.Int64("keys_removed", removed))
	return nil
}

// IsSetupComplete reports whether setupCompleted is "true". A missing schema
// or unreachable store means setup is not complete.
func (g *Gate) IsSetupComplete(ctx context.Context) bool {
	value, _, err := settings.NewRepository(g.db.DB.WithContext(ctx)).Get(entities.ConfigKeySetupCompleted)
	if err != nil {
		if !database.IsMissingTable(err) {
			g.logger.Warn("failed to read setup flag", zap.Error(database.Wrap("read setup flag", err)))
		}
		return false
	}
	return value == entities.ConfigValueTrue
}

// Branding returns the stored logo, with defaults for unset keys.
func (g *Gate) Branding(ctx context.Context) (Branding, error) {
	repo := settings.NewRepository(g.db.DB.WithContext(ctx))
	def := DefaultBranding()

	text, err := repo.GetOrDefault(entities.ConfigKeyLogoText, def.Text)
	if err != nil {
		if database.IsMissingTable(err) {
			return def, nil
		}
		return def, database.Wrap("read branding", err)
	}
	icon, err := repo.GetOrDefault(entities.ConfigKeyLogoIcon, def.Icon)
	if err != nil {
		return def, database.Wrap("read branding", err)
	}
	return Branding{Text: text, Icon: icon}, nil
}

// SetBranding replaces the logo. Empty fields reset to the defaults.
func (g *Gate) SetBranding(ctx context.Context, b Branding) (_ Branding, err error) {
	defer func(start time.Time) { g.metrics.ObserveOperation("set_branding", err, start) }(time.Now())

	def := DefaultBranding()
	if b.Text == "" {
		b.Text = def.Text
	}
	if b.Icon == "" {
		b.Icon = def.Icon
	}

	err = g.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := settings.NewRepository(tx)
		if err := repo.Set(entities.ConfigKeyLogoText, b.Text); err != nil {
			return err
		}
		return repo.Set(entities.ConfigKeyLogoIcon, b.Icon)
	})
	if err != nil {
		return Branding{}, database.Wrap("set branding", err)
	}
	return b, nil
}

func (g *Gate) storeCredential(ctx context.Context, hash string) error {
	err := g.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := settings.NewRepository(tx)
		if err := repo.Set(entities.ConfigKeyAdminHashedPassword, hash); err != nil {
			return err
		}
		return repo.Set(entities.ConfigKeySetupCompleted, entities.ConfigValueTrue)
	})
	return database.Wrap("store admin credential", err)
}
