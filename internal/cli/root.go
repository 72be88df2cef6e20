// Package cli is the navboard command line: the server plus the setup
// operations an operator needs without a browser.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/navboard/internal/config"
	"github.com/mrlokans/navboard/internal/entrypoint"
	"github.com/mrlokans/navboard/internal/logger"
)

// BuildInfo is set at build time via ldflags in main.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// NewRootCommand builds the command tree. Without a subcommand it serves.
func NewRootCommand(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:           "navboard",
		Short:         "navboard is a self-hosted bookmark dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(config.NewConfig(), info.Version)
		},
	}

	root.AddCommand(
		newServeCommand(info),
		newSchemaCommand(),
		newSetupCommand(),
		newSecretCommand(),
		newVersionCommand(info),
	)
	return root
}

func newServeCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(config.NewConfig(), info.Version)
		},
	}
}

// withApp opens the store for a one-shot command and closes it afterwards.
func withApp(fn func(app *entrypoint.App) error) error {
	cfg := config.NewConfig()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// One-shot commands don't export metrics
	cfg.Metrics.Enabled = false

	app, err := entrypoint.NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	return fn(app)
}
