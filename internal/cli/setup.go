package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/navboard/internal/auth"
	"github.com/mrlokans/navboard/internal/entrypoint"
)

func newSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the tables and seed the defaults (safe to repeat)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(app *entrypoint.App) error {
				if err := app.Gate.InitializeSchema(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema initialized in %s\n", app.DB.Path())
				return nil
			})
		},
	})
	return cmd
}

func newSetupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Inspect or change the first-run setup",
	}
	cmd.AddCommand(newSetupStatusCommand(), newSetupPasswordCommand(), newSetupResetCommand())
	return cmd
}

func newSetupStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the setup state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(app *entrypoint.App) error {
				ctx := cmd.Context()
				out := cmd.OutOrStdout()

				state := app.Gate.State(ctx)
				fmt.Fprintf(out, "Database: %s\n", app.DB.Path())
				fmt.Fprintf(out, "State:    %s\n", state)

				if branding, err := app.Gate.Branding(ctx); err == nil {
					fmt.Fprintf(out, "Logo:     %s (%s)\n", branding.Text, branding.Icon)
				}
				return nil
			})
		},
	}
}

func newSetupPasswordCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Set the admin password, initializing the schema if needed",
		Long: "Set the admin password without knowing the current one. " +
			"This is the recovery path for a lost password.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}
			return withApp(func(app *entrypoint.App) error {
				ctx := cmd.Context()
				if err := app.Gate.InitializeSchema(ctx); err != nil {
					return err
				}
				if err := app.Gate.SetAdminCredential(ctx, password); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Admin password set")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "new admin password")
	return cmd
}

func newSetupResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the admin password and the logo; categories and bookmarks are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(app *entrypoint.App) error {
				if err := app.Gate.ResetSetupState(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Setup state reset")
				return nil
			})
		},
	}
}

func newSecretCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "secret",
		Short: "Print a random value for AUTH_SESSION_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := auth.GenerateSecret()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}
}
