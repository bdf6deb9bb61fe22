// Package cli provides the command-line interface for routined.
package cli

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/sandeepkv93/routined/internal/config"
	"github.com/spf13/cobra"
)

// Deps are injected by main and replaced in tests.
type Deps struct {
	Clock clockwork.Clock
}

type rootOptions struct {
	configPath string
	envFile    string
}

// NewRootCommand creates the root command. With no subcommand it launches the TUI.
func NewRootCommand(deps Deps, version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "routined",
		Short: "Track daily routines against a countdown timer",
		Long: `routined keeps a list of daily routines. Timed routines count down while
tracked, one at a time, and the countdown keeps running while the app is closed.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, deps, opts, launchTUIFunc)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.toml")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "path to a .env file (default .env)")

	root.AddCommand(
		newTUICommand(deps, opts),
		newListCommand(deps, opts),
		newExportCommand(deps, opts),
		newImportCommand(deps, opts),
		newResetCommand(deps, opts),
	)
	return root
}

// withApp loads config, opens the app for the duration of fn and closes it.
func withApp(cmd *cobra.Command, deps Deps, opts *rootOptions, fn func(context.Context, *App) error) error {
	cfg, err := config.Load(config.Options{ConfigPath: opts.configPath, EnvFile: opts.envFile})
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := OpenApp(ctx, cfg, deps.Clock)
	if err != nil {
		return err
	}
	runErr := fn(ctx, app)
	closeErr := app.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}
