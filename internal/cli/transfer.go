package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/routined/internal/store"
	"github.com/sandeepkv93/routined/internal/transfer"
	"github.com/spf13/cobra"
)

func newExportCommand(deps Deps, opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write routines to a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, deps, opts, func(_ context.Context, app *App) error {
				fallback, err := fallbackFormat(format, app.Config.ImportFormat)
				if err != nil {
					return err
				}
				routines := app.Store.State().Routines
				if err := transfer.WriteFile(args[0], routines, fallback); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d routines to %s\n", len(routines), args[0])
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "json or yaml when the extension does not tell")
	return cmd
}

func newImportCommand(deps Deps, opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all routines with the contents of a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, deps, opts, func(ctx context.Context, app *App) error {
				fallback, err := fallbackFormat(format, app.Config.ImportFormat)
				if err != nil {
					return err
				}
				state, err := transfer.ImportFile(app.Tracker, args[0], fallback)
				var verr *transfer.ValidationError
				if errors.As(err, &verr) {
					for _, p := range verr.Problems {
						_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", p)
					}
					return fmt.Errorf("import %s: %w", args[0], transfer.ErrSchema)
				}
				if err != nil {
					return err
				}
				if err := app.Save(ctx); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d routines\n", len(state.Routines))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "json or yaml when the extension does not tell")
	return cmd
}

func newResetCommand(deps Deps, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset every routine to not started",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, deps, opts, func(ctx context.Context, app *App) error {
				state := app.Tracker.Dispatch(store.ResetAll{})
				if err := app.Save(ctx); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "reset %d routines\n", len(state.Routines))
				return err
			})
		},
	}
}

func fallbackFormat(flag, configured string) (transfer.Format, error) {
	if flag != "" {
		return transfer.ParseFormat(flag)
	}
	return transfer.ParseFormat(configured)
}
