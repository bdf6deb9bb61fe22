package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/routined/internal/logging"
	"github.com/sandeepkv93/routined/internal/update"
	"github.com/spf13/cobra"
)

// launchTUIFunc is a variable so tests can replace the interactive program.
var launchTUIFunc = launchTUI

func newTUICommand(deps Deps, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive tracker (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, deps, opts, launchTUIFunc)
		},
	}
}

// launchTUI runs the program until quit or until ctx is cancelled by a
// signal, and saves the session either way.
func launchTUI(ctx context.Context, app *App) error {
	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if app.Config.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	m := update.NewModel(update.Deps{
		Store:                app.Store,
		Tracker:              app.Tracker,
		Notifier:             notifier,
		DesktopNotifications: app.Config.DesktopNotifications,
		SubscriberBuffer:     app.Config.SubscriberBuffer,
		Logger:               app.Logger,
	})
	if app.Tracker.Resume() {
		app.Logger.Info("resumed tracking after restart")
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := program.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		app.Logger.Info("interrupted, saving", logging.Err(ctx.Err()))
		runErr = nil
	}
	// Save with a fresh context: the run context may already be cancelled.
	saveErr := app.Save(context.WithoutCancel(ctx))
	return errors.Join(runErr, saveErr)
}
