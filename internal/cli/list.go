package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sandeepkv93/routined/internal/model"
	"github.com/spf13/cobra"
)

func newListCommand(deps Deps, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print routines with their current time left",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, deps, opts, func(_ context.Context, app *App) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), renderTable(app.Store.State().Routines))
				return err
			})
		},
	}
}

func renderTable(routines []model.Routine) string {
	if len(routines) == 0 {
		return "no routines"
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "NAME", "DURATION", "LEFT", "STATE", "REMINDER")
	for i, r := range routines {
		t.Row(fmt.Sprint(i+1), r.Name, spanOrDash(r.Duration), spanOrDash(r.TimeLeft), stateLabel(r), reminderOrDash(r.Reminder))
	}
	return t.Render()
}

func spanOrDash(s *model.Span) string {
	if s == nil {
		return "-"
	}
	return s.Short()
}

func reminderOrDash(t *model.TimeOfDay) string {
	if t == nil {
		return "-"
	}
	return t.String()
}

func stateLabel(r model.Routine) string {
	switch {
	case r.IsDone && r.ShouldNotify:
		return "finished"
	case r.IsDone:
		return "done"
	case r.IsTracking:
		return "tracking"
	case r.TimeLeft != nil:
		return "paused"
	default:
		return "idle"
	}
}
