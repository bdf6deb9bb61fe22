package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/routined/internal/commands"
	"github.com/sandeepkv93/routined/internal/logging"
	"github.com/sandeepkv93/routined/internal/model"
	"github.com/sandeepkv93/routined/internal/store"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case tea.KeyEnter:
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
		return m, nil
	case tea.KeyCtrlC:
		m.Quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.logger.Debug("palette command", logging.Action(string(cmd.Type)))

	resolve := func(target string) (model.Routine, error) {
		return commands.Resolve(target, m.State.Routines)
	}
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.dispatch(store.NewAdd(model.Routine{Name: a.Name, Duration: a.Duration, Reminder: a.Reminder}))
			m.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("added %s", a.Name)}, nil
		},
		Start: func(a commands.TargetArgs) (commands.Result, error) {
			r, err := resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if !r.Timed() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s has no duration", r.Name)}
			}
			m.State = m.tracker.Start(r.ID)
			return commands.Result{Message: fmt.Sprintf("tracking %s", r.Name)}, nil
		},
		Stop: func() (commands.Result, error) {
			m.State = m.tracker.Stop()
			return commands.Result{Message: "tracker stopped"}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			r, err := resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			m.dispatch(store.MarkDone{ID: r.ID})
			return commands.Result{Message: fmt.Sprintf("%s done", r.Name)}, nil
		},
		Reset: func(a commands.ResetArgs) (commands.Result, error) {
			if a.All {
				m.dispatch(store.ResetAll{})
				return commands.Result{Message: "all routines reset"}, nil
			}
			r, err := resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			m.dispatch(store.ResetTracker{ID: r.ID})
			return commands.Result{Message: fmt.Sprintf("%s reset", r.Name)}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			r, err := resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			m.dispatch(store.Delete{ID: r.ID})
			return commands.Result{Message: fmt.Sprintf("%s deleted", r.Name)}, nil
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			n := len(m.State.Routines)
			if a.From >= n || a.To >= n {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeUnknownTarget, Message: fmt.Sprintf("positions must be between 1 and %d", n)}
			}
			m.dispatch(store.Move{From: a.From, To: a.To})
			m.Cursor = a.To
			return commands.Result{Message: fmt.Sprintf("moved %d to %d", a.From+1, a.To+1)}, nil
		},
		Rename: func(a commands.RenameArgs) (commands.Result, error) {
			r, err := resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			name := a.Name
			m.dispatch(store.Edit{ID: r.ID, Patch: store.Patch{Name: &name}})
			return commands.Result{Message: fmt.Sprintf("renamed %s to %s", r.Name, name)}, nil
		},
		Duration: func(a commands.DurationArgs) (commands.Result, error) {
			r, err := resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if a.Duration == nil {
				m.dispatch(store.Edit{ID: r.ID, Patch: store.Patch{ClearDuration: true}})
				return commands.Result{Message: fmt.Sprintf("%s is untimed", r.Name)}, nil
			}
			m.dispatch(store.Edit{ID: r.ID, Patch: store.Patch{Duration: a.Duration}})
			return commands.Result{Message: fmt.Sprintf("%s set to %s", r.Name, a.Duration.Short())}, nil
		},
		Clear: func() (commands.Result, error) {
			m.dispatch(store.ClearNotifications{})
			return commands.Result{Message: "notifications cleared"}, nil
		},
		Sort: func() (commands.Result, error) {
			m.dispatch(store.ToggleSorting{})
			return commands.Result{Message: fmt.Sprintf("sort mode %s", onOff(m.State.IsSorting))}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
