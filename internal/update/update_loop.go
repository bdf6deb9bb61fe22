package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/routined/internal/logging"
	"github.com/sandeepkv93/routined/internal/model"
	"github.com/sandeepkv93/routined/internal/store"
	"github.com/sandeepkv93/routined/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForStateCmd(m.updates), waitForCompletionCmd(m.completions))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.commandsHelp = ""
		m.renderCommandsHelp()
		return m, nil
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		return m.handleKey(typed)
	case StateMsg:
		// Snapshots can be dropped under load, so always show the latest.
		m.State = m.store.State()
		m.clampCursor()
		return m, waitForStateCmd(m.updates)
	case CompletedMsg:
		body := fmt.Sprintf("%s finished", typed.Routine.Name)
		m.Status = StatusBar{Text: body}
		if m.desktop {
			if err := m.notifier.Send(Notification{Title: "routined", Body: body, At: time.Now()}); err != nil {
				m.logger.Warn("desktop notification failed", logging.Err(err))
			}
		}
		return m, waitForCompletionCmd(m.completions)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.Keys
	switch {
	case key.Matches(msg, k.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.Palette):
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		return m, m.commandInput.Focus()
	case key.Matches(msg, k.Help):
		m.HelpVisible = !m.HelpVisible
		m.renderCommandsHelp()
		return m, nil
	case key.Matches(msg, k.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, k.Down):
		if m.Cursor < len(m.State.Routines)-1 {
			m.Cursor++
		}
	case key.Matches(msg, k.MoveUp), key.Matches(msg, k.MoveDown):
		if !m.State.IsSorting {
			m.Status = StatusBar{Text: "press s to enter sort mode first", IsError: true}
			return m, nil
		}
		to := m.Cursor + 1
		if key.Matches(msg, k.MoveUp) {
			to = m.Cursor - 1
		}
		if to >= 0 && to < len(m.State.Routines) {
			m.dispatch(store.Move{From: m.Cursor, To: to})
			m.Cursor = to
		}
	case key.Matches(msg, k.Sort):
		m.dispatch(store.ToggleSorting{})
	case key.Matches(msg, k.ResetAll):
		m.dispatch(store.ResetAll{})
		m.Status = StatusBar{Text: "all routines reset"}
	case key.Matches(msg, k.Clear):
		m.dispatch(store.ClearNotifications{})
	case key.Matches(msg, k.Ack):
		m.acknowledge()
	default:
		return m.handleRoutineKey(msg)
	}
	return m, nil
}

// handleRoutineKey covers the bindings that act on the selected routine.
func (m Model) handleRoutineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		return m, nil
	}
	k := m.Keys
	switch {
	case key.Matches(msg, k.Toggle):
		m.toggle(r)
	case key.Matches(msg, k.Done):
		m.dispatch(store.MarkDone{ID: r.ID})
		m.Status = StatusBar{Text: fmt.Sprintf("%s done", r.Name)}
	case key.Matches(msg, k.Reset):
		m.dispatch(store.ResetTracker{ID: r.ID})
		m.Status = StatusBar{Text: fmt.Sprintf("%s reset", r.Name)}
	case key.Matches(msg, k.Delete):
		m.dispatch(store.Delete{ID: r.ID})
		m.Status = StatusBar{Text: fmt.Sprintf("%s deleted", r.Name)}
	}
	return m, nil
}

func (m *Model) toggle(r model.Routine) {
	switch {
	case r.IsTracking:
		m.State = m.tracker.Stop()
		m.Status = StatusBar{Text: fmt.Sprintf("%s paused", r.Name)}
	case !r.Timed():
		m.Status = StatusBar{Text: fmt.Sprintf("%s has no duration to track", r.Name), IsError: true}
	default:
		m.State = m.tracker.Start(r.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("tracking %s", r.Name)}
	}
}

// acknowledge clears the selected routine's notification, or the oldest
// pending one when the selection has none.
func (m *Model) acknowledge() {
	if r, ok := m.selected(); ok && r.ShouldNotify {
		m.dispatch(store.Acknowledge{ID: r.ID})
		return
	}
	pending := store.PendingNotifications(m.State.Routines)
	if len(pending) > 0 {
		m.dispatch(store.Acknowledge{ID: pending[0].ID})
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		}
	}
	right := m.renderDetail() + m.renderCommandPalette() + m.renderHelpIfVisible()
	return views.RenderApp(views.AppData{
		Header:       m.header(),
		LeftPane:     m.renderRoutineList(),
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotifications(),
		Footer:       m.helpModel.ShortHelpView(m.Keys.ShortHelp()),
		PaneWidth:    m.paneWidth(),
	})
}

func (m Model) header() string {
	done := 0
	for _, r := range m.State.Routines {
		if r.IsDone {
			done++
		}
	}
	h := fmt.Sprintf("routined | %d/%d done", done, len(m.State.Routines))
	if r, ok := store.Tracking(m.State.Routines); ok {
		left, _ := r.Remaining()
		h += fmt.Sprintf(" | tracking: %s %s", r.Name, left.Short())
	}
	return h
}

func (m Model) paneWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width/2 - 4
	if w < 24 {
		w = 24
	}
	return w
}

func waitForStateCmd(ch <-chan model.State) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return StateMsg{State: s}
	}
}

func waitForCompletionCmd(ch <-chan model.Routine) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return CompletedMsg{Routine: r}
	}
}
