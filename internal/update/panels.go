package update

import (
	"fmt"

	"github.com/sandeepkv93/routined/internal/model"
	"github.com/sandeepkv93/routined/internal/store"
	"github.com/sandeepkv93/routined/internal/views"
)

const commandReference = `# Commands

| command | effect |
|---|---|
| add <name> [HH:MM[:SS]] [@HH:MM] | new routine |
| start <n> | track a timed routine |
| stop | pause tracking |
| done <n> | mark done |
| reset <n\|all> | reset progress |
| delete <n> | remove |
| move <from> <to> | reorder |
| rename <n> <name> | rename |
| duration <n> <HH:MM\|none> | change duration |
| clear | dismiss finished notices |
| sort | toggle sort mode |

Routines are addressed by list position or id.`

func (m Model) renderRoutineList() string {
	items := make([]views.RoutineItemData, 0, len(m.State.Routines))
	for _, r := range m.State.Routines {
		items = append(items, routineItem(r))
	}
	return views.RenderRoutineList(views.RoutineListData{
		Items:   items,
		Cursor:  m.Cursor,
		Sorting: m.State.IsSorting,
	})
}

func routineItem(r model.Routine) views.RoutineItemData {
	item := views.RoutineItemData{
		ID:       r.ID,
		Name:     r.Name,
		Tracking: r.IsTracking,
		Done:     r.IsDone,
		Notify:   r.ShouldNotify,
	}
	if r.Duration != nil {
		item.Duration = r.Duration.Short()
	}
	if r.TimeLeft != nil {
		item.TimeLeft = r.TimeLeft.Short()
	}
	if r.Reminder != nil {
		item.Reminder = r.Reminder.String()
	}
	return item
}

func (m Model) renderDetail() string {
	r, ok := m.selected()
	if !ok {
		return views.RenderRoutineDetail(views.RoutineDetailData{})
	}
	item := routineItem(r)
	data := views.RoutineDetailData{
		ID:       r.ID,
		Name:     r.Name,
		Duration: item.Duration,
		TimeLeft: item.TimeLeft,
		Reminder: item.Reminder,
		State:    routineState(r),
	}
	if r.Timed() {
		pct := store.Progress(r)
		data.ProgressView = m.bar.ViewAs(pct)
		data.ProgressPct = int(pct * 100)
	}
	return views.RenderRoutineDetail(data)
}

func routineState(r model.Routine) string {
	switch {
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

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderNotifications() string {
	pending := store.PendingNotifications(m.State.Routines)
	names := make([]string, 0, len(pending))
	for _, r := range pending {
		names = append(names, r.Name)
	}
	return views.RenderNotifications(names)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := make([]string, 0, 16)
	for _, group := range m.Keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			bindings = append(bindings, fmt.Sprintf("- %s: %s", h.Key, h.Desc))
		}
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings:     bindings,
		HelpView:     m.helpModel.FullHelpView(m.Keys.FullHelp()),
		CommandsView: m.commandsHelp,
	})
}

// renderCommandsHelp caches the glamour output, which is too slow to redo
// on every frame.
func (m *Model) renderCommandsHelp() {
	if m.HelpVisible && m.commandsHelp == "" {
		m.commandsHelp = views.RenderMarkdown(commandReference, m.paneWidth())
	}
}
