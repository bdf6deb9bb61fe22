package update

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/sandeepkv93/routined/internal/model"
	"github.com/sandeepkv93/routined/internal/scheduler"
	"github.com/sandeepkv93/routined/internal/store"
	"github.com/sandeepkv93/routined/internal/tracker"
)

type recordingNotifier struct {
	sent []Notification
}

func (r *recordingNotifier) Send(n Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func span(t *testing.T, raw string) *model.Span {
	t.Helper()
	s, err := model.ParseSpan(raw)
	if err != nil {
		t.Fatalf("parse span %q: %v", raw, err)
	}
	return &s
}

func newTestModel(t *testing.T, notifier DesktopNotifier) (Model, *store.Store, *tracker.Tracker) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(model.State{Routines: []model.Routine{
		{ID: "a", Name: "Stretch", Duration: span(t, "00:10")},
		{ID: "b", Name: "Read", Duration: span(t, "00:30")},
		{ID: "c", Name: "Plan"},
	}}, logger)
	tr := tracker.New(st, scheduler.NewLoop(clockwork.NewFakeClock()), logger)
	t.Cleanup(tr.Shutdown)
	m := NewModel(Deps{
		Store:                st,
		Tracker:              tr,
		Notifier:             notifier,
		DesktopNotifications: notifier != nil,
		SubscriberBuffer:     4,
		Logger:               logger,
	})
	return m, st, tr
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runPalette(t *testing.T, m Model, input string) Model {
	t.Helper()
	m = press(t, m, "/")
	if !m.Palette.Active {
		t.Fatal("expected palette to open")
	}
	m = press(t, m, input, "enter")
	if m.Palette.Active {
		t.Fatal("expected palette to close after enter")
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	if m.Cursor != 0 || len(m.State.Routines) != 3 {
		t.Fatalf("unexpected initial model: cursor=%d routines=%d", m.Cursor, len(m.State.Routines))
	}
	if m.Init() == nil {
		t.Fatal("expected init to wait for store updates")
	}
}

func TestEnterTogglesTracking(t *testing.T) {
	m, _, tr := newTestModel(t, nil)
	m = press(t, m, "enter")
	if !m.State.Routines[0].IsTracking || !tr.Running() {
		t.Fatalf("expected first routine tracking, got %+v running=%v", m.State.Routines[0], tr.Running())
	}
	m = press(t, m, "space")
	if m.State.Routines[0].IsTracking || tr.Running() {
		t.Fatalf("expected tracking paused, got %+v running=%v", m.State.Routines[0], tr.Running())
	}
	if m.State.Routines[0].TimeLeft == nil {
		t.Fatal("pause should keep time left")
	}
}

func TestEnterOnUntimedRoutineIsRejected(t *testing.T) {
	m, _, tr := newTestModel(t, nil)
	m = press(t, m, "j", "j", "enter")
	if tr.Running() || !m.Status.IsError {
		t.Fatalf("expected error status and no loop, status=%+v", m.Status)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	m = press(t, m, "k", "j", "j", "j", "j")
	if m.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", m.Cursor)
	}
	m = press(t, m, "x")
	if len(m.State.Routines) != 2 || m.Cursor != 1 {
		t.Fatalf("expected delete to clamp cursor, got cursor=%d routines=%d", m.Cursor, len(m.State.Routines))
	}
}

func TestPaletteAddPrepends(t *testing.T) {
	m, st, _ := newTestModel(t, nil)
	m = runPalette(t, m, "add Evening walk 00:20 @19:00")
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	first := st.State().Routines[0]
	if first.Name != "Evening walk" || first.Duration.Short() != "00:20:00" || first.Reminder.String() != "19:00" {
		t.Fatalf("unexpected added routine: %+v", first)
	}
	if first.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestPaletteStartAndStop(t *testing.T) {
	m, _, tr := newTestModel(t, nil)
	m = runPalette(t, m, "start 2")
	if !m.State.Routines[1].IsTracking || !tr.Running() {
		t.Fatalf("expected second routine tracking: %+v", m.State.Routines[1])
	}
	m = runPalette(t, m, "stop")
	if tr.Running() {
		t.Fatal("expected loop cancelled")
	}
}

func TestPaletteErrors(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	for _, in := range []string{"fly away", "start 9", "start 3", "move 1 7"} {
		m = runPalette(t, m, in)
		if !m.Status.IsError {
			t.Fatalf("%q: expected error status, got %+v", in, m.Status)
		}
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	m = press(t, m, "/", "add x", "esc")
	if m.Palette.Active || len(m.State.Routines) != 3 {
		t.Fatalf("esc should discard input: active=%v routines=%d", m.Palette.Active, len(m.State.Routines))
	}
}

func TestSortModeMovesSelection(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	m = press(t, m, "J")
	if !m.Status.IsError {
		t.Fatal("moving outside sort mode should be refused")
	}
	m = press(t, m, "s", "J")
	if !m.State.IsSorting {
		t.Fatal("expected sort mode on")
	}
	if m.State.Routines[1].ID != "a" || m.Cursor != 1 {
		t.Fatalf("expected a moved to index 1, cursor=%d order=%v", m.Cursor, ids(m.State.Routines))
	}
}

func TestAcknowledgeAndClear(t *testing.T) {
	m, st, _ := newTestModel(t, nil)
	st.Dispatch(store.SetRoutines{Routines: []model.Routine{
		{ID: "a", Name: "A", IsDone: true, ShouldNotify: true},
		{ID: "b", Name: "B", IsDone: true, ShouldNotify: true},
		{ID: "c", Name: "C", IsDone: true, ShouldNotify: true},
	}})
	updated, _ := m.Update(StateMsg{})
	m = updated.(Model)
	if !strings.Contains(m.View(), "finished:") {
		t.Fatal("expected finished notifications in view")
	}
	m = press(t, m, "j", "n")
	if m.State.Routines[1].ShouldNotify || !m.State.Routines[0].ShouldNotify {
		t.Fatalf("expected only selected acknowledged: %+v", m.State.Routines)
	}
	m = press(t, m, "n")
	if m.State.Routines[0].ShouldNotify {
		t.Fatal("expected oldest pending acknowledged when selection has none")
	}
	m = press(t, m, "c")
	if len(store.PendingNotifications(m.State.Routines)) != 0 {
		t.Fatal("expected all notifications cleared")
	}
}

func TestCompletedMsgNotifies(t *testing.T) {
	n := &recordingNotifier{}
	m, _, _ := newTestModel(t, n)
	updated, cmd := m.Update(CompletedMsg{Routine: model.Routine{ID: "a", Name: "Stretch"}})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected to keep waiting for completions")
	}
	if m.Status.Text != "Stretch finished" || len(n.sent) != 1 {
		t.Fatalf("unexpected status=%+v sent=%d", m.Status, len(n.sent))
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	m = press(t, m, "enter", "?")
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	for _, want := range []string{"0/3 done", "tracking: Stretch 00:10:00", "Read", "status: all good", "help:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}

func ids(routines []model.Routine) []string {
	out := make([]string, 0, len(routines))
	for _, r := range routines {
		out = append(out, r.ID)
	}
	return out
}
