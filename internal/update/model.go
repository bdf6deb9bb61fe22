// Package update is the bubbletea model of the routine tracker TUI.
package update

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/routined/internal/model"
	"github.com/sandeepkv93/routined/internal/store"
	"github.com/sandeepkv93/routined/internal/tracker"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	At    time.Time
}

type Deps struct {
	Store                *store.Store
	Tracker              *tracker.Tracker
	Notifier             DesktopNotifier
	DesktopNotifications bool
	SubscriberBuffer     int
	Logger               *slog.Logger
}

type Model struct {
	State       model.State
	Cursor      int
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        KeyMap
	Quitting    bool
	LastError   error

	store       *store.Store
	tracker     *tracker.Tracker
	updates     <-chan model.State
	completions chan model.Routine
	notifier    DesktopNotifier
	desktop     bool
	logger      *slog.Logger

	commandInput textinput.Model
	bar          progress.Model
	helpModel    help.Model
	commandsHelp string
	width        int
}

type StateMsg struct {
	State model.State
}

type CompletedMsg struct {
	Routine model.Routine
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// NewModel subscribes to the store and installs the tracker's completion
// hook. Call it before the tracker is resumed.
func NewModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NoopDesktopNotifier{}
	}
	m := Model{
		State:       deps.Store.State(),
		Keys:        DefaultKeyMap(),
		store:       deps.Store,
		tracker:     deps.Tracker,
		updates:     deps.Store.Subscribe(deps.SubscriberBuffer),
		completions: make(chan model.Routine, 8),
		notifier:    notifier,
		desktop:     deps.DesktopNotifications,
		logger:      logger,
	}
	completions := m.completions
	deps.Tracker.OnComplete = func(r model.Routine) {
		select {
		case completions <- r:
		default:
		}
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40
	m.commandInput.Placeholder = "add Read 00:30 @21:00"

	m.bar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(28))
	m.helpModel = help.New()
}

func (m Model) selected() (model.Routine, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.State.Routines) {
		return model.Routine{}, false
	}
	return m.State.Routines[m.Cursor], true
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.State.Routines) {
		m.Cursor = len(m.State.Routines) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// dispatch routes every action through the tracker so the tick loop never
// outlives the routine it ticks.
func (m *Model) dispatch(a store.Action) {
	m.State = m.tracker.Dispatch(a)
	m.clampCursor()
}
