package update

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Done     key.Binding
	Reset    key.Binding
	ResetAll key.Binding
	Delete   key.Binding
	Ack      key.Binding
	Clear    key.Binding
	Sort     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "start/stop")),
		Done:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "mark done")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		ResetAll: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset all")),
		Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Ack:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "acknowledge")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear finished")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort mode")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Palette:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Done, k.Palette, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Done},
		{k.Reset, k.ResetAll, k.Delete},
		{k.Ack, k.Clear},
		{k.Sort, k.MoveUp, k.MoveDown},
		{k.Palette, k.Help, k.Quit},
	}
}
