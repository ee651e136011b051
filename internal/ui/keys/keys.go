// Package keys defines the key bindings shared by all views.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the views match against
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
	Tab   key.Binding
	Help  key.Binding

	New      key.Binding
	NewGroup key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Collapse key.Binding

	ToggleView  key.Binding
	Today       key.Binding
	Move        key.Binding
	ResizeStart key.Binding
	ResizeEnd   key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "later")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "earlier")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "select")),
		Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		NewGroup: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "new group")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Collapse: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "fold group")),

		ToggleView:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "daily/weekly")),
		Today:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Move:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		ResizeStart: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "resize start")),
		ResizeEnd:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "resize end")),
	}
}

// ShortHelp returns the bindings shown in the chart footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.ResizeStart, k.ResizeEnd, k.ToggleView, k.Today, k.New, k.Help, k.Quit}
}

// FullHelp returns every chart binding, grouped for the help popup
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Today, k.ToggleView},
		{k.Move, k.ResizeStart, k.ResizeEnd, k.Enter, k.Back},
		{k.New, k.NewGroup, k.Edit, k.Delete, k.Collapse},
		{k.Help, k.Quit},
	}
}
