package stage

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the widget's key bindings; it satisfies help.KeyMap.
type KeyMap struct {
	Add    key.Binding
	Remove key.Binding
	Up     key.Binding
	Down   key.Binding
	Cancel key.Binding
	Select key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add file")),
		Remove: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		// handled by the filepicker; listed for help only
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Remove, k.Up, k.Down}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Select, k.Cancel}}
}

// promptKeys is shown while the picker is open.
type promptKeys struct{ KeyMap }

func (k promptKeys) ShortHelp() []key.Binding { return []key.Binding{k.Up, k.Down, k.Select, k.Cancel} }
