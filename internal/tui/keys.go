package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	Submit    key.Binding
	Toggle    key.Binding
	NextCat   key.Binding
	PrevCat   key.Binding
	CycleFrom key.Binding
	CycleTo   key.Binding
	Swap      key.Binding
	Up        key.Binding
	Down      key.Binding
	Clear     key.Binding
	Copy      key.Binding
	Quit      key.Binding

	activeTab Tab
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Toggle:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "deg/rad")),
		NextCat:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next category")),
		PrevCat:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev category")),
		CycleFrom: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "from unit")),
		CycleTo:   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "to unit")),
		Swap:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "swap")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp shows the bindings of the active tab.
func (k keyMap) ShortHelp() []key.Binding {
	switch k.activeTab {
	case TabConverter:
		return []key.Binding{k.Submit, k.NextCat, k.PrevCat, k.CycleFrom, k.CycleTo, k.Swap, k.NextTab, k.Quit}
	case TabHistory:
		return []key.Binding{k.Up, k.Down, k.Submit, k.Copy, k.Clear, k.NextTab, k.Quit}
	default:
		return []key.Binding{k.Submit, k.Toggle, k.NextTab, k.Quit}
	}
}

// FullHelp returns every binding.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Submit, k.Quit},
		{k.Toggle},
		{k.NextCat, k.PrevCat, k.CycleFrom, k.CycleTo, k.Swap},
		{k.Up, k.Down, k.Copy, k.Clear},
	}
}
