package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Up              key.Binding
	Down            key.Binding
	PageUp          key.Binding
	PageDown        key.Binding
	Top             key.Binding
	Bottom          key.Binding
	Refresh         key.Binding
	ToggleShading   key.Binding
	ToggleUnit      key.Binding
	ToggleNotReady  key.Binding
	ToggleKeepOnTop key.Binding
	ZoomIn          key.Binding
	ZoomOut         key.Binding
	ZoomReset       key.Binding
	Copy            key.Binding
	CapacityMap     key.Binding
	Help            key.Binding
	Quit            key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("f5", "r"),
			key.WithHelp("F5/r", "refresh"),
		),
		ToggleShading: key.NewBinding(
			key.WithKeys("f7", "s"),
			key.WithHelp("F7/s", "shade rows"),
		),
		ToggleUnit: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "GB/GiB"),
		),
		ToggleNotReady: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "not ready drives"),
		),
		ToggleKeepOnTop: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "keep on top"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "=", "ctrl+up"),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "ctrl+down"),
			key.WithHelp("-", "zoom out"),
		),
		ZoomReset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset zoom"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+c", "y"),
			key.WithHelp("y", "copy"),
		),
		CapacityMap: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "capacity map"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1", "?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the help bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.ToggleUnit, k.ToggleShading, k.Copy, k.CapacityMap, k.Help, k.Quit}
}

// FullHelp returns all help bindings
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Refresh, k.ToggleUnit, k.ToggleNotReady},
		{k.ToggleShading, k.ZoomIn, k.ZoomOut, k.ZoomReset, k.ToggleKeepOnTop},
		{k.Copy, k.CapacityMap, k.Help, k.Quit},
	}
}
