package cli

import "github.com/charmbracelet/bubbles/key"

// PanelID identifies each panel of the TUI.
type PanelID int

const (
	PanelMap PanelID = iota
	PanelList
	PanelForm
)

// Panel is implemented by every area the root model lays out. Panels are
// pointer-backed adapters, so they render and answer help queries but
// leave message routing to the root model.
type Panel interface {
	ID() PanelID
	Title() string            // breadcrumb segment while the panel has focus
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	View() string
}
