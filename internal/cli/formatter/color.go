package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox palette. Running is drawn in green, cycling in orange, and the
// orange doubles as the accent for headers and focused panels.
var (
	ColorRun    = lipgloss.Color("#8ec07c")
	ColorRide   = lipgloss.Color("#fe8019")
	ColorWarn   = lipgloss.Color("#fabd2f")
	ColorError  = lipgloss.Color("#fb4934")
	ColorBrand  = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorRide
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorRun)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorRide)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorWarn)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorError)
	StylePurple = lipgloss.NewStyle().Foreground(ColorBrand)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = StyleFg.Bold(true)
)

// ActivityColor returns the accent for t. Unknown types are dimmed.
func ActivityColor(t domain.ActivityType) lipgloss.Style {
	switch t {
	case domain.ActivityRunning:
		return StyleGreen
	case domain.ActivityCycling:
		return StyleOrange
	default:
		return StyleDim
	}
}

// ActivityBadge returns the colored icon and label, e.g. "🏃 Running".
func ActivityBadge(t domain.ActivityType) string {
	return ActivityColor(t).Render(t.Icon() + " " + t.Label())
}

// Header renders an upper-cased title over a dim rule of the same width.
func Header(text string) string {
	upper := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(rule))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
