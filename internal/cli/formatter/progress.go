package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders a bar like ████░░░░ with ratio of width filled in style.
func RenderBar(ratio float64, width int, style lipgloss.Style) string {
	ratio = min(max(ratio, 0), 1)
	if width < 2 {
		width = 2
	}

	filled := min(int(ratio*float64(width)+0.5), width)
	return style.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}
