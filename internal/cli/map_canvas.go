package cli

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/cli/formatter"
	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minZoom = 1
	maxZoom = 18

	// cellsPerTile is how many columns one zoom-level tile spans.
	cellsPerTile = 4
)

var (
	_ app.MapWidget    = (*mapCanvas)(nil)
	_ app.MapHandle    = (*mapCanvas)(nil)
	_ app.MarkerHandle = (*mapMarker)(nil)
)

type mapMarker struct {
	at    domain.Coords
	popup string
}

func (m *mapMarker) Coords() domain.Coords { return m.at }

type mapKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Click   key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
}

func defaultMapKeyMap() mapKeyMap {
	return mapKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓←→", "move")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Left:    key.NewBinding(key.WithKeys("left", "h")),
		Right:   key.NewBinding(key.WithKeys("right", "l")),
		Click:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "log workout here")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut: key.NewBinding(key.WithKeys("-")),
	}
}

// mapCanvas draws an equirectangular character grid around a center. It
// serves as the app.MapWidget and, once initialized, as its app.MapHandle.
// The cursor is kept as a cell offset from the center.
type mapCanvas struct {
	keys mapKeyMap

	ready   bool
	center  domain.Coords
	zoom    int
	markers []*mapMarker
	open    *mapMarker // marker whose popup is showing
	onClick func(domain.Coords)

	width, height        int
	cursorCol, cursorRow int
	focused              bool
}

func newMapCanvas() *mapCanvas {
	return &mapCanvas{keys: defaultMapKeyMap(), width: 48, height: 16}
}

func clampZoom(z int) int {
	return min(max(z, minZoom), maxZoom)
}

// Initialize shows the map centered on center. Markers from a previous
// initialization are dropped.
func (c *mapCanvas) Initialize(center domain.Coords, zoom int) app.MapHandle {
	c.ready = true
	c.center = center
	c.zoom = clampZoom(zoom)
	c.markers = nil
	c.open = nil
	c.cursorCol, c.cursorRow = 0, 0
	return c
}

func (c *mapCanvas) OnClick(handler func(domain.Coords)) { c.onClick = handler }

// AddMarker places a marker and opens its popup.
func (c *mapCanvas) AddMarker(at domain.Coords, popup string) app.MarkerHandle {
	m := &mapMarker{at: at, popup: popup}
	c.markers = append(c.markers, m)
	c.open = m
	return m
}

func (c *mapCanvas) RemoveMarker(h app.MarkerHandle) {
	m, ok := h.(*mapMarker)
	if !ok {
		return
	}
	c.markers = slices.DeleteFunc(c.markers, func(x *mapMarker) bool { return x == m })
	if c.open == m {
		c.open = nil
	}
}

// PanTo recenters the map and opens the popup of the marker at center.
func (c *mapCanvas) PanTo(center domain.Coords, zoom int) {
	c.center = center
	c.zoom = clampZoom(zoom)
	c.cursorCol, c.cursorRow = 0, 0
	c.open = nil
	for _, m := range c.markers {
		if m.at == center {
			c.open = m
		}
	}
}

func (c *mapCanvas) SetSize(width, height int) {
	c.width = max(width, 8)
	c.height = max(height, 4)
}

// lngPerCol is the longitude span of one column at the current zoom.
func (c *mapCanvas) lngPerCol() float64 {
	return 360 / math.Exp2(float64(c.zoom)) / cellsPerTile
}

// latPerRow is the latitude span of one row. Terminal cells are about
// twice as tall as they are wide.
func (c *mapCanvas) latPerRow() float64 {
	return 2 * c.lngPerCol()
}

// coordsAt returns the position under the cell at offset (col, row).
func (c *mapCanvas) coordsAt(col, row int) domain.Coords {
	lat := c.center.Lat - float64(row)*c.latPerRow()
	lng := c.center.Lng + float64(col)*c.lngPerCol()
	return domain.Coords{
		Lat: min(max(lat, -90), 90),
		Lng: wrapLng(lng),
	}
}

// cellOf returns the offset of the cell containing at.
func (c *mapCanvas) cellOf(at domain.Coords) (col, row int) {
	dLng := wrapLng(at.Lng - c.center.Lng)
	col = int(math.Round(dLng / c.lngPerCol()))
	row = int(math.Round((c.center.Lat - at.Lat) / c.latPerRow()))
	return col, row
}

func wrapLng(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}

// CursorCoords is the position a click would report.
func (c *mapCanvas) CursorCoords() domain.Coords {
	return c.coordsAt(c.cursorCol, c.cursorRow)
}

// move shifts the cursor, scrolling the map when it would leave the grid.
func (c *mapCanvas) move(dCol, dRow int) {
	halfW, halfH := c.width/2, c.height/2
	col, row := c.cursorCol+dCol, c.cursorRow+dRow
	if col < -halfW || col >= c.width-halfW {
		c.center.Lng = wrapLng(c.center.Lng + float64(dCol)*c.lngPerCol())
		col = c.cursorCol
	}
	if row < -halfH || row >= c.height-halfH {
		c.center.Lat = min(max(c.center.Lat-float64(dRow)*c.latPerRow(), -90), 90)
		row = c.cursorRow
	}
	c.cursorCol, c.cursorRow = col, row
}

// zoomBy zooms around the cursor.
func (c *mapCanvas) zoomBy(delta int) {
	c.center = c.CursorCoords()
	c.cursorCol, c.cursorRow = 0, 0
	c.zoom = clampZoom(c.zoom + delta)
}

// HandleKey applies a key press. Keys are ignored until the map exists.
func (c *mapCanvas) HandleKey(msg tea.KeyMsg) {
	if !c.ready {
		return
	}
	switch {
	case key.Matches(msg, c.keys.Up):
		c.move(0, -1)
	case key.Matches(msg, c.keys.Down):
		c.move(0, 1)
	case key.Matches(msg, c.keys.Left):
		c.move(-1, 0)
	case key.Matches(msg, c.keys.Right):
		c.move(1, 0)
	case key.Matches(msg, c.keys.ZoomIn):
		c.zoomBy(1)
	case key.Matches(msg, c.keys.ZoomOut):
		c.zoomBy(-1)
	case key.Matches(msg, c.keys.Click):
		if c.onClick != nil {
			c.onClick(c.CursorCoords())
		}
	}
}

func markerStyle(m *mapMarker) lipgloss.Style {
	for _, t := range domain.ActivityTypes {
		if strings.HasPrefix(m.popup, t.Icon()) {
			return formatter.ActivityColor(t)
		}
	}
	return formatter.StyleFg
}

// ── Panel ────────────────────────────────────────────────────────────────────

func (c *mapCanvas) ID() PanelID   { return PanelMap }
func (c *mapCanvas) Title() string { return "map" }

func (c *mapCanvas) ShortHelp() []key.Binding {
	return []key.Binding{c.keys.Up, c.keys.Click, c.keys.ZoomIn}
}

func (c *mapCanvas) View() string {
	if !c.ready {
		pad := strings.Repeat("\n", c.height/2)
		return pad + lipgloss.PlaceHorizontal(c.width, lipgloss.Center, formatter.Dim("Locating…"))
	}

	type cell struct{ col, row int }
	placed := make(map[cell]*mapMarker, len(c.markers))
	for _, m := range c.markers {
		col, row := c.cellOf(m.at)
		placed[cell{col, row}] = m
	}

	halfW, halfH := c.width/2, c.height/2
	var b strings.Builder
	for r := 0; r < c.height; r++ {
		row := r - halfH
		for k := 0; k < c.width; k++ {
			col := k - halfW
			isCursor := c.focused && col == c.cursorCol && row == c.cursorRow
			m := placed[cell{col, row}]
			switch {
			case m != nil && isCursor:
				b.WriteString(formatter.StyleHeader.Render("◉"))
			case m != nil && m == c.open:
				b.WriteString(markerStyle(m).Bold(true).Render("◉"))
			case m != nil:
				b.WriteString(markerStyle(m).Render("●"))
			case isCursor:
				b.WriteString(formatter.StyleHeader.Render("+"))
			case col%4 == 0 && row%2 == 0:
				b.WriteString(formatter.Dim("·"))
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}

	footer := formatter.Dim(fmt.Sprintf("⌖ %s  z%d", c.CursorCoords(), c.zoom))
	if c.open != nil {
		footer = formatter.Bold(c.open.popup) + "  " + footer
	}
	b.WriteString(footer)
	return b.String()
}
