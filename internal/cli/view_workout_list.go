package cli

import (
	"slices"
	"strings"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

var _ app.ListUI = (*workoutList)(nil)

// rowHeight is the number of lines one rendered row takes, including the
// blank separator line.
const rowHeight = 3

type listAction int

const (
	listActionNone listAction = iota
	listActionPan
	listActionDelete
)

type listKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Pan    key.Binding
	Delete key.Binding
}

func defaultListKeyMap() listKeyMap {
	return listKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "navigate")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Pan:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show on map")),
		Delete: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
	}
}

type listRow struct {
	id       string
	rendered string
}

// workoutList is the app.ListUI. Rows keep the order they were appended
// in and scroll inside a viewport that follows the cursor.
type workoutList struct {
	keys    listKeyMap
	rows    []listRow
	cursor  int
	focused bool
	vp      viewport.Model
}

func newWorkoutList() *workoutList {
	return &workoutList{
		keys: defaultListKeyMap(),
		vp:   viewport.New(formWidth, 16),
	}
}

func (l *workoutList) AppendRow(id, rendered string) {
	l.rows = append(l.rows, listRow{id: id, rendered: rendered})
	l.refresh()
}

func (l *workoutList) RemoveRow(id string) {
	l.rows = slices.DeleteFunc(l.rows, func(r listRow) bool { return r.id == id })
	l.refresh()
}

func (l *workoutList) Clear() {
	l.rows = nil
	l.cursor = 0
	l.refresh()
}

func (l *workoutList) SetSize(width, height int) {
	l.vp.Width = max(width, 10)
	l.vp.Height = max(height, rowHeight)
	l.refresh()
}

func (l *workoutList) SetFocused(focused bool) {
	l.focused = focused
	l.refresh()
}

// Selected returns the id of the row under the cursor.
func (l *workoutList) Selected() (string, bool) {
	if len(l.rows) == 0 {
		return "", false
	}
	return l.rows[l.cursor].id, true
}

// HandleKey moves the cursor or reports the action the key asks for on
// the selected row.
func (l *workoutList) HandleKey(msg tea.KeyMsg) (listAction, string) {
	switch {
	case key.Matches(msg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
			l.refresh()
		}
	case key.Matches(msg, l.keys.Down):
		if l.cursor < len(l.rows)-1 {
			l.cursor++
			l.refresh()
		}
	case key.Matches(msg, l.keys.Pan):
		if id, ok := l.Selected(); ok {
			return listActionPan, id
		}
	case key.Matches(msg, l.keys.Delete):
		if id, ok := l.Selected(); ok {
			return listActionDelete, id
		}
	}
	return listActionNone, ""
}

// refresh re-renders the rows into the viewport and scrolls the cursor
// row into view.
func (l *workoutList) refresh() {
	l.cursor = min(max(l.cursor, 0), max(len(l.rows)-1, 0))

	var b strings.Builder
	for i, r := range l.rows {
		prefix := "  "
		if l.focused && i == l.cursor {
			prefix = formatter.StyleHeader.Render("› ")
		}
		lines := strings.Split(r.rendered, "\n")
		for j, line := range lines {
			if j > 0 {
				prefix = "  "
			}
			b.WriteString(prefix + line + "\n")
		}
		b.WriteString("\n")
	}
	l.vp.SetContent(strings.TrimRight(b.String(), "\n"))

	top := l.cursor * rowHeight
	switch {
	case top < l.vp.YOffset:
		l.vp.SetYOffset(top)
	case top+rowHeight > l.vp.YOffset+l.vp.Height:
		l.vp.SetYOffset(top + rowHeight - l.vp.Height)
	}
}

// ── Panel ────────────────────────────────────────────────────────────────────

func (l *workoutList) ID() PanelID   { return PanelList }
func (l *workoutList) Title() string { return "workouts" }

func (l *workoutList) ShortHelp() []key.Binding {
	return []key.Binding{l.keys.Up, l.keys.Pan, l.keys.Delete}
}

func (l *workoutList) View() string {
	if len(l.rows) == 0 {
		return formatter.Dim("No workouts yet. Pick a spot on the map to log one.")
	}
	return l.vp.View()
}
