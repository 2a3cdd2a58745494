package cli

import (
	"testing"

	"github.com/alexanderramin/trailog/internal/service"
	"github.com/alexanderramin/trailog/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
)

// TestDriver wraps teatest.Driver with access to the appModel's
// controller and adapters, which the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver constructs the appModel, sets the terminal size and
// drains Init(), which resolves the location and loads saved workouts
// synchronously from in-memory SQLite.
func NewTestDriver(t *testing.T, a *App) *TestDriver {
	t.Helper()

	m := newAppModel(a)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// FillForm types the three visible numeric fields, pressing Enter after
// each. The last Enter submits the form.
func (d *TestDriver) FillForm(distance, duration, extra string) {
	d.T.Helper()
	d.Type(distance)
	d.PressEnter()
	d.Type(duration)
	d.PressEnter()
	d.Type(extra)
	d.PressEnter()
}

// PressBackspace deletes n characters from the focused input.
func (d *TestDriver) PressBackspace(n int) {
	d.T.Helper()
	for range n {
		d.SendKey(tea.KeyMsg{Type: tea.KeyBackspace})
	}
}

// ── Inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

func (d *TestDriver) Controller() *service.SessionController { return d.appModel().ctrl }
func (d *TestDriver) Canvas() *mapCanvas                    { return d.appModel().canvas }
func (d *TestDriver) Form() *workoutForm                    { return d.appModel().form }
func (d *TestDriver) List() *workoutList                    { return d.appModel().list }
func (d *TestDriver) Status() *statusLine                   { return d.appModel().status }
func (d *TestDriver) Focus() PanelID                        { return d.appModel().focus }

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// RowIDs returns the list rows' workout ids in display order.
func (d *TestDriver) RowIDs() []string {
	rows := d.List().rows
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.id)
	}
	return ids
}
