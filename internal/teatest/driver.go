// Package teatest runs a tea.Model without a tea.Program. Update is called
// on the test goroutine and every returned Cmd is executed and fed back
// until nothing is left, so a test sees the settled model after each key.
//
// A Cmd that has not returned within cmdTimeout is dropped. Timers such as
// a form settle delay or cursor blink therefore never fire on their own; a
// test that needs the message sends it with Send.
package teatest

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many Cmd hops one Send may follow.
const MaxDrainDepth = 100

// cmdTimeout separates message factories, which return at once, from
// timer Cmds, which sleep for hundreds of milliseconds.
const cmdTimeout = 10 * time.Millisecond

var cmdType = reflect.TypeOf(tea.Cmd(nil))

// Driver holds the model under test and replaces it with whatever each
// Update returns.
type Driver struct {
	T     testing.TB
	Model tea.Model

	// Quitting reports that a drained Cmd produced tea.QuitMsg. Once set,
	// Send is a no-op.
	Quitting bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg of w by h before Init runs.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// New wraps model. Init is not run until DrainInit.
func New(t testing.TB, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send runs msg through Update and drains the Cmds it yields.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

func (d *Driver) press(t tea.KeyType) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: t})
}

// PressKey sends r as a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter()    { d.T.Helper(); d.press(tea.KeyEnter) }
func (d *Driver) PressEsc()      { d.T.Helper(); d.press(tea.KeyEsc) }
func (d *Driver) PressCtrlC()    { d.T.Helper(); d.press(tea.KeyCtrlC) }
func (d *Driver) PressTab()      { d.T.Helper(); d.press(tea.KeyTab) }
func (d *Driver) PressShiftTab() { d.T.Helper(); d.press(tea.KeyShiftTab) }
func (d *Driver) PressUp()       { d.T.Helper(); d.press(tea.KeyUp) }
func (d *Driver) PressDown()     { d.T.Helper(); d.press(tea.KeyDown) }
func (d *Driver) PressLeft()     { d.T.Helper(); d.press(tea.KeyLeft) }
func (d *Driver) PressRight()    { d.T.Helper(); d.press(tea.KeyRight) }

// Type presses each rune of s in turn.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: gave up draining after %d hops", MaxDrainDepth)
		return
	}

	msg, ok := run(cmd)
	if !ok || msg == nil || isBlink(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, c := range m {
			d.drain(c, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(m)
		return
	}

	if seq, ok := sequence(msg); ok {
		for _, c := range seq {
			d.drain(c, depth+1)
		}
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

// sequence unpacks tea.Sequence's unexported []Cmd message.
func sequence(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || v.Type().Elem() != cmdType {
		return nil, false
	}
	cmds := make([]tea.Cmd, 0, v.Len())
	for i := range v.Len() {
		if c, ok := v.Index(i).Interface().(tea.Cmd); ok {
			cmds = append(cmds, c)
		}
	}
	return cmds, true
}

// run executes cmd, reporting false if it is still running after cmdTimeout.
func run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

// isBlink matches the cursor package's unexported blink messages, which
// would otherwise schedule another blink timer.
func isBlink(msg tea.Msg) bool {
	name := strings.ToLower(fmt.Sprintf("%T", msg))
	return strings.Contains(name, "blink")
}
