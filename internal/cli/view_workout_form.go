package cli

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/cli/formatter"
	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const formWidth = 40

var _ app.FormUI = (*workoutForm)(nil)

// formSettledMsg ends the settle delay started by Hide. gen ties it to
// the Hide call that scheduled it.
type formSettledMsg struct {
	gen int
}

// trailogHuhTheme returns a huh theme matching the gruvbox palette.
func trailogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorRun)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// workoutForm is the app.FormUI backed by a huh form. Field values live in
// the adapter so they survive rebuilding the huh.Form, which cannot be
// reused once completed.
type workoutForm struct {
	state *SharedState

	activity  string
	distance  string
	duration  string
	cadence   string
	elevation string
	extra     app.ExtraField
	lastType  domain.ActivityType

	visible  bool
	settling bool
	gen      int
	form     *huh.Form
}

func newWorkoutForm(state *SharedState) *workoutForm {
	return &workoutForm{
		state:    state,
		activity: string(domain.ActivityRunning),
		lastType: domain.ActivityRunning,
		extra:    app.ExtraCadence,
	}
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (f *workoutForm) Type() domain.ActivityType { return domain.ActivityType(f.activity) }
func (f *workoutForm) Distance() float64         { return parseNumber(f.distance) }
func (f *workoutForm) Duration() float64         { return parseNumber(f.duration) }
func (f *workoutForm) Cadence() float64          { return parseNumber(f.cadence) }
func (f *workoutForm) ElevationGain() float64    { return parseNumber(f.elevation) }

func (f *workoutForm) Show() {
	f.visible = true
	f.settling = false
	if f.form == nil {
		f.build(false)
	}
}

// Hide closes the form. With a positive settle the panel reports itself
// as settling until a formSettledMsg for this call arrives.
func (f *workoutForm) Hide(settle time.Duration) {
	f.visible = false
	f.form = nil
	f.gen++
	f.settling = settle > 0
	if !f.settling {
		return
	}
	gen := f.gen
	f.state.Enqueue(tea.Tick(settle, func(time.Time) tea.Msg {
		return formSettledMsg{gen: gen}
	}))
}

func (f *workoutForm) settled(msg formSettledMsg) {
	if msg.gen == f.gen {
		f.settling = false
	}
}

// Reset clears the numeric fields. The activity type is kept.
func (f *workoutForm) Reset() {
	f.distance, f.duration, f.cadence, f.elevation = "", "", "", ""
	if f.form != nil {
		f.build(false)
	}
}

// FocusDistance rebuilds the form with the distance field focused.
func (f *workoutForm) FocusDistance() {
	f.build(true)
}

func (f *workoutForm) SetExtraField(e app.ExtraField) {
	f.extra = e
}

func (f *workoutForm) build(focusDistance bool) {
	options := make([]huh.Option[string], 0, len(domain.ActivityTypes))
	for _, t := range domain.ActivityTypes {
		options = append(options, huh.NewOption(t.Label(), string(t)))
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(domain.FieldType).
				Title("Type").
				Options(options...).
				Value(&f.activity),
			huh.NewInput().
				Key(domain.FieldDistance).
				Title("Distance").
				Placeholder("km").
				Value(&f.distance),
			huh.NewInput().
				Key(domain.FieldDuration).
				Title("Duration").
				Placeholder("min").
				Value(&f.duration),
		),
		huh.NewGroup(
			huh.NewInput().
				Key(domain.FieldCadence).
				Title("Cadence").
				Placeholder("step/min").
				Value(&f.cadence),
		).WithHideFunc(func() bool { return f.extra != app.ExtraCadence }),
		huh.NewGroup(
			huh.NewInput().
				Key(domain.FieldElevationGain).
				Title("Elev Gain").
				Placeholder("meters").
				Value(&f.elevation),
		).WithHideFunc(func() bool { return f.extra != app.ExtraElevation }),
	).WithTheme(trailogHuhTheme()).WithShowHelp(false).WithWidth(formWidth)

	cmds := []tea.Cmd{f.form.Init()}
	if focusDistance {
		cmds = append(cmds, f.form.NextField())
	}
	f.state.Enqueue(tea.Batch(cmds...))
}

// Update forwards msg to the live huh form.
func (f *workoutForm) Update(msg tea.Msg) tea.Cmd {
	if f.form == nil {
		return nil
	}
	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}
	return cmd
}

// typeChanged reports a new activity type picked since the last call.
func (f *workoutForm) typeChanged() (domain.ActivityType, bool) {
	t := f.Type()
	if t == f.lastType {
		return t, false
	}
	f.lastType = t
	return t, true
}

func (f *workoutForm) completed() bool {
	return f.form != nil && f.form.State == huh.StateCompleted
}

// ── Panel ────────────────────────────────────────────────────────────────────

func (f *workoutForm) ID() PanelID   { return PanelForm }
func (f *workoutForm) Title() string { return "log workout" }

func (f *workoutForm) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "back")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (f *workoutForm) View() string {
	switch {
	case f.visible && f.form != nil:
		return f.form.View()
	case f.settling:
		return formatter.Dim("✔ Saved")
	default:
		return ""
	}
}
