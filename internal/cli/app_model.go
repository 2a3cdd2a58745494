package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/cli/formatter"
	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/alexanderramin/trailog/internal/repository"
	"github.com/alexanderramin/trailog/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const listPanelWidth = formWidth + 4

type globalKeyMap struct {
	ForceQuit   key.Binding
	Quit        key.Binding
	SwitchFocus key.Binding
	Reset       key.Binding
	Cancel      key.Binding
	Confirm     key.Binding
}

func defaultGlobalKeyMap() globalKeyMap {
	return globalKeyMap{
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		SwitchFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
		Reset:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "clear all")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Confirm:     key.NewBinding(key.WithKeys("y", "Y")),
	}
}

// appModel is the root bubbletea Model for the TUI. It owns the session
// controller and the terminal adapters it drives, routes keys to the
// focused panel and returns whatever commands the adapters queued.
type appModel struct {
	state  *SharedState
	ctx    context.Context
	ctrl   *service.SessionController
	keys   globalKeyMap
	canvas *mapCanvas
	form   *workoutForm
	list   *workoutList
	status *statusLine

	focus        PanelID
	confirmReset bool
	quitting     bool
}

func newAppModel(a *App) appModel {
	state := &SharedState{App: a}
	cfg := a.Config

	canvas := newMapCanvas()
	form := newWorkoutForm(state)
	list := newWorkoutList()
	status := &statusLine{}

	store := repository.NewWorkoutStore(a.KV, a.Factory, cfg.StorageKey)
	ctrl := service.NewSessionController(service.SessionDeps{
		Location:  newConfigLocation(state, cfg),
		Map:       canvas,
		Form:      form,
		List:      list,
		Notifier:  status,
		Store:     store,
		Factory:   a.Factory,
		RenderRow: formatter.WorkoutRow,
	},
		service.WithZoom(cfg.Zoom),
		service.WithFormSettle(cfg.FormSettle),
		service.WithSessionObserver(a.Observer),
	)

	m := appModel{
		state:  state,
		ctx:    context.Background(),
		ctrl:   ctrl,
		keys:   defaultGlobalKeyMap(),
		canvas: canvas,
		form:   form,
		list:   list,
		status: status,
	}
	m.setFocus(PanelMap)
	return m
}

// activePanel returns the panel receiving keys.
func (m *appModel) activePanel() Panel {
	if m.form.visible {
		return m.form
	}
	if m.focus == PanelList {
		return m.list
	}
	return m.canvas
}

func (m *appModel) setFocus(id PanelID) {
	m.focus = id
	m.canvas.focused = id == PanelMap
	m.list.SetFocused(id == PanelList)
}

// layout sizes the panels from the terminal dimensions.
func (m *appModel) layout() {
	h := m.state.ContentHeight()
	mapWidth := max(m.state.Width-listPanelWidth-4, 20)
	// Borders take two rows, the map footer one more.
	m.canvas.SetSize(mapWidth, h-3)
	m.list.SetSize(formWidth, h-2)
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	m.ctrl.Start(m.ctx)
	return m.state.Drain()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.layout()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case locationResultMsg:
		msg.deliver()

	case formSettledMsg:
		m.form.settled(msg)

	default:
		// huh's internal field and group messages.
		if m.form.visible {
			m.state.Enqueue(m.form.Update(msg))
			m.afterFormUpdate()
		}
	}
	return m, m.state.Drain()
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	// An open form captures every key so digits and letters reach its inputs.
	if m.form.visible {
		if key.Matches(msg, m.keys.Cancel) {
			m.ctrl.OnCancel()
		} else {
			m.state.Enqueue(m.form.Update(msg))
			m.afterFormUpdate()
		}
		return m, m.state.Drain()
	}

	if m.confirmReset {
		m.confirmReset = false
		if key.Matches(msg, m.keys.Confirm) {
			_ = m.ctrl.OnReset(m.ctx)
		} else {
			m.status.Notify(app.NoticeInfo, "Nothing cleared.")
		}
		return m, m.state.Drain()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchFocus):
		m.status.Clear()
		if m.focus == PanelMap {
			m.setFocus(PanelList)
		} else {
			m.setFocus(PanelMap)
		}

	case key.Matches(msg, m.keys.Reset):
		if m.ctrl.State() == service.StateMapReady {
			m.confirmReset = true
			m.status.Notify(app.NoticeWarn, "Clear all workouts? Press y to confirm.")
		}

	case m.focus == PanelList:
		m.handleListKey(msg)

	default:
		m.canvas.HandleKey(msg)
	}
	return m, m.state.Drain()
}

func (m *appModel) handleListKey(msg tea.KeyMsg) {
	action, id := m.list.HandleKey(msg)
	switch action {
	case listActionPan:
		m.ctrl.OnListClick(id)
	case listActionDelete:
		if err := m.ctrl.OnDelete(m.ctx, id); errors.Is(err, domain.ErrWorkoutNotFound) {
			m.list.RemoveRow(id)
		}
	}
}

// afterFormUpdate reacts to what the last form update changed: a new
// activity type or a submitted form.
func (m *appModel) afterFormUpdate() {
	if t, changed := m.form.typeChanged(); changed {
		m.ctrl.OnTypeChange(t)
	}
	if !m.form.completed() {
		return
	}
	if _, err := m.ctrl.OnSubmit(m.ctx); err != nil && m.ctrl.FormOpen() {
		// Rejected input keeps the form open for corrections.
		m.form.FocusDistance()
	}
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderBody(),
		m.renderStatusBar(),
	}
	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("trailog")
	header := title + " " + formatter.Dim("› "+m.activePanel().Title())

	if at, ok := m.ctrl.PendingCoords(); ok && m.form.visible {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(at.String()) + formatter.Dim("]")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func panelBox(focused bool) lipgloss.Style {
	border := formatter.ColorDim
	if focused {
		border = formatter.ColorHeader
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
}

func (m *appModel) renderBody() string {
	left := panelBox(m.focus == PanelMap && !m.form.visible).Render(m.canvas.View())

	var right []string
	if formView := m.form.View(); formView != "" {
		right = append(right, panelBox(m.form.visible).Width(formWidth).Render(formView))
	}
	right = append(right, panelBox(m.focus == PanelList && !m.form.visible).Width(formWidth).Render(m.list.View()))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", lipgloss.JoinVertical(lipgloss.Left, right...))
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	for _, b := range m.activePanel().ShortHelp() {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	if !m.form.visible {
		for _, b := range []key.Binding{m.keys.SwitchFocus, m.keys.Reset, m.keys.Quit} {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}

	bar := strings.Join(hints, "  ")
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return m.status.View() + "\n" + sep + "\n" + bar
}
