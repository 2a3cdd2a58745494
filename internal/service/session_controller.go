package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/alexanderramin/trailog/internal/repository"
)

type ControllerState int

const (
	StateAwaitingLocation ControllerState = iota
	StateMapReady
)

func (s ControllerState) String() string {
	switch s {
	case StateAwaitingLocation:
		return "awaiting-location"
	case StateMapReady:
		return "map-ready"
	default:
		return fmt.Sprintf("ControllerState(%d)", int(s))
	}
}

const (
	DefaultZoom       = 13
	DefaultFormSettle = time.Second
)

// SessionDeps are the collaborators a SessionController drives.
type SessionDeps struct {
	Location app.LocationProvider
	Map      app.MapWidget
	Form     app.FormUI
	List     app.ListUI
	Notifier app.Notifier
	Store    *repository.WorkoutStore
	Factory  *domain.Factory

	// RenderRow formats list rows. Nil uses the marker popup text.
	RenderRow app.RowRenderer
}

type SessionOption func(*SessionController)

func WithZoom(zoom int) SessionOption {
	return func(c *SessionController) { c.zoom = zoom }
}

func WithFormSettle(d time.Duration) SessionOption {
	return func(c *SessionController) { c.settle = d }
}

func WithSessionObserver(o UseCaseObserver) SessionOption {
	return func(c *SessionController) {
		if o != nil {
			c.observer = o
		}
	}
}

// SessionController keeps the workout store, the map markers, the list and
// the entry form in step. Its methods are event handlers and must be called
// from a single goroutine.
type SessionController struct {
	deps     SessionDeps
	registry *MarkerRegistry
	observer UseCaseObserver
	zoom     int
	settle   time.Duration

	state    ControllerState
	formOpen bool
	pending  *domain.Coords
}

func NewSessionController(deps SessionDeps, opts ...SessionOption) *SessionController {
	c := &SessionController{
		deps:     deps,
		observer: NoopUseCaseObserver{},
		zoom:     DefaultZoom,
		settle:   DefaultFormSettle,
		state:    StateAwaitingLocation,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.deps.RenderRow == nil {
		c.deps.RenderRow = (*domain.Workout).Popup
	}
	c.registry = NewMarkerRegistry(c.zoom)
	return c
}

func (c *SessionController) State() ControllerState { return c.state }

func (c *SessionController) FormOpen() bool { return c.formOpen }

// PendingCoords returns the map position the open form will submit for.
func (c *SessionController) PendingCoords() (domain.Coords, bool) {
	if c.pending == nil {
		return domain.Coords{}, false
	}
	return *c.pending, true
}

func (c *SessionController) Markers() *MarkerRegistry { return c.registry }

// Start asks for the current position once. The result arrives through
// OnLocation or OnLocationFailed.
func (c *SessionController) Start(ctx context.Context) {
	c.deps.Location.RequestCurrentPosition(ctx,
		func(at domain.Coords) { c.OnLocation(ctx, at) },
		c.OnLocationFailed,
	)
}

// OnLocation enters MapReady: it creates the map, reloads persisted
// workouts and replays them as markers and rows. Later calls are ignored.
func (c *SessionController) OnLocation(ctx context.Context, at domain.Coords) {
	if c.state == StateMapReady {
		return
	}
	sp := startSpan(c.observer, "map-ready")
	var err error
	defer func() { sp.end(ctx, err) }()

	c.state = StateMapReady
	handle := c.deps.Map.Initialize(at, c.zoom)
	c.registry.Attach(handle)
	handle.OnClick(c.OnMapClick)

	c.deps.List.Clear()
	if err = c.deps.Store.Load(ctx); err != nil {
		sp.recovered = true
		if errors.Is(err, domain.ErrCorruptState) {
			c.deps.Notifier.Notify(app.NoticeWarn, "Saved workouts could not be read and were skipped.")
		} else {
			c.deps.Notifier.Notify(app.NoticeError, fmt.Sprintf("Could not load saved workouts: %v", err))
		}
	}

	for w := range c.deps.Store.All() {
		c.registry.Place(w)
		c.deps.List.AppendRow(w.ID, c.deps.RenderRow(w))
	}
	sp.fields["workouts"] = c.deps.Store.Len()
}

// OnLocationFailed reports the failure and stays in AwaitingLocation.
func (c *SessionController) OnLocationFailed(cause error) {
	err := fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, cause)
	c.observer.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "locate", StartedAt: time.Now(), Err: err,
	})
	c.deps.Notifier.Notify(app.NoticeError, "Could not get your position.")
}

// OnMapClick opens the form for the clicked position. Clicks before the
// map is ready are ignored.
func (c *SessionController) OnMapClick(at domain.Coords) {
	if c.state != StateMapReady {
		return
	}
	c.pending = &at
	if !c.formOpen {
		c.formOpen = true
		c.deps.Form.Show()
	}
	c.deps.Form.FocusDistance()
}

// OnTypeChange shows the extra field that belongs to t.
func (c *SessionController) OnTypeChange(t domain.ActivityType) {
	c.deps.Form.SetExtraField(app.ExtraFieldFor(t))
}

// OnSubmit validates the form and logs a workout at the pending position.
// On invalid input the form stays open with its position kept and the
// *domain.InvalidInputError is returned.
func (c *SessionController) OnSubmit(ctx context.Context) (w *domain.Workout, err error) {
	if !c.formOpen || c.pending == nil {
		return nil, nil
	}
	sp := startSpan(c.observer, "log-workout")
	defer func() { sp.end(ctx, err) }()

	form := c.deps.Form
	in := domain.WorkoutInput{
		Type:     form.Type(),
		Distance: form.Distance(),
		Duration: form.Duration(),
		Coords:   *c.pending,
	}
	switch in.Type {
	case domain.ActivityCycling:
		in.Extra = form.ElevationGain()
	default:
		in.Extra = form.Cadence()
	}
	sp.fields["type"] = string(in.Type)

	w, err = c.deps.Factory.Create(in)
	if err != nil {
		c.deps.Notifier.Notify(app.NoticeError, invalidInputMessage(err))
		return nil, err
	}

	c.deps.Store.Append(w)
	persistErr := c.deps.Store.Persist(ctx)
	c.registry.Place(w)
	c.deps.List.AppendRow(w.ID, c.deps.RenderRow(w))

	c.pending = nil
	c.formOpen = false
	form.Reset()
	form.Hide(c.settle)
	sp.fields["workout_id"] = w.ID

	if persistErr != nil {
		c.deps.Notifier.Notify(app.NoticeError, fmt.Sprintf("Workout logged but not saved: %v", persistErr))
		return w, persistErr
	}
	c.deps.Notifier.Notify(app.NoticeInfo, w.Description+" logged.")
	return w, nil
}

// OnCancel closes the form without logging anything.
func (c *SessionController) OnCancel() {
	if !c.formOpen {
		return
	}
	c.formOpen = false
	c.pending = nil
	c.deps.Form.Reset()
	c.deps.Form.Hide(0)
}

// OnListClick pans to the workout's marker. Unknown ids do nothing.
func (c *SessionController) OnListClick(id string) {
	if !c.registry.PanTo(id) {
		c.observer.ObserveUseCase(context.Background(), UseCaseEvent{
			Name: "pan-to", StartedAt: time.Now(), Success: true,
			Fields: map[string]any{"workout_id": id, "skipped": domain.ErrUnknownMarker.Error()},
		})
	}
}

// OnDelete removes a workout from the store, the map and the list, then
// persists. Returns domain.ErrWorkoutNotFound for unknown ids.
func (c *SessionController) OnDelete(ctx context.Context, id string) (err error) {
	sp := startSpan(c.observer, "delete-workout")
	sp.fields["workout_id"] = id
	defer func() { sp.end(ctx, err) }()

	if !c.deps.Store.Delete(id) {
		return fmt.Errorf("workout %s: %w", id, domain.ErrWorkoutNotFound)
	}
	c.registry.Remove(id)
	c.deps.List.RemoveRow(id)

	if err = c.deps.Store.Persist(ctx); err != nil {
		c.deps.Notifier.Notify(app.NoticeError, fmt.Sprintf("Workout removed but not saved: %v", err))
		return err
	}
	c.deps.Notifier.Notify(app.NoticeInfo, "Workout removed.")
	return nil
}

// OnReset removes every workout, marker and row and deletes the record.
func (c *SessionController) OnReset(ctx context.Context) (err error) {
	sp := startSpan(c.observer, "reset-workouts")
	sp.fields["workouts"] = c.deps.Store.Len()
	defer func() { sp.end(ctx, err) }()

	// Markers and rows stay when the record cannot be removed.
	if err = c.deps.Store.Clear(ctx); err != nil {
		c.deps.Notifier.Notify(app.NoticeError, fmt.Sprintf("Could not clear saved workouts: %v", err))
		return err
	}
	c.registry.RemoveAll()
	c.deps.List.Clear()
	c.deps.Notifier.Notify(app.NoticeInfo, "All workouts cleared.")
	return nil
}

func invalidInputMessage(err error) string {
	var inputErr *domain.InvalidInputError
	if errors.As(err, &inputErr) {
		return "Invalid input, check " + strings.Join(inputErr.FieldNames(), ", ")
	}
	return err.Error()
}
