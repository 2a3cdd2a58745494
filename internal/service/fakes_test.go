package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/domain"
)

type fakeMarker struct {
	at    domain.Coords
	popup string
}

func (m *fakeMarker) Coords() domain.Coords { return m.at }

type panCall struct {
	center domain.Coords
	zoom   int
}

type fakeHandle struct {
	center  domain.Coords
	zoom    int
	onClick func(domain.Coords)
	markers []*fakeMarker
	removed []*fakeMarker
	pans    []panCall
}

func (h *fakeHandle) OnClick(fn func(domain.Coords)) { h.onClick = fn }

func (h *fakeHandle) AddMarker(at domain.Coords, popup string) app.MarkerHandle {
	m := &fakeMarker{at: at, popup: popup}
	h.markers = append(h.markers, m)
	return m
}

func (h *fakeHandle) RemoveMarker(m app.MarkerHandle) {
	h.removed = append(h.removed, m.(*fakeMarker))
}

func (h *fakeHandle) PanTo(center domain.Coords, zoom int) {
	h.pans = append(h.pans, panCall{center: center, zoom: zoom})
}

// mutations counts every call that changes what the map shows.
func (h *fakeHandle) mutations() int {
	return len(h.markers) + len(h.removed) + len(h.pans)
}

type fakeMap struct {
	inits  int
	handle *fakeHandle
}

func (m *fakeMap) Initialize(center domain.Coords, zoom int) app.MapHandle {
	m.inits++
	m.handle = &fakeHandle{center: center, zoom: zoom}
	return m.handle
}

type fakeForm struct {
	activity  domain.ActivityType
	distance  string
	duration  string
	cadence   string
	elevation string

	visible  bool
	focused  bool
	resets   int
	settles  []time.Duration
	extra    app.ExtraField
	extraSet bool
}

func parseOrNaN(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (f *fakeForm) Type() domain.ActivityType { return f.activity }
func (f *fakeForm) Distance() float64         { return parseOrNaN(f.distance) }
func (f *fakeForm) Duration() float64         { return parseOrNaN(f.duration) }
func (f *fakeForm) Cadence() float64          { return parseOrNaN(f.cadence) }
func (f *fakeForm) ElevationGain() float64    { return parseOrNaN(f.elevation) }

func (f *fakeForm) Show() { f.visible = true }

func (f *fakeForm) Hide(settle time.Duration) {
	f.visible = false
	f.focused = false
	f.settles = append(f.settles, settle)
}

func (f *fakeForm) Reset() {
	f.resets++
	f.distance, f.duration, f.cadence, f.elevation = "", "", "", ""
}

func (f *fakeForm) FocusDistance() { f.focused = true }

func (f *fakeForm) SetExtraField(e app.ExtraField) {
	f.extra = e
	f.extraSet = true
}

func (f *fakeForm) fillRun(distance, duration, cadence string) {
	f.activity = domain.ActivityRunning
	f.distance, f.duration, f.cadence = distance, duration, cadence
}

func (f *fakeForm) fillRide(distance, duration, elevation string) {
	f.activity = domain.ActivityCycling
	f.distance, f.duration, f.elevation = distance, duration, elevation
}

type listRow struct {
	id       string
	rendered string
}

type fakeList struct {
	rows    []listRow
	clears  int
	removed []string
}

func (l *fakeList) AppendRow(id, rendered string) {
	l.rows = append(l.rows, listRow{id: id, rendered: rendered})
}

func (l *fakeList) RemoveRow(id string) {
	l.removed = append(l.removed, id)
	for i, r := range l.rows {
		if r.id == id {
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			return
		}
	}
}

func (l *fakeList) Clear() {
	l.clears++
	l.rows = nil
}

func (l *fakeList) ids() []string {
	ids := make([]string, 0, len(l.rows))
	for _, r := range l.rows {
		ids = append(ids, r.id)
	}
	return ids
}

type notice struct {
	level   app.NoticeLevel
	message string
}

type fakeNotifier struct {
	notices []notice
}

func (n *fakeNotifier) Notify(level app.NoticeLevel, message string) {
	n.notices = append(n.notices, notice{level: level, message: message})
}

func (n *fakeNotifier) count(level app.NoticeLevel) int {
	c := 0
	for _, x := range n.notices {
		if x.level == level {
			c++
		}
	}
	return c
}

// fakeLocation records the callbacks so tests decide when and how the
// lookup resolves.
type fakeLocation struct {
	requests  int
	onSuccess func(domain.Coords)
	onFailure func(error)
}

func (l *fakeLocation) RequestCurrentPosition(_ context.Context, onSuccess func(domain.Coords), onFailure func(error)) {
	l.requests++
	l.onSuccess = onSuccess
	l.onFailure = onFailure
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
