package service

import (
	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/domain"
)

// MarkerRegistry maps workout ids to the markers placed for them.
type MarkerRegistry struct {
	handle  app.MapHandle
	zoom    int
	markers map[string]app.MarkerHandle
}

func NewMarkerRegistry(zoom int) *MarkerRegistry {
	return &MarkerRegistry{zoom: zoom, markers: make(map[string]app.MarkerHandle)}
}

// Attach binds the registry to an initialized map. Markers recorded
// against a previous map are forgotten.
func (r *MarkerRegistry) Attach(h app.MapHandle) {
	r.handle = h
	clear(r.markers)
}

// Place adds a marker for w and records it. It returns nil when no map is
// attached yet.
func (r *MarkerRegistry) Place(w *domain.Workout) app.MarkerHandle {
	if r.handle == nil {
		return nil
	}
	m := r.handle.AddMarker(w.Coords, w.Popup())
	r.markers[w.ID] = m
	return m
}

// PanTo recenters the map on the marker for id. Unknown ids are a no-op
// and report false.
func (r *MarkerRegistry) PanTo(id string) bool {
	m, ok := r.markers[id]
	if !ok || r.handle == nil {
		return false
	}
	r.handle.PanTo(m.Coords(), r.zoom)
	return true
}

// Remove takes the marker for id off the map and forgets it.
func (r *MarkerRegistry) Remove(id string) bool {
	m, ok := r.markers[id]
	if !ok {
		return false
	}
	delete(r.markers, id)
	if r.handle != nil {
		r.handle.RemoveMarker(m)
	}
	return true
}

// RemoveAll takes every recorded marker off the map.
func (r *MarkerRegistry) RemoveAll() {
	for id := range r.markers {
		r.Remove(id)
	}
}

func (r *MarkerRegistry) Has(id string) bool {
	_, ok := r.markers[id]
	return ok
}

func (r *MarkerRegistry) Len() int { return len(r.markers) }
