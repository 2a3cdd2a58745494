package domain

import (
	"fmt"
	"time"
)

// Workout is a logged activity session. Type selects which of Running or
// Cycling is set; the other is always nil.
type Workout struct {
	ID          string
	Type        ActivityType
	Distance    float64 // km
	Duration    float64 // minutes
	Coords      Coords
	CreatedAt   time.Time
	Description string

	Running *RunningStats
	Cycling *CyclingStats
}

type RunningStats struct {
	Cadence float64 // steps/min
	Pace    float64 // min/km
}

type CyclingStats struct {
	ElevationGain float64 // m
	Speed         float64 // km/h
}

// Clone returns a deep copy. Variant payloads are copied too, so changes
// to the copy never reach w.
func (w *Workout) Clone() *Workout {
	c := *w
	if w.Running != nil {
		r := *w.Running
		c.Running = &r
	}
	if w.Cycling != nil {
		cy := *w.Cycling
		c.Cycling = &cy
	}
	return &c
}

// Extra returns the variant-specific input: cadence for running,
// elevation gain for cycling.
func (w *Workout) Extra() float64 {
	switch w.Type {
	case ActivityRunning:
		return w.Running.Cadence
	case ActivityCycling:
		return w.Cycling.ElevationGain
	default:
		return 0
	}
}

// Popup is the text bound to the workout's map marker.
func (w *Workout) Popup() string {
	return w.Type.Icon() + " " + w.Description
}

// describe builds the display label, e.g. "Running on April".
func describe(t ActivityType, at time.Time) string {
	return fmt.Sprintf("%s on %s", t.Label(), at.Month())
}

// derive fills the description and variant payload from the raw fields.
// Every construction path ends here so derived values never come from storage.
func (w *Workout) derive(extra float64) error {
	w.Description = describe(w.Type, w.CreatedAt)
	w.Running, w.Cycling = nil, nil
	switch w.Type {
	case ActivityRunning:
		w.Running = &RunningStats{Cadence: extra, Pace: w.Duration / w.Distance}
	case ActivityCycling:
		w.Cycling = &CyclingStats{ElevationGain: extra, Speed: w.Distance / (w.Duration / 60)}
	default:
		return fmt.Errorf("unknown activity type %q", w.Type)
	}
	return nil
}
