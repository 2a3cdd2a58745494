package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	FieldType          = "type"
	FieldDistance      = "distance"
	FieldDuration      = "duration"
	FieldCoords        = "coords"
	FieldCadence       = "cadence"
	FieldElevationGain = "elevationGain"
)

// WorkoutInput is the raw form submission. Extra carries cadence for running
// and elevation gain for cycling.
type WorkoutInput struct {
	Type     ActivityType
	Distance float64
	Duration float64
	Coords   Coords
	Extra    float64
}

// ExtraField returns the name of the variant-specific field for t.
func ExtraField(t ActivityType) string {
	if t == ActivityCycling {
		return FieldElevationGain
	}
	return FieldCadence
}

// Validate reports every failing field at once. Elevation gain is only
// required to be finite; descents are legal.
func (in WorkoutInput) Validate() error {
	var fields []FieldError
	add := func(field, reason string) {
		fields = append(fields, FieldError{Field: field, Reason: reason})
	}

	if !ValidActivityTypes[string(in.Type)] {
		add(FieldType, "must be running or cycling")
	}
	if !positiveFinite(in.Distance) {
		add(FieldDistance, "must be a positive number")
	}
	if !positiveFinite(in.Duration) {
		add(FieldDuration, "must be a positive number")
	}
	if err := ValidateCoordinates(in.Coords.Lat, in.Coords.Lng); err != nil {
		add(FieldCoords, "out of range")
	}
	switch in.Type {
	case ActivityRunning:
		if !positiveFinite(in.Extra) {
			add(FieldCadence, "must be a positive number")
		}
	case ActivityCycling:
		if !finite(in.Extra) {
			add(FieldElevationGain, "must be a number")
		}
	}

	if len(fields) > 0 {
		return &InvalidInputError{Fields: fields}
	}
	return nil
}

// Factory builds workouts. The clock and id source are replaceable for tests.
type Factory struct {
	now   func() time.Time
	newID func() string
}

type FactoryOption func(*Factory)

func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) { f.now = now }
}

func WithIDGenerator(newID func() string) FactoryOption {
	return func(f *Factory) { f.newID = newID }
}

func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create validates in and returns a new workout with a fresh id and
// timestamp. On failure it returns *InvalidInputError and nothing else.
func (f *Factory) Create(in WorkoutInput) (*Workout, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return build(f.newID(), f.now(), in)
}

// Rehydrate rebuilds a persisted workout, keeping its id and creation time
// and recomputing every derived field.
func (f *Factory) Rehydrate(id string, createdAt time.Time, in WorkoutInput) (*Workout, error) {
	if id == "" {
		return nil, &InvalidInputError{Fields: []FieldError{{Field: "id", Reason: "is required"}}}
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return build(id, createdAt, in)
}

func build(id string, createdAt time.Time, in WorkoutInput) (*Workout, error) {
	w := &Workout{
		ID:        id,
		Type:      in.Type,
		Distance:  in.Distance,
		Duration:  in.Duration,
		Coords:    in.Coords,
		CreatedAt: createdAt,
	}
	if err := w.derive(in.Extra); err != nil {
		return nil, err
	}
	return w, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positiveFinite(v float64) bool {
	return finite(v) && v > 0
}
