package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/google/uuid"
)

type workoutFixture struct {
	id        string
	createdAt time.Time
	input     domain.WorkoutInput
}

// WorkoutOption adjusts a fixture before it is built.
type WorkoutOption func(*workoutFixture)

func WithWorkoutID(id string) WorkoutOption {
	return func(f *workoutFixture) { f.id = id }
}

func WithCreatedAt(t time.Time) WorkoutOption {
	return func(f *workoutFixture) { f.createdAt = t }
}

func WithDistance(km float64) WorkoutOption {
	return func(f *workoutFixture) { f.input.Distance = km }
}

func WithDuration(min float64) WorkoutOption {
	return func(f *workoutFixture) { f.input.Duration = min }
}

func WithCoords(lat, lng float64) WorkoutOption {
	return func(f *workoutFixture) { f.input.Coords = domain.Coords{Lat: lat, Lng: lng} }
}

func WithCadence(spm float64) WorkoutOption {
	return func(f *workoutFixture) {
		f.input.Type = domain.ActivityRunning
		f.input.Extra = spm
	}
}

func WithElevationGain(m float64) WorkoutOption {
	return func(f *workoutFixture) {
		f.input.Type = domain.ActivityCycling
		f.input.Extra = m
	}
}

// NewTestWorkout builds a valid running workout (5 km, 30 min, 150 spm)
// unless options say otherwise. It panics on invalid fixtures.
func NewTestWorkout(opts ...WorkoutOption) *domain.Workout {
	f := &workoutFixture{
		id:        uuid.New().String(),
		createdAt: time.Date(2024, time.April, 14, 9, 30, 0, 0, time.UTC),
		input: domain.WorkoutInput{
			Type:     domain.ActivityRunning,
			Distance: 5,
			Duration: 30,
			Coords:   domain.Coords{Lat: 39.7392, Lng: -104.9903},
			Extra:    150,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	w, err := domain.NewFactory().Rehydrate(f.id, f.createdAt, f.input)
	if err != nil {
		panic(fmt.Sprintf("invalid workout fixture: %v", err))
	}
	return w
}
