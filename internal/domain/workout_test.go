package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityType_Label(t *testing.T) {
	assert.Equal(t, "Running", ActivityRunning.Label())
	assert.Equal(t, "Cycling", ActivityCycling.Label())
	assert.Equal(t, "", ActivityType("").Label())
}

func TestParseActivityType(t *testing.T) {
	at, ok := ParseActivityType(" Cycling ")
	assert.True(t, ok)
	assert.Equal(t, ActivityCycling, at)

	_, ok = ParseActivityType("rowing")
	assert.False(t, ok)
}

func TestExtraField(t *testing.T) {
	assert.Equal(t, FieldCadence, ExtraField(ActivityRunning))
	assert.Equal(t, FieldElevationGain, ExtraField(ActivityCycling))
}

func TestWorkout_Popup(t *testing.T) {
	w := &Workout{Type: ActivityCycling, Description: "Cycling on May"}
	assert.Equal(t, "🚴 Cycling on May", w.Popup())
}

func TestWorkout_CloneIsIndependent(t *testing.T) {
	run := &Workout{
		ID: "a", Type: ActivityRunning, Distance: 5, Duration: 30,
		Coords:  Coords{Lat: 1, Lng: 2},
		Running: &RunningStats{Cadence: 150, Pace: 6},
	}
	c := run.Clone()
	assert.Equal(t, run, c)

	c.Coords.Lat = 9
	c.Running.Cadence = 1
	assert.Equal(t, 1.0, run.Coords.Lat)
	assert.Equal(t, 150.0, run.Running.Cadence)

	ride := &Workout{Type: ActivityCycling, Cycling: &CyclingStats{ElevationGain: 100, Speed: 20}}
	rc := ride.Clone()
	rc.Cycling.Speed = 0
	assert.Equal(t, 20.0, ride.Cycling.Speed)
	assert.Nil(t, rc.Running)
}

func TestWorkout_DeriveRejectsUnknownType(t *testing.T) {
	w := &Workout{Type: "rowing", Distance: 1, Duration: 1}
	assert.Error(t, w.derive(1))
	assert.Nil(t, w.Running)
	assert.Nil(t, w.Cycling)
}

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateCoordinates(-90, 180))
	assert.ErrorIs(t, ValidateCoordinates(90.1, 0), ErrInvalidCoordinates)
	assert.ErrorIs(t, ValidateCoordinates(0, 180.5), ErrInvalidCoordinates)
}

func TestCorruptStateError_Unwraps(t *testing.T) {
	cause := assert.AnError
	err := &CorruptStateError{Key: "workouts", Err: cause}
	assert.ErrorIs(t, err, ErrCorruptState)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"workouts"`)
}
