package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/alexanderramin/trailog/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWorkoutDetails_Running(t *testing.T) {
	w := testutil.NewTestWorkout()

	got := WorkoutDetails(w)
	assert.Contains(t, got, "5 km")
	assert.Contains(t, got, "30 min")
	assert.Contains(t, got, "6.0 min/km")
	assert.Contains(t, got, "150 spm")
	assert.NotContains(t, got, "km/h")
}

func TestWorkoutDetails_Cycling(t *testing.T) {
	w := testutil.NewTestWorkout(testutil.WithDistance(20), testutil.WithDuration(60), testutil.WithElevationGain(-40))

	got := WorkoutDetails(w)
	assert.Contains(t, got, "20.0 km/h")
	assert.Contains(t, got, "-40 m")
	assert.NotContains(t, got, "spm")
}

func TestWorkoutRow_TitleThenDetails(t *testing.T) {
	w := testutil.NewTestWorkout()

	got := WorkoutRow(w)
	assert.Contains(t, got, "Running on April\n")
	assert.Contains(t, got, "150 spm")
}

func TestFormatWorkoutTable(t *testing.T) {
	now := time.Date(2024, 4, 14, 18, 0, 0, 0, time.UTC)
	run := testutil.NewTestWorkout(testutil.WithWorkoutID("11111111-aaaa"))
	ride := testutil.NewTestWorkout(testutil.WithWorkoutID("22222222-bbbb"), testutil.WithDistance(20), testutil.WithElevationGain(300))

	got := FormatWorkoutTable([]*domain.Workout{run, ride}, now)
	assert.Contains(t, got, "11111111")
	assert.NotContains(t, got, "11111111-aaaa")
	assert.Contains(t, got, "Running")
	assert.Contains(t, got, "Cycling")
	assert.Contains(t, got, "300 m")
	assert.Contains(t, got, "██████████", "longest workout fills its bar")
	assert.Contains(t, got, "2 workout(s)")
}

func TestFormatWorkoutTable_Empty(t *testing.T) {
	assert.Contains(t, FormatWorkoutTable(nil, time.Now()), "No workouts logged yet.")
}

func TestFormatWorkoutLogged(t *testing.T) {
	w := testutil.NewTestWorkout(testutil.WithWorkoutID("abc-123"))

	got := FormatWorkoutLogged(w)
	assert.Contains(t, got, "WORKOUT LOGGED")
	assert.Contains(t, got, "Running on April")
	assert.Contains(t, got, "39.7392, -104.9903")
	assert.Contains(t, got, "abc-123")
}
