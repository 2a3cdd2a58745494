package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trailog/internal/domain"
)

const distanceBarWidth = 10

// WorkoutDetails renders the metrics line shown under a workout title:
// distance, duration, then pace and cadence for runs or speed and
// elevation gain for rides.
func WorkoutDetails(w *domain.Workout) string {
	parts := []string{
		w.Type.Icon() + " " + FormatNumber(w.Distance) + Dim(" km"),
		"⏱ " + FormatNumber(w.Duration) + Dim(" min"),
	}
	switch w.Type {
	case domain.ActivityRunning:
		parts = append(parts,
			"⚡ "+FormatRate(w.Running.Pace)+Dim(" min/km"),
			"🦶 "+FormatNumber(w.Running.Cadence)+Dim(" spm"),
		)
	case domain.ActivityCycling:
		parts = append(parts,
			"⚡ "+FormatRate(w.Cycling.Speed)+Dim(" km/h"),
			"⛰ "+FormatNumber(w.Cycling.ElevationGain)+Dim(" m"),
		)
	}
	return strings.Join(parts, "  ")
}

// WorkoutRow renders a list entry: the colored description on the first
// line and the metrics on the second.
func WorkoutRow(w *domain.Workout) string {
	title := ActivityColor(w.Type).Bold(true).Render(w.Description)
	return title + "\n" + WorkoutDetails(w)
}

// rateCell returns the derived rate with its unit.
func rateCell(w *domain.Workout) string {
	switch w.Type {
	case domain.ActivityRunning:
		return FormatRate(w.Running.Pace) + " min/km"
	case domain.ActivityCycling:
		return FormatRate(w.Cycling.Speed) + " km/h"
	}
	return ""
}

// extraCell returns the variant input with its unit.
func extraCell(w *domain.Workout) string {
	switch w.Type {
	case domain.ActivityRunning:
		return FormatNumber(w.Running.Cadence) + " spm"
	case domain.ActivityCycling:
		return FormatNumber(w.Cycling.ElevationGain) + " m"
	}
	return ""
}

// FormatWorkoutTable renders workouts for the list command. Each row
// carries a bar comparing its distance to the longest workout shown.
func FormatWorkoutTable(workouts []*domain.Workout, now time.Time) string {
	if len(workouts) == 0 {
		return Dim("No workouts logged yet.") + "\n"
	}

	longest := 0.0
	for _, w := range workouts {
		longest = max(longest, w.Distance)
	}

	headers := []string{"ID", "TYPE", "DATE", "DISTANCE", "DURATION", "RATE", "EXTRA", "", "POSITION"}
	rows := make([][]string, 0, len(workouts))
	for _, w := range workouts {
		rows = append(rows, []string{
			TruncID(w.ID),
			ActivityBadge(w.Type),
			HumanDateFrom(w.CreatedAt.Local(), now),
			FormatNumber(w.Distance) + " km",
			FormatNumber(w.Duration) + " min",
			rateCell(w),
			extraCell(w),
			RenderBar(w.Distance/longest, distanceBarWidth, ActivityColor(w.Type)),
			Dim(w.Coords.String()),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Workouts") + "\n\n")
	b.WriteString(RenderTable(headers, rows, 3, 4, 5, 6))
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d workout(s)", len(workouts))))
	return b.String()
}

// FormatWorkoutLogged renders the confirmation box for a new workout.
func FormatWorkoutLogged(w *domain.Workout) string {
	var b strings.Builder
	b.WriteString(ActivityColor(w.Type).Bold(true).Render(w.Description) + "\n")
	b.WriteString(WorkoutDetails(w) + "\n\n")
	b.WriteString(Dim("at ") + w.Coords.String() + "\n")
	b.WriteString(Dim("id ") + w.ID)
	return RenderBox("Workout logged", b.String())
}
