package domain

import "strings"

type ActivityType string

const (
	ActivityRunning ActivityType = "running"
	ActivityCycling ActivityType = "cycling"
)

// ActivityTypes lists the supported types in display order.
var ActivityTypes = []ActivityType{ActivityRunning, ActivityCycling}

// ValidActivityTypes is the canonical set of accepted activity type strings.
var ValidActivityTypes = map[string]bool{
	"running": true, "cycling": true,
}

// ParseActivityType converts a raw string into an ActivityType.
func ParseActivityType(s string) (ActivityType, bool) {
	t := ActivityType(strings.ToLower(strings.TrimSpace(s)))
	return t, ValidActivityTypes[string(t)]
}

// Label returns the capitalized display name, e.g. "Running".
func (t ActivityType) Label() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// Icon returns the glyph shown next to workouts of this type.
func (t ActivityType) Icon() string {
	switch t {
	case ActivityRunning:
		return "🏃"
	case ActivityCycling:
		return "🚴"
	default:
		return "•"
	}
}
