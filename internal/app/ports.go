package app

import (
	"context"
	"time"

	"github.com/alexanderramin/trailog/internal/domain"
)

// LocationProvider resolves the user's position once. Exactly one of the
// callbacks fires, possibly after the call returns.
type LocationProvider interface {
	RequestCurrentPosition(ctx context.Context, onSuccess func(domain.Coords), onFailure func(error))
}

// MapWidget creates the map centered on a position.
type MapWidget interface {
	Initialize(center domain.Coords, zoom int) MapHandle
}

// MapHandle is the live map returned by MapWidget.Initialize.
type MapHandle interface {
	OnClick(handler func(domain.Coords))
	AddMarker(at domain.Coords, popup string) MarkerHandle
	RemoveMarker(m MarkerHandle)
	PanTo(center domain.Coords, zoom int)
}

// MarkerHandle is an opaque placed marker.
type MarkerHandle interface {
	Coords() domain.Coords
}

// ExtraField selects which variant-specific input the form shows.
type ExtraField int

const (
	ExtraCadence ExtraField = iota
	ExtraElevation
)

// ExtraFieldFor returns the input field shown for activity type t.
func ExtraFieldFor(t domain.ActivityType) ExtraField {
	if t == domain.ActivityCycling {
		return ExtraElevation
	}
	return ExtraCadence
}

// FormUI is the workout entry form. Numeric getters return NaN when the
// field text is not a number.
type FormUI interface {
	Type() domain.ActivityType
	Distance() float64
	Duration() float64
	Cadence() float64
	ElevationGain() float64

	Show()
	Hide(settle time.Duration)
	Reset()
	FocusDistance()
	SetExtraField(f ExtraField)
}

// ListUI is the workout list. Row clicks are delivered to the controller
// by the adapter, carrying the row's workout id.
type ListUI interface {
	AppendRow(id, rendered string)
	RemoveRow(id string)
	Clear()
}

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarn
	NoticeError
)

// Notifier surfaces messages to the user.
type Notifier interface {
	Notify(level NoticeLevel, message string)
}

// RowRenderer turns a workout into the representation a ListUI displays.
type RowRenderer func(w *domain.Workout) string
