package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/trailog/internal/domain"
)

// workoutRecord is the persisted shape of one workout. Derived values are
// never written; any found in older payloads are ignored on decode.
type workoutRecord struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Distance      *float64  `json:"distance"`
	Duration      *float64  `json:"duration"`
	Coords        []float64 `json:"coords"`
	CreatedAt     string    `json:"createdAt,omitempty"`
	Cadence       *float64  `json:"cadence,omitempty"`
	ElevationGain *float64  `json:"elevationGain,omitempty"`

	// Date is the creation timestamp field used by early browser builds.
	Date string `json:"date,omitempty"`
}

func toRecord(w *domain.Workout) workoutRecord {
	rec := workoutRecord{
		ID:        w.ID,
		Type:      string(w.Type),
		Distance:  floatPtr(w.Distance),
		Duration:  floatPtr(w.Duration),
		Coords:    []float64{w.Coords.Lat, w.Coords.Lng},
		CreatedAt: w.CreatedAt.UTC().Format(recordTimeLayout),
	}
	switch w.Type {
	case domain.ActivityRunning:
		rec.Cadence = floatPtr(w.Running.Cadence)
	case domain.ActivityCycling:
		rec.ElevationGain = floatPtr(w.Cycling.ElevationGain)
	}
	return rec
}

// encodeWorkouts serializes workouts as a JSON list in collection order.
func encodeWorkouts(workouts []*domain.Workout) (string, error) {
	recs := make([]workoutRecord, 0, len(workouts))
	for _, w := range workouts {
		recs = append(recs, toRecord(w))
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("encoding workouts: %w", err)
	}
	return string(data), nil
}

// decodeWorkouts parses payload and rebuilds every record through the
// factory. Any malformed record fails the whole payload.
func decodeWorkouts(payload string, factory *domain.Factory) ([]*domain.Workout, error) {
	var recs *[]workoutRecord
	if err := json.Unmarshal([]byte(payload), &recs); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	if recs == nil {
		return nil, errors.New("payload is not a list of records")
	}

	workouts := make([]*domain.Workout, 0, len(*recs))
	for i, rec := range *recs {
		w, err := fromRecord(rec, factory)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

func fromRecord(rec workoutRecord, factory *domain.Factory) (*domain.Workout, error) {
	if rec.ID == "" {
		return nil, errors.New("missing id")
	}
	t, ok := domain.ParseActivityType(rec.Type)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", rec.Type)
	}
	if rec.Distance == nil || rec.Duration == nil {
		return nil, errors.New("missing distance or duration")
	}
	if len(rec.Coords) != 2 {
		return nil, fmt.Errorf("coords must have 2 values, got %d", len(rec.Coords))
	}

	stamp := rec.CreatedAt
	if stamp == "" {
		stamp = rec.Date
	}
	if stamp == "" {
		return nil, errors.New("missing createdAt")
	}
	createdAt, err := parseRecordTime(stamp)
	if err != nil {
		return nil, fmt.Errorf("parsing createdAt: %w", err)
	}

	var extra *float64
	switch t {
	case domain.ActivityRunning:
		extra = rec.Cadence
	case domain.ActivityCycling:
		extra = rec.ElevationGain
	}
	if extra == nil {
		return nil, fmt.Errorf("missing %s", domain.ExtraField(t))
	}

	return factory.Rehydrate(rec.ID, createdAt, domain.WorkoutInput{
		Type:     t,
		Distance: *rec.Distance,
		Duration: *rec.Duration,
		Coords:   domain.Coords{Lat: rec.Coords[0], Lng: rec.Coords[1]},
		Extra:    *extra,
	})
}
