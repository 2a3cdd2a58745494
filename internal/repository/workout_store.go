package repository

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/alexanderramin/trailog/internal/domain"
)

// DefaultStorageKey is the key the workout list is persisted under.
const DefaultStorageKey = "workouts"

// WorkoutStore owns the ordered in-memory workout collection and its
// round-trip through a KeyValueStore. Insertion order is display order.
type WorkoutStore struct {
	kv       KeyValueStore
	factory  *domain.Factory
	key      string
	workouts []*domain.Workout
}

// NewWorkoutStore creates an empty store. An empty key selects DefaultStorageKey.
func NewWorkoutStore(kv KeyValueStore, factory *domain.Factory, key string) *WorkoutStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &WorkoutStore{kv: kv, factory: factory, key: key}
}

// Key returns the storage key used by Persist and Load.
func (s *WorkoutStore) Key() string { return s.key }

// Append stores a copy of w; later changes to w are not seen by the store.
func (s *WorkoutStore) Append(w *domain.Workout) {
	s.workouts = append(s.workouts, w.Clone())
}

// FindByID returns a copy of the workout with id.
func (s *WorkoutStore) FindByID(id string) (*domain.Workout, bool) {
	for _, w := range s.workouts {
		if w.ID == id {
			return w.Clone(), true
		}
	}
	return nil, false
}

// All yields copies of the workouts in insertion order. Each iteration
// walks a snapshot taken when it starts, so appends during iteration are
// not seen.
func (s *WorkoutStore) All() iter.Seq[*domain.Workout] {
	return func(yield func(*domain.Workout) bool) {
		for _, w := range slices.Clone(s.workouts) {
			if !yield(w.Clone()) {
				return
			}
		}
	}
}

func (s *WorkoutStore) Len() int { return len(s.workouts) }

// Delete removes the workout with id, keeping the order of the rest.
// It does not persist.
func (s *WorkoutStore) Delete(id string) bool {
	i := slices.IndexFunc(s.workouts, func(w *domain.Workout) bool { return w.ID == id })
	if i < 0 {
		return false
	}
	s.workouts = slices.Delete(s.workouts, i, i+1)
	return true
}

// Persist writes the whole collection as one record, replacing any previous one.
func (s *WorkoutStore) Persist(ctx context.Context) error {
	payload, err := encodeWorkouts(s.workouts)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, payload); err != nil {
		return fmt.Errorf("persisting workouts: %w", err)
	}
	return nil
}

// Load replaces the collection with the persisted one. An absent record
// yields an empty collection. A malformed record leaves the collection
// empty and returns *domain.CorruptStateError.
func (s *WorkoutStore) Load(ctx context.Context) error {
	s.workouts = nil

	payload, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("loading workouts: %w", err)
	}
	if !ok {
		return nil
	}

	workouts, err := decodeWorkouts(payload, s.factory)
	if err != nil {
		return &domain.CorruptStateError{Key: s.key, Err: err}
	}
	s.workouts = workouts
	return nil
}

// Clear empties the collection and removes the persisted record.
func (s *WorkoutStore) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("clearing workouts: %w", err)
	}
	s.workouts = nil
	return nil
}
