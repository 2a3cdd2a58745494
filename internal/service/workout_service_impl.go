package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/db"
	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/alexanderramin/trailog/internal/repository"
)

type workoutService struct {
	uow      db.UnitOfWork
	factory  *domain.Factory
	key      string
	observer UseCaseObserver
}

// NewWorkoutService builds the non-interactive workout use cases. Each call
// loads, changes and persists the collection inside one transaction.
func NewWorkoutService(uow db.UnitOfWork, factory *domain.Factory, key string, observers ...UseCaseObserver) app.WorkoutUseCase {
	if key == "" {
		key = repository.DefaultStorageKey
	}
	return &workoutService{
		uow:      uow,
		factory:  factory,
		key:      key,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *workoutService) backupKey() string { return s.key + ".backup" }

func (s *workoutService) txStore(tx db.DBTX) *repository.WorkoutStore {
	return repository.NewWorkoutStore(repository.NewSQLiteKVStore(tx), s.factory, s.key)
}

func (s *workoutService) Add(ctx context.Context, in domain.WorkoutInput) (w *domain.Workout, err error) {
	sp := startSpan(s.observer, "add-workout")
	sp.fields["type"] = string(in.Type)
	defer func() { sp.end(ctx, err) }()

	w, err = s.factory.Create(in)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := s.txStore(tx)
		if err := store.Load(ctx); err != nil {
			return fmt.Errorf("loading workouts: %w", err)
		}
		store.Append(w)
		return store.Persist(ctx)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *workoutService) List(ctx context.Context, req app.ListWorkoutsRequest) ([]*domain.Workout, error) {
	var workouts []*domain.Workout
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := s.txStore(tx)
		if err := store.Load(ctx); err != nil {
			return fmt.Errorf("loading workouts: %w", err)
		}
		workouts = slices.Collect(store.All())
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortWorkouts(workouts, req.SortBy, req.Descending)
	return workouts, nil
}

func (s *workoutService) Remove(ctx context.Context, id string) (removed *domain.Workout, err error) {
	sp := startSpan(s.observer, "remove-workout")
	sp.fields["workout_id"] = id
	defer func() { sp.end(ctx, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := s.txStore(tx)
		if err := store.Load(ctx); err != nil {
			return fmt.Errorf("loading workouts: %w", err)
		}
		w, ok := store.FindByID(id)
		if !ok {
			return fmt.Errorf("workout %s: %w", id, domain.ErrWorkoutNotFound)
		}
		store.Delete(id)
		removed = w
		return store.Persist(ctx)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Reset moves the current record to the backup key and clears it. A
// corrupt record is backed up as-is so it can be inspected later.
func (s *workoutService) Reset(ctx context.Context) (result *app.ResetResult, err error) {
	sp := startSpan(s.observer, "reset-workouts")
	defer func() { sp.end(ctx, err) }()

	result = &app.ResetResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := repository.NewSQLiteKVStore(tx)
		payload, ok, err := kv.Get(ctx, s.key)
		if err != nil || !ok {
			return err
		}

		store := s.txStore(tx)
		if err := store.Load(ctx); err == nil {
			result.Removed = store.Len()
		}
		if err := kv.Set(ctx, s.backupKey(), payload); err != nil {
			return err
		}
		result.BackupKey = s.backupKey()
		return store.Clear(ctx)
	})
	if err != nil {
		return nil, err
	}
	sp.fields["removed"] = result.Removed
	return result, nil
}

// Restore puts the backup written by Reset back in place.
func (s *workoutService) Restore(ctx context.Context) (restored int, err error) {
	sp := startSpan(s.observer, "restore-workouts")
	defer func() { sp.end(ctx, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := repository.NewSQLiteKVStore(tx)
		payload, ok, err := kv.Get(ctx, s.backupKey())
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNoBackup
		}

		backup := repository.NewWorkoutStore(kv, s.factory, s.backupKey())
		if err := backup.Load(ctx); err != nil {
			return fmt.Errorf("reading backup: %w", err)
		}
		restored = backup.Len()

		if err := kv.Set(ctx, s.key, payload); err != nil {
			return err
		}
		return kv.Remove(ctx, s.backupKey())
	})
	return restored, err
}
