package app

import (
	"context"
	"fmt"

	"github.com/alexanderramin/trailog/internal/domain"
)

// SortField orders workout listings. Sorting never changes stored order.
type SortField string

const (
	SortCreated  SortField = "created"
	SortDistance SortField = "distance"
	SortDuration SortField = "duration"
)

// ParseSortField validates a --sort flag value. Empty means SortCreated.
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case "", SortCreated:
		return SortCreated, nil
	case SortDistance, SortDuration:
		return SortField(s), nil
	default:
		return "", fmt.Errorf("unknown sort field %q (want created, distance or duration)", s)
	}
}

type ListWorkoutsRequest struct {
	SortBy     SortField
	Descending bool
}

type ResetResult struct {
	Removed   int
	BackupKey string
}

// WorkoutUseCase is the non-interactive workout surface used by CLI commands.
type WorkoutUseCase interface {
	Add(ctx context.Context, in domain.WorkoutInput) (*domain.Workout, error)
	List(ctx context.Context, req ListWorkoutsRequest) ([]*domain.Workout, error)
	Remove(ctx context.Context, id string) (*domain.Workout, error)
	Reset(ctx context.Context) (*ResetResult, error)
	Restore(ctx context.Context) (int, error)
}
