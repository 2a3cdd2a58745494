package service

import (
	"cmp"
	"slices"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/domain"
)

// sortWorkouts orders ws in place. Ties keep insertion order.
func sortWorkouts(ws []*domain.Workout, by app.SortField, desc bool) {
	compare := func(a, b *domain.Workout) int {
		switch by {
		case app.SortDistance:
			return cmp.Compare(a.Distance, b.Distance)
		case app.SortDuration:
			return cmp.Compare(a.Duration, b.Duration)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	slices.SortStableFunc(ws, func(a, b *domain.Workout) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}
