package services

import (
	"context"
	"fmt"
	"log"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

// MetricsCache stores computed reports per habit.
// GetReport returns domain.ErrCacheMiss when nothing is stored under key.
// Every Invalidate advances the habit's generation; SetReport stores a report only
// while the generation read before computing it is still current, and returns
// domain.ErrStaleReport otherwise.
type MetricsCache interface {
	GetReport(ctx context.Context, habitID int64, key string) (*metrics.Report, error)
	Generation(ctx context.Context, habitID int64) (int64, error)
	SetReport(ctx context.Context, habitID int64, generation int64, key string, report metrics.Report) error
	Invalidate(ctx context.Context, habitID int64) error
}

// ownedHabit hides habits of other users behind ErrHabitNotFound.
func ownedHabit(ctx context.Context, repo domain.HabitRepository, id int64, userID string) (*domain.Habit, error) {
	habit, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, fmt.Errorf("%w: %w", domain.ErrHabitNotFound, domain.ErrUnauthorized)
	}
	return habit, nil
}

func invalidate(ctx context.Context, cache MetricsCache, habitID int64) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, habitID); err != nil {
		log.Printf("[CACHE] Error invalidating reports for habit %d: %v", habitID, err)
	}
}
