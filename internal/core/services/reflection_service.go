package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

type ReflectionService struct {
	habitRepo domain.HabitRepository
	repo      domain.ReflectionRepository
}

func NewReflectionService(habitRepo domain.HabitRepository, repo domain.ReflectionRepository) *ReflectionService {
	return &ReflectionService{
		habitRepo: habitRepo,
		repo:      repo,
	}
}

type AddReflectionInput struct {
	HabitID    int64
	UserID     string
	Date       domain.Date
	Reason     string
	Suggestion string
	Today      domain.Date
}

type BarriersInput struct {
	HabitID        int64
	UserID         string
	Period         domain.Period
	Mode           domain.IntervalMode
	Today          domain.Date
	MinOccurrences int
}

// Add appends a reflection. A zero date means today.
func (s *ReflectionService) Add(ctx context.Context, input AddReflectionInput) (*domain.Reflection, error) {
	habit, err := ownedHabit(ctx, s.habitRepo, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = input.Today
	}
	if date.After(input.Today) {
		return nil, domain.ErrFutureReflection
	}

	ref, err := domain.NewReflection(habit.ID, date, input.Reason, input.Suggestion)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Append(ctx, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

func (s *ReflectionService) List(ctx context.Context, habitID int64, userID string) ([]domain.Reflection, error) {
	if _, err := ownedHabit(ctx, s.habitRepo, habitID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByHabitID(ctx, habitID)
}

// Barriers reports the reasons that keep coming back within the selected period.
func (s *ReflectionService) Barriers(ctx context.Context, input BarriersInput) ([]metrics.Barrier, error) {
	refs, err := s.List(ctx, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	iv := metrics.ResolvePeriod(input.Period, input.Mode, input.Today)
	return metrics.RecurringBarriers(metrics.FilterReflections(refs, iv), input.MinOccurrences), nil
}
