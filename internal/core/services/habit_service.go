package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/workers"
)

type HabitService struct {
	repo    domain.HabitRepository
	logRepo domain.LogRepository
	refRepo domain.ReflectionRepository
	cache   MetricsCache
	warmer  *workers.MetricsWarmer
}

func NewHabitService(repo domain.HabitRepository, logRepo domain.LogRepository, refRepo domain.ReflectionRepository, cache MetricsCache, warmer *workers.MetricsWarmer) *HabitService {
	return &HabitService{
		repo:    repo,
		logRepo: logRepo,
		refRepo: refRepo,
		cache:   cache,
		warmer:  warmer,
	}
}

type CreateHabitInput struct {
	UserID string
	Name   string
	Type   string
	Mode   string
	Unit   *string
	Goal   *float64
}

// UpdateHabitInput carries the editable details. Nil fields keep the stored value,
// an empty name keeps the current name.
type UpdateHabitInput struct {
	ID      int64
	UserID  string
	Name    string
	Unit    *string
	Goal    *float64
	Version int
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(
		input.UserID,
		input.Name,
		domain.Polarity(input.Type),
		domain.TrackingMode(input.Mode),
		input.Unit,
		input.Goal,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

// Get returns the full habit snapshot, logs and reflections included.
func (s *HabitService) Get(ctx context.Context, id int64, userID string) (*domain.Habit, error) {
	habit, err := ownedHabit(ctx, s.repo, id, userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByHabitID(ctx, id)
	if err != nil {
		return nil, err
	}
	refs, err := s.refRepo.ListByHabitID(ctx, id)
	if err != nil {
		return nil, err
	}

	habit.Logs = logs
	habit.Reflections = refs
	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := ownedHabit(ctx, s.repo, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && habit.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrHabitConflict, input.Version, habit.Version)
	}

	name := input.Name
	if name == "" {
		name = habit.Name
	}
	unit := habit.Unit
	if input.Unit != nil {
		unit = input.Unit
	}
	goal := habit.Goal
	if input.Goal != nil {
		goal = input.Goal
	}

	oldGoal := habit.Goal

	if err := habit.Update(name, unit, goal); err != nil {
		return nil, err
	}
	goalChanged := !sameGoal(oldGoal, habit.Goal)

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	// reports carry the habit name, so any accepted edit makes them stale
	invalidate(ctx, s.cache, habit.ID)
	s.warm(habit.ID)

	if goalChanged {
		// the completion rule changed, so the materialised streak is stale
		if err := s.refreshStreak(ctx, habit); err != nil {
			return nil, err
		}
	}

	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id int64, userID string) error {
	if _, err := ownedHabit(ctx, s.repo, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	invalidate(ctx, s.cache, id)
	return nil
}

func (s *HabitService) refreshStreak(ctx context.Context, habit *domain.Habit) error {
	logs, err := s.logRepo.ListByHabitID(ctx, habit.ID)
	if err != nil {
		return err
	}

	streak := metrics.MissedStreak(logs, metrics.RuleFor(habit))
	if streak == habit.MissedStreak {
		return nil
	}
	if err := s.repo.UpdateMissedStreak(ctx, habit.ID, streak); err != nil {
		return err
	}
	habit.MissedStreak = streak
	return nil
}

func (s *HabitService) warm(habitID int64) {
	if s.warmer != nil {
		s.warmer.Enqueue(habitID)
	}
}

func sameGoal(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
