package services

import (
	"context"
	"errors"
	"log"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

type MetricsService struct {
	habitRepo domain.HabitRepository
	logRepo   domain.LogRepository
	cache     MetricsCache
}

func NewMetricsService(habitRepo domain.HabitRepository, logRepo domain.LogRepository, cache MetricsCache) *MetricsService {
	return &MetricsService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		cache:     cache,
	}
}

type MetricsQuery struct {
	HabitID int64
	UserID  string
	Period  domain.Period
	Mode    domain.IntervalMode
	Today   domain.Date
}

func (s *MetricsService) HabitReport(ctx context.Context, q MetricsQuery) (*metrics.Report, error) {
	habit, err := ownedHabit(ctx, s.habitRepo, q.HabitID, q.UserID)
	if err != nil {
		return nil, err
	}
	return s.report(ctx, habit, q)
}

// Overview evaluates every active habit of the user for the same period.
func (s *MetricsService) Overview(ctx context.Context, q MetricsQuery) ([]metrics.Report, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	reports := make([]metrics.Report, 0, len(habits))
	for _, h := range habits {
		r, err := s.report(ctx, h, q)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	return reports, nil
}

func (s *MetricsService) Trend(ctx context.Context, q MetricsQuery) ([]metrics.TrendPoint, error) {
	habit, err := s.loadHistory(ctx, q)
	if err != nil {
		return nil, err
	}
	return metrics.Trend(habit.Logs, metrics.RuleFor(habit), q.Period, q.Mode, q.Today), nil
}

func (s *MetricsService) Heatmap(ctx context.Context, q MetricsQuery) ([][]metrics.HeatmapCell, error) {
	habit, err := s.loadHistory(ctx, q)
	if err != nil {
		return nil, err
	}
	iv := metrics.ResolvePeriod(q.Period, q.Mode, q.Today)
	return metrics.Heatmap(habit.Logs, metrics.RuleFor(habit), iv), nil
}

func (s *MetricsService) loadHistory(ctx context.Context, q MetricsQuery) (*domain.Habit, error) {
	habit, err := ownedHabit(ctx, s.habitRepo, q.HabitID, q.UserID)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListByHabitID(ctx, habit.ID)
	if err != nil {
		return nil, err
	}
	habit.Logs = logs
	return habit, nil
}

// report serves a cached report or evaluates a fresh one. The generation is read
// before the habit and its logs are reloaded, so a write landing in between makes
// the store a no-op instead of caching the outdated result.
func (s *MetricsService) report(ctx context.Context, habit *domain.Habit, q MetricsQuery) (*metrics.Report, error) {
	key := metrics.ReportKey(q.Period, q.Mode, q.Today)

	var generation int64
	store := false
	if s.cache != nil {
		cached, err := s.cache.GetReport(ctx, habit.ID, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			log.Printf("[CACHE] Error reading report %s for habit %d: %v", key, habit.ID, err)
		}

		gen, err := s.cache.Generation(ctx, habit.ID)
		if err != nil {
			log.Printf("[CACHE] Error reading generation for habit %d: %v", habit.ID, err)
		} else {
			generation, store = gen, true
		}
	}

	if store {
		fresh, err := s.habitRepo.GetByID(ctx, habit.ID)
		if err != nil {
			return nil, err
		}
		habit = fresh
	}

	logs, err := s.logRepo.ListByHabitID(ctx, habit.ID)
	if err != nil {
		return nil, err
	}
	habit.Logs = logs

	report := metrics.EvaluateHabit(habit, q.Period, q.Mode, q.Today)

	if store {
		err := s.cache.SetReport(ctx, habit.ID, generation, key, report)
		if err != nil && !errors.Is(err, domain.ErrStaleReport) {
			log.Printf("[CACHE] Error storing report %s for habit %d: %v", key, habit.ID, err)
		}
	}
	return &report, nil
}
