package services

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/workers"
)

type LogService struct {
	habitRepo domain.HabitRepository
	repo      domain.LogRepository
	cache     MetricsCache
	warmer    *workers.MetricsWarmer

	// serialises read-modify-write of a history and its materialised streak
	mu sync.Mutex
}

func NewLogService(habitRepo domain.HabitRepository, repo domain.LogRepository, cache MetricsCache, warmer *workers.MetricsWarmer) *LogService {
	return &LogService{
		habitRepo: habitRepo,
		repo:      repo,
		cache:     cache,
		warmer:    warmer,
	}
}

type RecordLogInput struct {
	HabitID int64
	UserID  string
	Date    domain.Date
	Value   domain.LogValue
	Today   domain.Date
}

type RecordLogResult struct {
	Log             domain.DailyLog `json:"log"`
	Created         bool            `json:"created"`
	MissedStreak    int             `json:"missed_streak"`
	TodayStatus     domain.Status   `json:"today_status"`
	NeedsReflection bool            `json:"needs_reflection"`
}

// Record stores the log for input.Date. Only today's entry may be overwritten.
func (s *LogService) Record(ctx context.Context, input RecordLogInput) (*RecordLogResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habit, err := ownedHabit(ctx, s.habitRepo, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	logs, err := s.repo.ListByHabitID(ctx, habit.ID)
	if err != nil {
		return nil, err
	}
	habit.Logs = logs

	entry := domain.DailyLog{Date: input.Date, Value: input.Value, Logged: true}
	created, err := habit.RecordLog(entry, input.Today)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, habit.ID, entry); err != nil {
		return nil, err
	}

	// the log is stored: drop reports and queue a repair before anything else can fail
	invalidate(ctx, s.cache, habit.ID)
	if s.warmer != nil {
		s.warmer.Enqueue(habit.ID)
	}

	rule := metrics.RuleFor(habit)
	streak := metrics.MissedStreak(habit.Logs, rule)
	if streak != habit.MissedStreak {
		if err := s.habitRepo.UpdateMissedStreak(ctx, habit.ID, streak); err != nil {
			return nil, err
		}
	}

	status := metrics.TodayStatus(habit.Logs, rule, streak, input.Today)
	return &RecordLogResult{
		Log:             entry,
		Created:         created,
		MissedStreak:    streak,
		TodayStatus:     status,
		NeedsReflection: status == domain.StatusAtRisk,
	}, nil
}

// List returns the logs in [from, to]. A zero bound leaves that side open.
func (s *LogService) List(ctx context.Context, habitID int64, userID string, from, to domain.Date) ([]domain.DailyLog, error) {
	if _, err := ownedHabit(ctx, s.habitRepo, habitID, userID); err != nil {
		return nil, err
	}

	if from.IsZero() && to.IsZero() {
		return s.repo.ListByHabitID(ctx, habitID)
	}
	if from.IsZero() {
		from = domain.NewDate(1, 1, 1)
	}
	if to.IsZero() {
		to = domain.NewDate(9999, 12, 31)
	}
	if from.After(to) {
		return nil, domain.ErrInvalidDateRange
	}

	return s.repo.ListRange(ctx, habitID, from, to)
}
