package workers

import (
	"context"
	"errors"
	"log"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

const queueSize = 100

type HabitRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Habit, error)
	UpdateMissedStreak(ctx context.Context, id int64, streak int) error
}

type LogRepository interface {
	ListByHabitID(ctx context.Context, habitID int64) ([]domain.DailyLog, error)
}

// ReportCache drops a report with domain.ErrStaleReport when the habit was
// invalidated after generation was read.
type ReportCache interface {
	Generation(ctx context.Context, habitID int64) (int64, error)
	SetReport(ctx context.Context, habitID int64, generation int64, key string, report metrics.Report) error
}

type WarmJob struct {
	HabitID int64
}

// MetricsWarmer recomputes every period and mode report of a habit after its logs
// change, so the next read is served from the cache.
type MetricsWarmer struct {
	habitRepo HabitRepository
	logRepo   LogRepository
	cache     ReportCache
	today     func() domain.Date
	jobs      chan WarmJob
}

func NewMetricsWarmer(hRepo HabitRepository, lRepo LogRepository, cache ReportCache, today func() domain.Date) *MetricsWarmer {
	return &MetricsWarmer{
		habitRepo: hRepo,
		logRepo:   lRepo,
		cache:     cache,
		today:     today,
		jobs:      make(chan WarmJob, queueSize),
	}
}

func (w *MetricsWarmer) Start(ctx context.Context) {
	go func() {
		log.Println("[WORKER] Metrics warmer started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("[WORKER] Metrics warmer shutting down...")
				return
			}
		}
	}()
}

func (w *MetricsWarmer) Enqueue(habitID int64) {
	select {
	case w.jobs <- WarmJob{HabitID: habitID}:
	default:
		log.Printf("[WORKER] Queue full! Dropping warm job for habit %d", habitID)
	}
}

func (w *MetricsWarmer) processJob(ctx context.Context, job WarmJob) {
	generation, err := w.cache.Generation(ctx, job.HabitID)
	if err != nil {
		log.Printf("[WORKER] Error reading cache generation for %d: %v", job.HabitID, err)
		return
	}

	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		log.Printf("[WORKER] Error fetching habit %d: %v", job.HabitID, err)
		return
	}

	logs, err := w.logRepo.ListByHabitID(ctx, job.HabitID)
	if err != nil {
		log.Printf("[WORKER] Error fetching logs for %d: %v", job.HabitID, err)
		return
	}
	habit.Logs = logs

	streak := metrics.MissedStreak(logs, metrics.RuleFor(habit))
	if habit.MissedStreak != streak {
		if err := w.habitRepo.UpdateMissedStreak(ctx, habit.ID, streak); err != nil {
			log.Printf("[WORKER] Failed to repair missed streak for %d: %v", habit.ID, err)
		} else {
			log.Printf("[WORKER] Missed streak repaired for %s: %d -> %d", habit.Name, habit.MissedStreak, streak)
		}
	}

	today := w.today()
	for _, period := range domain.Periods {
		for _, mode := range domain.IntervalModes {
			report := metrics.EvaluateHabit(habit, period, mode, today)
			key := metrics.ReportKey(period, mode, today)
			err := w.cache.SetReport(ctx, habit.ID, generation, key, report)
			if errors.Is(err, domain.ErrStaleReport) {
				// a newer job for this habit is already queued
				return
			}
			if err != nil {
				log.Printf("[WORKER] Failed to cache %s report for %d: %v", key, habit.ID, err)
				return
			}
		}
	}
}
