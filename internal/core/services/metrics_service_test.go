package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/services"
)

func TestMetricsService_HabitReport(t *testing.T) {
	ctx := context.Background()

	t.Run("Evaluates the habit and caches the report", func(t *testing.T) {
		f := newFixture()
		h := f.createHabit(t, services.CreateHabitInput{Name: "Journal"})
		f.recordBools(t, h.ID, false, false, true, false)

		q := services.MetricsQuery{HabitID: h.ID, UserID: "user-1", Period: domain.PeriodWeek, Mode: domain.IntervalRolling, Today: today}
		r, err := f.metricsSvc.HabitReport(ctx, q)

		require.NoError(t, err)
		assert.Equal(t, "Journal", r.HabitName)
		assert.Equal(t, 4, r.Entries)
		assert.Equal(t, 25, r.Consistency)
		assert.Equal(t, 2.0, r.RecoveryLatency)
		assert.Equal(t, domain.StatusMissed, r.TodayStatus)
		assert.Equal(t, 1, f.cache.Len(h.ID))

		cached, err := f.cache.GetReport(ctx, h.ID, metrics.ReportKey(q.Period, q.Mode, q.Today))
		require.NoError(t, err)
		assert.Equal(t, *r, *cached)
	})

	t.Run("Serves a cached report without touching the logs", func(t *testing.T) {
		f := newFixture()
		h := f.createHabit(t, services.CreateHabitInput{})
		q := services.MetricsQuery{HabitID: h.ID, UserID: "user-1", Period: domain.PeriodYear, Mode: domain.IntervalCalendar, Today: today}

		gen, err := f.cache.Generation(ctx, h.ID)
		require.NoError(t, err)
		require.NoError(t, f.cache.SetReport(ctx, h.ID, gen, metrics.ReportKey(q.Period, q.Mode, q.Today), metrics.Report{CompositeScore: 77}))

		r, err := f.metricsSvc.HabitReport(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, 77, r.CompositeScore)
	})

	t.Run("A log recorded during evaluation is not hidden by the cached report", func(t *testing.T) {
		f := newFixture()
		h := f.createHabit(t, services.CreateHabitInput{})
		logs := &interleavedLogRepo{InMemoryLogRepository: f.logs}
		svc := services.NewMetricsService(f.habits, logs, f.cache)
		logs.afterList = func() {
			_, err := f.logSvc.Record(ctx, services.RecordLogInput{
				HabitID: h.ID, UserID: "user-1", Date: today, Value: domain.BoolValue(true), Today: today,
			})
			require.NoError(t, err)
		}
		q := services.MetricsQuery{HabitID: h.ID, UserID: "user-1", Period: domain.PeriodWeek, Mode: domain.IntervalCalendar, Today: today}

		first, err := svc.HabitReport(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, first.TodayStatus)
		assert.Equal(t, 0, f.cache.Len(h.ID), "outdated report must not be stored")

		second, err := svc.HabitReport(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, second.TodayStatus)
		assert.Equal(t, 1, second.Entries)
	})

	t.Run("Hides other users' habits", func(t *testing.T) {
		f := newFixture()
		h := f.createHabit(t, services.CreateHabitInput{})

		_, err := f.metricsSvc.HabitReport(ctx, services.MetricsQuery{HabitID: h.ID, UserID: "user-2", Today: today})
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})
}

func TestMetricsService_Overview(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	a := f.createHabit(t, services.CreateHabitInput{Name: "A"})
	b := f.createHabit(t, services.CreateHabitInput{Name: "B", Type: "Stop"})
	f.recordBools(t, a.ID, true, true)
	f.recordBools(t, b.ID, true, true)

	reports, err := f.metricsSvc.Overview(ctx, services.MetricsQuery{
		UserID: "user-1", Period: domain.PeriodMonth, Mode: domain.IntervalCalendar, Today: today,
	})

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, a.ID, reports[0].HabitID)
	assert.Equal(t, 100, reports[0].Consistency)
	assert.Equal(t, 0, reports[1].Consistency, "Stop habits complete on false")
	assert.Equal(t, domain.StatusAtRisk, reports[1].TodayStatus)
}

func TestMetricsService_TrendAndHeatmap(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	h := f.createHabit(t, services.CreateHabitInput{})
	f.recordBools(t, h.ID, true, false, true)
	q := services.MetricsQuery{HabitID: h.ID, UserID: "user-1", Period: domain.PeriodWeek, Mode: domain.IntervalCalendar, Today: today}

	t.Run("Trend", func(t *testing.T) {
		points, err := f.metricsSvc.Trend(ctx, q)
		require.NoError(t, err)
		require.Len(t, points, 7)
		assert.Equal(t, 100, points[6].Daily)
		assert.Equal(t, 0, points[5].Daily)
		assert.Equal(t, 67, points[6].Average)
	})

	t.Run("Heatmap", func(t *testing.T) {
		weeks, err := f.metricsSvc.Heatmap(ctx, q)
		require.NoError(t, err)
		require.Len(t, weeks, 1)
		assert.Equal(t, 4, weeks[0][6].Bucket)
		assert.True(t, weeks[0][5].Logged)
		assert.Equal(t, 0, weeks[0][5].Bucket)
	})

	t.Run("Other user", func(t *testing.T) {
		q := q
		q.UserID = "user-2"
		_, err := f.metricsSvc.Trend(ctx, q)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
		_, err = f.metricsSvc.Heatmap(ctx, q)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})
}

// interleavedLogRepo runs afterList once, right after the first history read.
type interleavedLogRepo struct {
	*repository.InMemoryLogRepository
	afterList func()
}

func (r *interleavedLogRepo) ListByHabitID(ctx context.Context, habitID int64) ([]domain.DailyLog, error) {
	logs, err := r.InMemoryLogRepository.ListByHabitID(ctx, habitID)
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return logs, err
}
