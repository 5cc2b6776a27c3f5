package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/services"
)

var today = domain.NewDate(2026, time.October, 18)

func ptr[T any](v T) *T {
	return &v
}

type fixture struct {
	habits      *repository.InMemoryHabitRepository
	logs        *repository.InMemoryLogRepository
	reflections *repository.InMemoryReflectionRepository
	cache       *cache.MemoryMetricsCache

	habitSvc      *services.HabitService
	logSvc        *services.LogService
	reflectionSvc *services.ReflectionService
	metricsSvc    *services.MetricsService
}

func newFixture() *fixture {
	f := &fixture{
		habits:      repository.NewInMemoryHabitRepository(),
		logs:        repository.NewInMemoryLogRepository(),
		reflections: repository.NewInMemoryReflectionRepository(),
		cache:       cache.NewMemoryMetricsCache(),
	}
	f.habitSvc = services.NewHabitService(f.habits, f.logs, f.reflections, f.cache, nil)
	f.logSvc = services.NewLogService(f.habits, f.logs, f.cache, nil)
	f.reflectionSvc = services.NewReflectionService(f.habits, f.reflections)
	f.metricsSvc = services.NewMetricsService(f.habits, f.logs, f.cache)
	return f
}

func (f *fixture) createHabit(t *testing.T, input services.CreateHabitInput) *domain.Habit {
	t.Helper()
	if input.UserID == "" {
		input.UserID = "user-1"
	}
	if input.Name == "" {
		input.Name = "Meditate"
	}
	if input.Type == "" {
		input.Type = string(domain.PolarityStart)
	}
	if input.Mode == "" {
		input.Mode = string(domain.ModeQualitative)
	}
	h, err := f.habitSvc.Create(context.Background(), input)
	require.NoError(t, err)
	return h
}

// record writes logs directly through the service, oldest first, each dated today - offset.
func (f *fixture) recordBools(t *testing.T, habitID int64, values ...bool) {
	t.Helper()
	for i, v := range values {
		date := today.AddDays(-(len(values) - 1 - i))
		_, err := f.logSvc.Record(context.Background(), services.RecordLogInput{
			HabitID: habitID,
			UserID:  "user-1",
			Date:    date,
			Value:   domain.BoolValue(v),
			Today:   today,
		})
		require.NoError(t, err)
	}
}
