package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

type mockHabitRepository struct {
	mock.Mock
}

func (m *mockHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

func (m *mockHabitRepository) GetByID(ctx context.Context, id int64) (*domain.Habit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Habit), args.Error(1)
}

func (m *mockHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Habit), args.Error(1)
}

func (m *mockHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

func (m *mockHabitRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockHabitRepository) UpdateMissedStreak(ctx context.Context, id int64, streak int) error {
	return m.Called(ctx, id, streak).Error(0)
}

type mockLogRepository struct {
	mock.Mock
}

func (m *mockLogRepository) Upsert(ctx context.Context, habitID int64, log domain.DailyLog) error {
	return m.Called(ctx, habitID, log).Error(0)
}

func (m *mockLogRepository) ListByHabitID(ctx context.Context, habitID int64) ([]domain.DailyLog, error) {
	args := m.Called(ctx, habitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyLog), args.Error(1)
}

func (m *mockLogRepository) ListRange(ctx context.Context, habitID int64, from, to domain.Date) ([]domain.DailyLog, error) {
	args := m.Called(ctx, habitID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyLog), args.Error(1)
}

type mockMetricsCache struct {
	mock.Mock
}

func (m *mockMetricsCache) GetReport(ctx context.Context, habitID int64, key string) (*metrics.Report, error) {
	args := m.Called(ctx, habitID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.Report), args.Error(1)
}

func (m *mockMetricsCache) Generation(ctx context.Context, habitID int64) (int64, error) {
	args := m.Called(ctx, habitID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMetricsCache) SetReport(ctx context.Context, habitID int64, generation int64, key string, report metrics.Report) error {
	return m.Called(ctx, habitID, generation, key, report).Error(0)
}

func (m *mockMetricsCache) Invalidate(ctx context.Context, habitID int64) error {
	return m.Called(ctx, habitID).Error(0)
}
