package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

var (
	_ domain.HabitRepository      = (*InMemoryHabitRepository)(nil)
	_ domain.LogRepository        = (*InMemoryLogRepository)(nil)
	_ domain.ReflectionRepository = (*InMemoryReflectionRepository)(nil)
	_ domain.UserRepository       = (*InMemoryUserRepository)(nil)
)

// InMemoryHabitRepository stores habit definitions only. Logs and reflections
// live in their own repositories, as they do in Postgres.
type InMemoryHabitRepository struct {
	store  map[int64]*domain.Habit
	nextID int64

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[int64]*domain.Habit),
	}
}

func cloneHabit(h *domain.Habit) *domain.Habit {
	c := *h
	c.Logs = []domain.DailyLog{}
	c.Reflections = []domain.Reflection{}
	if h.Unit != nil {
		u := *h.Unit
		c.Unit = &u
	}
	if h.Goal != nil {
		g := *h.Goal
		c.Goal = &g
	}
	return &c
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	habit.ID = r.nextID
	if habit.Version == 0 {
		habit.Version = 1
	}
	r.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id int64) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok || habit.DeletedAt != nil {
		return nil, domain.ErrHabitNotFound
	}
	return cloneHabit(habit), nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*domain.Habit, 0)
	for _, h := range r.store {
		if h.UserID == userID && h.DeletedAt == nil {
			habits = append(habits, cloneHabit(h))
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].ID < habits[j].ID
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[habit.ID]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}
	if stored.Version != habit.Version {
		return fmt.Errorf("%w: stored v%d vs v%d", domain.ErrHabitConflict, stored.Version, habit.Version)
	}

	habit.Version++
	next := cloneHabit(habit)
	next.MissedStreak = stored.MissedStreak
	r.store[habit.ID] = next
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.store[id]
	if !ok || habit.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}

	now := time.Now().UTC()
	habit.DeletedAt = &now
	habit.UpdatedAt = now
	return nil
}

func (r *InMemoryHabitRepository) UpdateMissedStreak(ctx context.Context, id int64, streak int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.store[id]
	if !ok || habit.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}
	habit.MissedStreak = streak
	return nil
}

type InMemoryLogRepository struct {
	store map[int64][]domain.DailyLog

	mu sync.RWMutex
}

func NewInMemoryLogRepository() *InMemoryLogRepository {
	return &InMemoryLogRepository{
		store: make(map[int64][]domain.DailyLog),
	}
}

func (r *InMemoryLogRepository) Upsert(ctx context.Context, habitID int64, log domain.DailyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs := r.store[habitID]
	for i := range logs {
		if logs[i].Date.Equal(log.Date) {
			logs[i] = log
			return nil
		}
	}

	logs = append(logs, log)
	domain.SortLogs(logs)
	r.store[habitID] = logs
	return nil
}

func (r *InMemoryLogRepository) ListByHabitID(ctx context.Context, habitID int64) ([]domain.DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.DailyLog, len(r.store[habitID]))
	copy(out, r.store[habitID])
	return out, nil
}

func (r *InMemoryLogRepository) ListRange(ctx context.Context, habitID int64, from, to domain.Date) ([]domain.DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.DailyLog, 0)
	for _, l := range r.store[habitID] {
		if !l.Date.Before(from) && !l.Date.After(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

type InMemoryReflectionRepository struct {
	store  map[int64][]domain.Reflection
	nextID int64

	mu sync.RWMutex
}

func NewInMemoryReflectionRepository() *InMemoryReflectionRepository {
	return &InMemoryReflectionRepository{
		store: make(map[int64][]domain.Reflection),
	}
}

func (r *InMemoryReflectionRepository) Append(ctx context.Context, reflection *domain.Reflection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	reflection.ID = r.nextID
	r.store[reflection.HabitID] = append(r.store[reflection.HabitID], *reflection)
	return nil
}

func (r *InMemoryReflectionRepository) ListByHabitID(ctx context.Context, habitID int64) ([]domain.Reflection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Reflection, len(r.store[habitID]))
	copy(out, r.store[habitID])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

type InMemoryUserRepository struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := r.byEmail[email]; exists {
		return domain.ErrEmailAlreadyExists
	}

	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[email] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}
