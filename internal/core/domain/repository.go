package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitConflict = errors.New("habit version conflict")
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrCacheMiss     = errors.New("cache miss")
	ErrStaleReport   = errors.New("report computed from an outdated history")
)

type HabitRepository interface {
	// Create persists a new habit definition and assigns its numeric ID.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves the habit definition (without logs or reflections).
	GetByID(ctx context.Context, id int64) (*Habit, error)

	// ListByUserID retrieves all active habits of a user, oldest first.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update modifies name, unit and goal.
	// Implementations must check the version (optimistic locking) and bump it.
	Update(ctx context.Context, habit *Habit) error

	// Delete soft-deletes the habit.
	Delete(ctx context.Context, id int64) error

	// UpdateMissedStreak stores the recomputed missed streak, a read optimisation
	// derived from the full log history.
	UpdateMissedStreak(ctx context.Context, id int64, streak int) error
}

type LogRepository interface {
	// Upsert creates the entry for log.Date or replaces it.
	// Immutability rules are enforced by the domain before calling it.
	Upsert(ctx context.Context, habitID int64, log DailyLog) error

	// ListByHabitID returns the full history ordered by date ascending.
	ListByHabitID(ctx context.Context, habitID int64) ([]DailyLog, error)

	// ListRange returns the entries in the closed range [from, to], ascending.
	ListRange(ctx context.Context, habitID int64, from, to Date) ([]DailyLog, error)
}

type ReflectionRepository interface {
	// Append stores a reflection and assigns its ID. Reflections are never edited.
	Append(ctx context.Context, reflection *Reflection) error

	// ListByHabitID returns reflections ordered by date, then insertion.
	ListByHabitID(ctx context.Context, habitID int64) ([]Reflection, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
