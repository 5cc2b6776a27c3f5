package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitUnitTooLong   = errors.New("habit unit is too long (max 32 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidGoal        = errors.New("goal cannot be negative")
	ErrHabitDeleted       = errors.New("cannot update a deleted habit")
)

const (
	MaxNameLen = 100
	MaxUnitLen = 32
)

type Habit struct {
	ID           int64        `json:"id"`
	UserID       string       `json:"user_id"`
	Name         string       `json:"name"`
	Polarity     Polarity     `json:"type"`
	Mode         TrackingMode `json:"mode"`
	Unit         *string      `json:"unit,omitempty"`
	Goal         *float64     `json:"goal,omitempty"`
	MissedStreak int          `json:"missed_streak"`
	Logs         []DailyLog   `json:"daily_logs"`
	Reflections  []Reflection `json:"reflections"`
	Version      int          `json:"version"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	DeletedAt    *time.Time   `json:"deleted_at,omitempty"`
}

// normalizeDetails validates the editable fields. Unit and goal only exist for
// quantitative habits and are silently dropped otherwise.
func normalizeDetails(mode TrackingMode, name string, unit *string, goal *float64) (string, *string, *float64, error) {
	cleanName := strings.TrimSpace(name)
	if cleanName == "" {
		return "", nil, nil, ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(cleanName) > MaxNameLen {
		return "", nil, nil, ErrHabitNameTooLong
	}

	if mode != ModeQuantitative {
		return cleanName, nil, nil, nil
	}

	var safeUnit *string
	if unit != nil {
		u := strings.TrimSpace(*unit)
		if utf8.RuneCountInString(u) > MaxUnitLen {
			return "", nil, nil, ErrHabitUnitTooLong
		}
		if u != "" {
			safeUnit = &u
		}
	}

	var safeGoal *float64
	if goal != nil {
		if *goal < 0 {
			return "", nil, nil, ErrInvalidGoal
		}
		g := *goal
		safeGoal = &g
	}

	return cleanName, safeUnit, safeGoal, nil
}

func NewHabit(userID, name string, polarity Polarity, mode TrackingMode, unit *string, goal *float64) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}
	if !polarity.Valid() {
		return nil, ErrInvalidPolarity
	}
	if !mode.Valid() {
		return nil, ErrInvalidTrackingMode
	}

	cleanName, safeUnit, safeGoal, err := normalizeDetails(mode, name, unit, goal)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Habit{
		UserID:      userID,
		Name:        cleanName,
		Polarity:    polarity,
		Mode:        mode,
		Unit:        safeUnit,
		Goal:        safeGoal,
		Logs:        []DailyLog{},
		Reflections: []Reflection{},
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update changes the editable details. Polarity and tracking mode are fixed at creation.
func (h *Habit) Update(name string, unit *string, goal *float64) error {
	if h.DeletedAt != nil {
		return ErrHabitDeleted
	}

	cleanName, safeUnit, safeGoal, err := normalizeDetails(h.Mode, name, unit, goal)
	if err != nil {
		return err
	}

	h.Name = cleanName
	h.Unit = safeUnit
	h.Goal = safeGoal
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) ValidateLog(log DailyLog, today Date) error {
	if log.Date.IsZero() {
		return ErrInvalidDate
	}
	if log.Date.After(today) {
		return ErrFutureLog
	}
	if log.Value.IsZero() {
		return ErrInvalidLogValue
	}
	if log.Value.Mode() != h.Mode {
		return ErrLogModeMismatch
	}
	if n, ok := log.Value.Number(); ok && n < 0 {
		return ErrNegativeLogValue
	}
	return nil
}

// RecordLog inserts log into the date-ordered history. An existing entry may only be
// replaced when it is today's. It reports whether a new entry was created.
func (h *Habit) RecordLog(log DailyLog, today Date) (bool, error) {
	if h.DeletedAt != nil {
		return false, ErrHabitDeleted
	}
	if err := h.ValidateLog(log, today); err != nil {
		return false, err
	}

	for i := range h.Logs {
		if !h.Logs[i].Date.Equal(log.Date) {
			continue
		}
		if !log.Date.Equal(today) {
			return false, ErrLogImmutable
		}
		h.Logs[i] = log
		h.UpdatedAt = time.Now().UTC()
		return false, nil
	}

	h.Logs = append(h.Logs, log)
	SortLogs(h.Logs)
	h.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (h *Habit) LogFor(date Date) (DailyLog, bool) {
	for _, l := range h.Logs {
		if l.Date.Equal(date) {
			return l, true
		}
	}
	return DailyLog{}, false
}
