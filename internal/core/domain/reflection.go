package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrReflectionReasonEmpty = errors.New("reflection reason cannot be empty")
	ErrReflectionTooLong     = errors.New("reflection text is too long (max 200 chars)")
	ErrFutureReflection      = errors.New("cannot reflect on a future date")
)

const MaxReflectionLen = 200

// Suggested picks offered to clients; free text is accepted as well.
var (
	ReflectionReasons = []string{
		"Time constraint",
		"Low energy",
		"Emotional state",
		"Environmental trigger",
		"Other",
	}
	ReflectionSuggestions = []string{
		"Earlier scheduling",
		"Shorter session",
		"Find an alternative",
		"Remove the trigger",
		"Rest and retry",
		"Other",
	}
)

type Reflection struct {
	ID         int64     `json:"id" db:"id"`
	HabitID    int64     `json:"habit_id" db:"habit_id"`
	Date       Date      `json:"date" db:"date"`
	Reason     string    `json:"reason" db:"reason"`
	Suggestion string    `json:"suggestion" db:"suggestion"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

func NewReflection(habitID int64, date Date, reason, suggestion string) (*Reflection, error) {
	reason = strings.TrimSpace(reason)
	suggestion = strings.TrimSpace(suggestion)

	if reason == "" {
		return nil, ErrReflectionReasonEmpty
	}
	if utf8.RuneCountInString(reason) > MaxReflectionLen || utf8.RuneCountInString(suggestion) > MaxReflectionLen {
		return nil, ErrReflectionTooLong
	}
	if date.IsZero() {
		return nil, ErrInvalidDate
	}

	return &Reflection{
		HabitID:    habitID,
		Date:       date,
		Reason:     reason,
		Suggestion: suggestion,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
