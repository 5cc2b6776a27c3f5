package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidPeriod       = errors.New("invalid period (must be week, month, quarter or year)")
	ErrInvalidIntervalMode = errors.New("invalid interval mode (must be calendar or rolling)")
	ErrInvalidPolarity     = errors.New("invalid habit type (must be Start or Stop)")
	ErrInvalidTrackingMode = errors.New("invalid tracking mode (must be Qualitative or Quantitative)")
)

type Polarity string

const (
	PolarityStart Polarity = "Start"
	PolarityStop  Polarity = "Stop"
)

func (p Polarity) Valid() bool {
	return p == PolarityStart || p == PolarityStop
}

type TrackingMode string

const (
	ModeQualitative  TrackingMode = "Qualitative"
	ModeQuantitative TrackingMode = "Quantitative"
)

func (m TrackingMode) Valid() bool {
	return m == ModeQualitative || m == ModeQuantitative
}

type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

var Periods = []Period{PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}

func (p Period) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

// ParsePeriod accepts an empty string as the default week period.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PeriodWeek, nil
	}
	p := Period(s)
	if !p.Valid() {
		return "", ErrInvalidPeriod
	}
	return p, nil
}

type IntervalMode string

const (
	IntervalCalendar IntervalMode = "calendar"
	IntervalRolling  IntervalMode = "rolling"
)

var IntervalModes = []IntervalMode{IntervalCalendar, IntervalRolling}

func (m IntervalMode) Valid() bool {
	return m == IntervalCalendar || m == IntervalRolling
}

// ParseIntervalMode accepts an empty string as the default calendar mode.
func ParseIntervalMode(s string) (IntervalMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return IntervalCalendar, nil
	}
	m := IntervalMode(s)
	if !m.Valid() {
		return "", ErrInvalidIntervalMode
	}
	return m, nil
}

type Status string

const (
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
	StatusAtRisk    Status = "at-risk"
	StatusPending   Status = "pending"
)

type Level string

const (
	LevelEmerging     Level = "Emerging"
	LevelStable       Level = "Stable"
	LevelInternalized Level = "Internalized"
)
