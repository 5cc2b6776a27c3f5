// Package metrics derives habit metrics from a daily log history.
//
// Every function is pure: callers pass the log snapshot, the completion rule and
// the reference date explicitly, so results never depend on the wall clock.
package metrics

import (
	"time"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

var rollingDays = map[domain.Period]int{
	domain.PeriodWeek:    7,
	domain.PeriodMonth:   30,
	domain.PeriodQuarter: 90,
	domain.PeriodYear:    365,
}

// Interval is a closed range of calendar days.
type Interval struct {
	Start domain.Date `json:"start"`
	End   domain.Date `json:"end"`
}

func (i Interval) Contains(d domain.Date) bool {
	return !d.Before(i.Start) && !d.After(i.End)
}

// Days returns the number of calendar days in the interval, both ends included.
func (i Interval) Days() int {
	return i.Start.DaysUntil(i.End) + 1
}

// ResolvePeriod maps a period selector to the interval ending today.
// Values outside the closed period set resolve as a year.
func ResolvePeriod(period domain.Period, mode domain.IntervalMode, today domain.Date) Interval {
	if mode == domain.IntervalRolling {
		n, ok := rollingDays[period]
		if !ok {
			n = rollingDays[domain.PeriodYear]
		}
		return Interval{Start: today.AddDays(-(n - 1)), End: today}
	}

	var start domain.Date
	switch period {
	case domain.PeriodWeek:
		start = today.AddDays(-(today.IsoWeekday() - 1))
	case domain.PeriodMonth:
		start = domain.NewDate(today.Year(), today.Month(), 1)
	case domain.PeriodQuarter:
		quarterStart := time.Month((int(today.Month())-1)/3*3 + 1)
		start = domain.NewDate(today.Year(), quarterStart, 1)
	default:
		start = domain.NewDate(today.Year(), time.January, 1)
	}

	return Interval{Start: start, End: today}
}
