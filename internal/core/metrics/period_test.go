package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

func TestResolvePeriod(t *testing.T) {
	sunday := date(2026, time.October, 18)
	wednesday := date(2026, time.May, 13)

	tests := []struct {
		name   string
		period domain.Period
		mode   domain.IntervalMode
		today  domain.Date
		start  domain.Date
	}{
		{"Rolling week", domain.PeriodWeek, domain.IntervalRolling, sunday, date(2026, time.October, 12)},
		{"Rolling month", domain.PeriodMonth, domain.IntervalRolling, sunday, date(2026, time.September, 19)},
		{"Rolling quarter", domain.PeriodQuarter, domain.IntervalRolling, sunday, date(2026, time.July, 21)},
		{"Rolling year", domain.PeriodYear, domain.IntervalRolling, sunday, date(2025, time.October, 19)},
		{"Calendar week on a Sunday starts the Monday before", domain.PeriodWeek, domain.IntervalCalendar, sunday, date(2026, time.October, 12)},
		{"Calendar week on a Wednesday", domain.PeriodWeek, domain.IntervalCalendar, wednesday, date(2026, time.May, 11)},
		{"Calendar week on a Monday is a single day", domain.PeriodWeek, domain.IntervalCalendar, date(2026, time.October, 12), date(2026, time.October, 12)},
		{"Calendar month", domain.PeriodMonth, domain.IntervalCalendar, sunday, date(2026, time.October, 1)},
		{"Calendar quarter Q4", domain.PeriodQuarter, domain.IntervalCalendar, sunday, date(2026, time.October, 1)},
		{"Calendar quarter Q2", domain.PeriodQuarter, domain.IntervalCalendar, wednesday, date(2026, time.April, 1)},
		{"Calendar year", domain.PeriodYear, domain.IntervalCalendar, wednesday, date(2026, time.January, 1)},
		{"Unknown period resolves as a year", domain.Period("decade"), domain.IntervalCalendar, wednesday, date(2026, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := metrics.ResolvePeriod(tt.period, tt.mode, tt.today)
			assert.Equal(t, tt.start, iv.Start)
			assert.Equal(t, tt.today, iv.End)
		})
	}

	t.Run("Deterministic for the same inputs", func(t *testing.T) {
		a := metrics.ResolvePeriod(domain.PeriodQuarter, domain.IntervalRolling, sunday)
		b := metrics.ResolvePeriod(domain.PeriodQuarter, domain.IntervalRolling, sunday)
		assert.Equal(t, a, b)
		assert.Equal(t, 90, a.Days())
	})
}

func TestWindow(t *testing.T) {
	from := date(2026, time.March, 1)
	logs := boolLogs(from, true, false, true, true, false)
	shuffled := []domain.DailyLog{logs[4], logs[0], logs[3], logs[1], logs[2]}

	iv := metrics.Interval{Start: from.AddDays(1), End: from.AddDays(3)}

	t.Run("FilterLogs preserves input order", func(t *testing.T) {
		got := metrics.FilterLogs(shuffled, iv)
		assert.Equal(t, []domain.DailyLog{logs[3], logs[1], logs[2]}, got)
	})

	t.Run("Window filters the closed interval and sorts ascending", func(t *testing.T) {
		got := metrics.Window(shuffled, iv)
		assert.Equal(t, logs[1:4], got)
	})

	t.Run("SortAscending does not modify its input", func(t *testing.T) {
		before := append([]domain.DailyLog(nil), shuffled...)
		sorted := metrics.SortAscending(shuffled)
		assert.Equal(t, logs, sorted)
		assert.Equal(t, before, shuffled)
	})

	t.Run("Empty intersection", func(t *testing.T) {
		got := metrics.Window(logs, metrics.Interval{Start: from.AddDays(10), End: from.AddDays(20)})
		assert.Empty(t, got)
		assert.Empty(t, metrics.FilterLogs(nil, iv))
	})
}
