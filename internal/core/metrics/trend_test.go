package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

func TestTrend(t *testing.T) {
	today := date(2026, time.October, 18)

	t.Run("One point per day of the calendar week", func(t *testing.T) {
		monday := date(2026, time.October, 12)
		logs := boolLogs(monday, true, false, true)
		logs = append(logs, boolLogs(monday.AddDays(4), true)...)

		points := metrics.Trend(logs, startRule, domain.PeriodWeek, domain.IntervalCalendar, today)
		require.Len(t, points, 7)

		daily := make([]int, len(points))
		average := make([]int, len(points))
		for i, p := range points {
			daily[i] = p.Daily
			average[i] = p.Average
		}

		assert.Equal(t, []int{100, 0, 100, 0, 100, 0, 0}, daily)
		assert.Equal(t, []int{100, 50, 67, 33, 67, 33, 33}, average)
		assert.False(t, points[3].Logged)
		assert.True(t, points[1].Logged)
		assert.Equal(t, monday, points[0].Date)
		assert.Equal(t, today, points[6].Date)
	})

	t.Run("Rolling quarter spans 90 days", func(t *testing.T) {
		points := metrics.Trend(nil, startRule, domain.PeriodQuarter, domain.IntervalRolling, today)
		assert.Len(t, points, 90)
		assert.Equal(t, 0, points[89].Average)
	})

	t.Run("Average windows", func(t *testing.T) {
		assert.Equal(t, 3, metrics.AverageWindow(domain.PeriodWeek))
		assert.Equal(t, 7, metrics.AverageWindow(domain.PeriodMonth))
		assert.Equal(t, 14, metrics.AverageWindow(domain.PeriodQuarter))
		assert.Equal(t, 30, metrics.AverageWindow(domain.PeriodYear))
	})
}
