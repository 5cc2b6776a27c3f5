package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

func TestHeatmap(t *testing.T) {
	t.Run("Weeks are Monday aligned and padded", func(t *testing.T) {
		// Thursday 1 October to Sunday 18 October 2026
		iv := metrics.Interval{Start: date(2026, time.October, 1), End: date(2026, time.October, 18)}
		logs := boolLogs(date(2026, time.September, 30), true, true, false)

		weeks := metrics.Heatmap(logs, startRule, iv)
		require.Len(t, weeks, 3)
		for _, w := range weeks {
			require.Len(t, w, 7)
		}

		first := weeks[0]
		assert.Equal(t, date(2026, time.September, 28), first[0].Date)
		assert.False(t, first[2].InRange)
		assert.False(t, first[2].Logged, "logs outside the interval are not shown")
		assert.True(t, first[3].InRange)
		assert.Equal(t, 1.0, first[3].Intensity)
		assert.Equal(t, 4, first[3].Bucket)
		assert.True(t, first[4].Logged)
		assert.Equal(t, 0.0, first[4].Intensity)
		assert.Equal(t, 0, first[4].Bucket)
		assert.Equal(t, date(2026, time.October, 18), weeks[2][6].Date)
	})

	t.Run("Quantitative intensity against the goal", func(t *testing.T) {
		iv := metrics.Interval{Start: date(2026, time.October, 12), End: date(2026, time.October, 18)}
		rule := metrics.Rule{Polarity: domain.PolarityStart, Goal: goal(8)}
		logs := numberLogs(iv.Start, 1, 3, 5, 8, 12)

		week := metrics.Heatmap(logs, rule, iv)[0]

		assert.Equal(t, []float64{0.125, 0.375, 0.625, 1, 1, 0, 0}, intensities(week))
		assert.Equal(t, []int{1, 2, 3, 4, 4, 0, 0}, buckets(week))
	})

	t.Run("Quantitative intensity without a goal uses the maximum", func(t *testing.T) {
		iv := metrics.Interval{Start: date(2026, time.October, 12), End: date(2026, time.October, 18)}
		logs := numberLogs(iv.Start, 2, 4, 8)

		week := metrics.Heatmap(logs, startRule, iv)[0]
		assert.Equal(t, []float64{0.25, 0.5, 1, 0, 0, 0, 0}, intensities(week))
	})

	t.Run("Stop habits show completion only", func(t *testing.T) {
		iv := metrics.Interval{Start: date(2026, time.October, 12), End: date(2026, time.October, 18)}
		rule := metrics.Rule{Polarity: domain.PolarityStop, Goal: goal(2)}
		logs := numberLogs(iv.Start, 1, 3)

		week := metrics.Heatmap(logs, rule, iv)[0]
		assert.Equal(t, []float64{1, 0, 0, 0, 0, 0, 0}, intensities(week))
	})

	t.Run("Buckets", func(t *testing.T) {
		assert.Equal(t, 0, metrics.Bucket(0))
		assert.Equal(t, 1, metrics.Bucket(0.1))
		assert.Equal(t, 2, metrics.Bucket(0.25))
		assert.Equal(t, 3, metrics.Bucket(0.5))
		assert.Equal(t, 4, metrics.Bucket(0.75))
	})
}

func intensities(week []metrics.HeatmapCell) []float64 {
	out := make([]float64, len(week))
	for i, c := range week {
		out[i] = c.Intensity
	}
	return out
}

func buckets(week []metrics.HeatmapCell) []int {
	out := make([]int, len(week))
	for i, c := range week {
		out[i] = c.Bucket
	}
	return out
}
