package metrics

import (
	"math"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

type HeatmapCell struct {
	Date      domain.Date `json:"date"`
	InRange   bool        `json:"in_range"`
	Logged    bool        `json:"logged"`
	Intensity float64     `json:"intensity"`
	Bucket    int         `json:"bucket"`
}

// Heatmap lays the interval out as Monday-aligned weeks of seven cells.
// Days before the interval start or after its end are padding with InRange false.
func Heatmap(logs []domain.DailyLog, rule Rule, iv Interval) [][]HeatmapCell {
	inRange := FilterLogs(logs, iv)

	byDate := make(map[domain.Date]domain.DailyLog, len(inRange))
	maxValue := 0.0
	for _, l := range inRange {
		byDate[l.Date] = l
		if n, ok := l.Value.Number(); ok && n > maxValue {
			maxValue = n
		}
	}

	first := iv.Start.AddDays(-(iv.Start.IsoWeekday() - 1))
	last := iv.End.AddDays(7 - iv.End.IsoWeekday())

	var weeks [][]HeatmapCell
	for weekStart := first; !weekStart.After(last); weekStart = weekStart.AddDays(7) {
		week := make([]HeatmapCell, 7)
		for i := range week {
			d := weekStart.AddDays(i)
			cell := HeatmapCell{Date: d, InRange: iv.Contains(d)}
			if l, ok := byDate[d]; ok && cell.InRange {
				cell.Logged = true
				cell.Intensity = intensity(l.Value, rule, maxValue)
			}
			cell.Bucket = Bucket(cell.Intensity)
			week[i] = cell
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func intensity(v domain.LogValue, rule Rule, maxValue float64) float64 {
	n, ok := v.Number()
	if !ok || rule.Polarity == domain.PolarityStop {
		if rule.Completed(v) {
			return 1
		}
		return 0
	}

	if rule.hasGoal() {
		return math.Min(1, n / *rule.Goal)
	}
	if maxValue > 0 {
		return n / maxValue
	}
	return 0
}

// Bucket maps an intensity to one of five shades, 0 meaning empty.
func Bucket(intensity float64) int {
	switch {
	case intensity <= 0:
		return 0
	case intensity < 0.25:
		return 1
	case intensity < 0.5:
		return 2
	case intensity < 0.75:
		return 3
	default:
		return 4
	}
}
