package metrics

import (
	"math"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

var averageWindows = map[domain.Period]int{
	domain.PeriodWeek:    3,
	domain.PeriodMonth:   7,
	domain.PeriodQuarter: 14,
	domain.PeriodYear:    30,
}

type TrendPoint struct {
	Date    domain.Date `json:"date"`
	Daily   int         `json:"daily"`
	Average int         `json:"average"`
	Logged  bool        `json:"logged"`
}

// AverageWindow is the number of days smoothed into each trend average.
func AverageWindow(period domain.Period) int {
	if w, ok := averageWindows[period]; ok {
		return w
	}
	return averageWindows[domain.PeriodYear]
}

// Trend returns one point per day of the resolved interval. Unlogged days count as 0.
func Trend(logs []domain.DailyLog, rule Rule, period domain.Period, mode domain.IntervalMode, today domain.Date) []TrendPoint {
	iv := ResolvePeriod(period, mode, today)

	byDate := make(map[domain.Date]domain.DailyLog, len(logs))
	for _, l := range FilterLogs(logs, iv) {
		byDate[l.Date] = l
	}

	points := make([]TrendPoint, 0, iv.Days())
	for d := iv.Start; !d.After(iv.End); d = d.AddDays(1) {
		p := TrendPoint{Date: d}
		if l, ok := byDate[d]; ok {
			p.Logged = true
			if rule.Completed(l.Value) {
				p.Daily = 100
			}
		}
		points = append(points, p)
	}

	window := AverageWindow(period)
	sum := 0
	for i := range points {
		sum += points[i].Daily
		if i >= window {
			sum -= points[i-window].Daily
		}
		n := window
		if i+1 < window {
			n = i + 1
		}
		points[i].Average = int(math.Round(float64(sum) / float64(n)))
	}

	return points
}
