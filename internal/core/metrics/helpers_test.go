package metrics_test

import (
	"time"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

var (
	startRule = metrics.Rule{Polarity: domain.PolarityStart}
	stopRule  = metrics.Rule{Polarity: domain.PolarityStop}
)

func date(y int, m time.Month, d int) domain.Date {
	return domain.NewDate(y, m, d)
}

func goal(v float64) *float64 {
	return &v
}

// boolLogs builds consecutive daily logs starting at from.
func boolLogs(from domain.Date, values ...bool) []domain.DailyLog {
	logs := make([]domain.DailyLog, len(values))
	for i, v := range values {
		logs[i] = domain.DailyLog{Date: from.AddDays(i), Value: domain.BoolValue(v), Logged: true}
	}
	return logs
}

func numberLogs(from domain.Date, values ...float64) []domain.DailyLog {
	logs := make([]domain.DailyLog, len(values))
	for i, v := range values {
		logs[i] = domain.DailyLog{Date: from.AddDays(i), Value: domain.NumberValue(v), Logged: true}
	}
	return logs
}

func repeat(v bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = v
	}
	return out
}
