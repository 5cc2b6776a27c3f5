package metrics

import (
	"fmt"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

type Input struct {
	Logs   []domain.DailyLog
	Rule   Rule
	Period domain.Period
	Mode   domain.IntervalMode
	Today  domain.Date
}

type Report struct {
	HabitID         int64               `json:"habit_id,omitempty"`
	HabitName       string              `json:"habit_name,omitempty"`
	Period          domain.Period       `json:"period"`
	Mode            domain.IntervalMode `json:"mode"`
	Start           domain.Date         `json:"start"`
	End             domain.Date         `json:"end"`
	Entries         int                 `json:"entries"`
	Consistency     int                 `json:"consistency"`
	RecoveryLatency float64             `json:"recovery_latency"`
	Stability       int                 `json:"stability"`
	CompositeScore  int                 `json:"composite_score"`
	Level           domain.Level        `json:"level"`
	MissedStreak    int                 `json:"missed_streak"`
	TodayStatus     domain.Status       `json:"today_status"`
	NeedsReflection bool                `json:"needs_reflection"`
}

// Evaluate runs the whole pipeline: resolve the interval, window the logs, compute
// the metrics and the composite score, then classify today against the full history.
func Evaluate(in Input) Report {
	iv := ResolvePeriod(in.Period, in.Mode, in.Today)
	window := Window(in.Logs, iv)

	consistency := Consistency(window, in.Rule)
	latency := RecoveryLatency(window, in.Rule)
	stability := Stability(window, in.Rule)
	score := CompositeScore(consistency, latency, stability)

	streak := MissedStreak(in.Logs, in.Rule)
	status := TodayStatus(in.Logs, in.Rule, streak, in.Today)

	return Report{
		Period:          in.Period,
		Mode:            in.Mode,
		Start:           iv.Start,
		End:             iv.End,
		Entries:         len(window),
		Consistency:     consistency,
		RecoveryLatency: latency,
		Stability:       stability,
		CompositeScore:  score,
		Level:           LevelFor(score),
		MissedStreak:    streak,
		TodayStatus:     status,
		NeedsReflection: status == domain.StatusAtRisk,
	}
}

// EvaluateHabit evaluates a habit snapshot loaded with its logs.
func EvaluateHabit(h *domain.Habit, period domain.Period, mode domain.IntervalMode, today domain.Date) Report {
	r := Evaluate(Input{
		Logs:   h.Logs,
		Rule:   RuleFor(h),
		Period: period,
		Mode:   mode,
		Today:  today,
	})
	r.HabitID = h.ID
	r.HabitName = h.Name
	return r
}

// ReportKey identifies a report among the cached reports of one habit.
func ReportKey(period domain.Period, mode domain.IntervalMode, today domain.Date) string {
	return fmt.Sprintf("%s:%s:%s", period, mode, today)
}
