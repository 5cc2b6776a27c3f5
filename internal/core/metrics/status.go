package metrics

import (
	"sort"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

const atRiskStreak = 2

// MissedStreak counts consecutive missed entries from the most recent log backwards,
// over the full unfiltered history.
func MissedStreak(logs []domain.DailyLog, rule Rule) int {
	if len(logs) == 0 {
		return 0
	}

	sorted := make([]domain.DailyLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	streak := 0
	for _, l := range sorted {
		if !rule.Missed(l.Value) {
			break
		}
		streak++
	}
	return streak
}

func TodayStatus(logs []domain.DailyLog, rule Rule, missedStreak int, today domain.Date) domain.Status {
	var todayLog *domain.DailyLog
	for i := range logs {
		if logs[i].Date.Equal(today) {
			todayLog = &logs[i]
			break
		}
	}

	switch {
	case todayLog == nil:
		return domain.StatusPending
	case rule.Completed(todayLog.Value):
		return domain.StatusCompleted
	case missedStreak >= atRiskStreak:
		return domain.StatusAtRisk
	default:
		return domain.StatusMissed
	}
}
