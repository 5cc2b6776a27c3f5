package metrics

import "github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"

// FilterLogs keeps the entries dated inside iv, preserving their order.
func FilterLogs(logs []domain.DailyLog, iv Interval) []domain.DailyLog {
	out := make([]domain.DailyLog, 0, len(logs))
	for _, l := range logs {
		if iv.Contains(l.Date) {
			out = append(out, l)
		}
	}
	return out
}

// SortAscending returns a date-ordered copy; entries with equal dates keep their order.
func SortAscending(logs []domain.DailyLog) []domain.DailyLog {
	out := make([]domain.DailyLog, len(logs))
	copy(out, logs)
	domain.SortLogs(out)
	return out
}

// Window is the filtered, ascending sequence every calculator expects.
func Window(logs []domain.DailyLog, iv Interval) []domain.DailyLog {
	filtered := FilterLogs(logs, iv)
	domain.SortLogs(filtered)
	return filtered
}
