package metrics

import (
	"math"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

const (
	stabilityChunkSize  = 7
	minRecoveryEntries  = 2
	minStabilityChunks  = 2
	minStabilityEntries = stabilityChunkSize
)

// All calculators expect the filtered window sorted by date ascending.

// Consistency is the percentage of completed entries, 0 for an empty window.
func Consistency(window []domain.DailyLog, rule Rule) int {
	if len(window) == 0 {
		return 0
	}
	return int(math.Round(completionRate(window, rule)))
}

// RecoveryLatency is the mean length, in entries, of the lapses that ended with a
// completion inside the window. A trailing lapse that is still open is ignored.
func RecoveryLatency(window []domain.DailyLog, rule Rule) float64 {
	if len(window) < minRecoveryEntries {
		return 0
	}

	var lapses []int
	currentLapse := 0

	for _, l := range window {
		if rule.Missed(l.Value) {
			currentLapse++
			continue
		}
		if currentLapse > 0 {
			lapses = append(lapses, currentLapse)
			currentLapse = 0
		}
	}

	if len(lapses) == 0 {
		return 0
	}

	total := 0
	for _, l := range lapses {
		total += l
	}
	avg := float64(total) / float64(len(lapses))
	return math.Round(avg*10) / 10
}

// Stability is the inverse coefficient of variation of the completion rates of
// consecutive 7-entry chunks. The last chunk may be shorter.
func Stability(window []domain.DailyLog, rule Rule) int {
	if len(window) < minStabilityEntries {
		return 0
	}

	var rates []float64
	for start := 0; start < len(window); start += stabilityChunkSize {
		end := start + stabilityChunkSize
		if end > len(window) {
			end = len(window)
		}
		rates = append(rates, completionRate(window[start:end], rule))
	}

	if len(rates) < minStabilityChunks {
		return 0
	}

	mean := 0.0
	for _, r := range rates {
		mean += r
	}
	mean /= float64(len(rates))

	variance := 0.0
	for _, r := range rates {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(rates))

	cv := 1.0
	if mean > 0 {
		cv = math.Sqrt(variance) / mean
	}

	return clamp(int(math.Round((1-cv)*100)), 0, 100)
}

func completionRate(logs []domain.DailyLog, rule Rule) float64 {
	if len(logs) == 0 {
		return 0
	}
	completed := 0
	for _, l := range logs {
		if rule.Completed(l.Value) {
			completed++
		}
	}
	return float64(completed) / float64(len(logs)) * 100
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
