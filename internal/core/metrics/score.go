package metrics

import (
	"math"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

const (
	consistencyWeight = 0.5
	recoveryWeight    = 0.3
	stabilityWeight   = 0.2

	// recoveryHorizonDays is the latency at which recovery stops contributing.
	recoveryHorizonDays = 7.0

	stableThreshold       = 40
	internalizedThreshold = 70
)

// CompositeScore blends the three metrics into the 0-100 internalization score.
func CompositeScore(consistency int, recoveryLatency float64, stability int) int {
	recovery := math.Max(0, 1-recoveryLatency/recoveryHorizonDays) * 100

	score := float64(consistency)*consistencyWeight +
		recovery*recoveryWeight +
		float64(stability)*stabilityWeight

	return clamp(int(math.Round(score)), 0, 100)
}

func LevelFor(score int) domain.Level {
	switch {
	case score >= internalizedThreshold:
		return domain.LevelInternalized
	case score >= stableThreshold:
		return domain.LevelStable
	default:
		return domain.LevelEmerging
	}
}
