package metrics

import (
	"sort"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

const DefaultBarrierThreshold = 3

type Barrier struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

func FilterReflections(refs []domain.Reflection, iv Interval) []domain.Reflection {
	out := make([]domain.Reflection, 0, len(refs))
	for _, r := range refs {
		if iv.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// RecurringBarriers groups reflections by reason and keeps the reasons seen at least
// minOccurrences times, most frequent first.
func RecurringBarriers(refs []domain.Reflection, minOccurrences int) []Barrier {
	if minOccurrences < 1 {
		minOccurrences = DefaultBarrierThreshold
	}

	counts := make(map[string]int)
	for _, r := range refs {
		counts[r.Reason]++
	}

	barriers := make([]Barrier, 0, len(counts))
	for reason, count := range counts {
		if count >= minOccurrences {
			barriers = append(barriers, Barrier{Reason: reason, Count: count})
		}
	}

	sort.Slice(barriers, func(i, j int) bool {
		if barriers[i].Count != barriers[j].Count {
			return barriers[i].Count > barriers[j].Count
		}
		return barriers[i].Reason < barriers[j].Reason
	})
	return barriers
}
