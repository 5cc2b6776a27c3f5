package metrics

import "github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"

// Rule decides whether a logged value counts as completed for a habit.
// The same rule drives consistency, lapses, stability, streaks and status.
type Rule struct {
	Polarity domain.Polarity
	Goal     *float64
}

func RuleFor(h *domain.Habit) Rule {
	return Rule{Polarity: h.Polarity, Goal: h.Goal}
}

// hasGoal reports a usable goal; a zero goal behaves as no goal.
func (r Rule) hasGoal() bool {
	return r.Goal != nil && *r.Goal > 0
}

func (r Rule) Completed(v domain.LogValue) bool {
	stop := r.Polarity == domain.PolarityStop

	if b, ok := v.Bool(); ok {
		return b != stop
	}

	n, ok := v.Number()
	if !ok {
		return false
	}

	if r.hasGoal() {
		if stop {
			return n <= *r.Goal
		}
		return n >= *r.Goal
	}

	if stop {
		return n == 0
	}
	return n > 0
}

func (r Rule) Missed(v domain.LogValue) bool {
	return !r.Completed(v)
}
