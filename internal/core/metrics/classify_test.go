package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

func TestRule_Completed(t *testing.T) {
	tests := []struct {
		name      string
		rule      metrics.Rule
		value     domain.LogValue
		completed bool
	}{
		{"Start boolean true", startRule, domain.BoolValue(true), true},
		{"Start boolean false", startRule, domain.BoolValue(false), false},
		{"Stop boolean false means abstained", stopRule, domain.BoolValue(false), true},
		{"Stop boolean true means indulged", stopRule, domain.BoolValue(true), false},

		{"Start goal 5, value 5", metrics.Rule{Polarity: domain.PolarityStart, Goal: goal(5)}, domain.NumberValue(5), true},
		{"Start goal 5, value 4", metrics.Rule{Polarity: domain.PolarityStart, Goal: goal(5)}, domain.NumberValue(4), false},
		{"Stop goal 5, value 5", metrics.Rule{Polarity: domain.PolarityStop, Goal: goal(5)}, domain.NumberValue(5), true},
		{"Stop goal 5, value 6", metrics.Rule{Polarity: domain.PolarityStop, Goal: goal(5)}, domain.NumberValue(6), false},

		{"Start no goal, positive value", startRule, domain.NumberValue(0.5), true},
		{"Start no goal, zero", startRule, domain.NumberValue(0), false},
		{"Stop no goal, zero", stopRule, domain.NumberValue(0), true},
		{"Stop no goal, positive value", stopRule, domain.NumberValue(1), false},

		{"Zero goal behaves as no goal", metrics.Rule{Polarity: domain.PolarityStart, Goal: goal(0)}, domain.NumberValue(0), false},
		{"Empty value is never completed", startRule, domain.LogValue{}, false},
		{"Empty value is never completed for Stop", stopRule, domain.LogValue{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.completed, tt.rule.Completed(tt.value))
			assert.Equal(t, !tt.completed, tt.rule.Missed(tt.value))
		})
	}

	t.Run("RuleFor copies polarity and goal", func(t *testing.T) {
		h := &domain.Habit{Polarity: domain.PolarityStop, Goal: goal(2)}
		rule := metrics.RuleFor(h)
		assert.Equal(t, domain.PolarityStop, rule.Polarity)
		assert.Equal(t, 2.0, *rule.Goal)
	})
}
