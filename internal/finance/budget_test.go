package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetProgress(t *testing.T) {
	tests := []struct {
		name  string
		spent float64
		limit float64
		want  float64
	}{
		{"under budget", 450, 500, 90},
		{"exactly at limit", 500, 500, 100},
		{"over budget capped", 520, 500, 100},
		{"nothing spent", 0, 500, 0},
		{"zero limit with spending", 10, 0, 100},
		{"zero limit no spending", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BudgetProgress(tt.spent, tt.limit), 0.001)
		})
	}
}

func TestBudgetLabel(t *testing.T) {
	tests := []struct {
		name  string
		spent float64
		limit float64
		want  string
	}{
		{"well under", 100, 500, LabelOnTrack},
		{"exactly 80 percent", 400, 500, LabelOnTrack},
		{"just above 80 percent", 450, 500, LabelWarning},
		{"exactly at limit", 500, 500, LabelWarning},
		{"just over limit", 500.01, 500, LabelOverBudget},
		{"far over limit", 520, 500, LabelOverBudget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BudgetLabel(tt.spent, tt.limit))
		})
	}
}

func TestBudgetOverage(t *testing.T) {
	assert.Equal(t, "20", BudgetOverage(520, 500).String())
	assert.True(t, BudgetOverage(450, 500).IsZero())
	assert.True(t, BudgetOverage(500, 500).IsZero())
}
