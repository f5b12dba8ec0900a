package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestGoalProgress(t *testing.T) {
	assert.InDelta(t, 25, GoalProgress(d("2000"), d("500")), 0.001)
	assert.InDelta(t, 100, GoalProgress(d("2000"), d("2500")), 0.001)
	assert.InDelta(t, 0, GoalProgress(d("0"), d("500")), 0.001)
}

func TestMonthsUntil(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 10, MonthsUntil(now, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, MonthsUntil(now, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, MonthsUntil(now, time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, MonthsUntil(now, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthlySavingsNeeded(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("even split over remaining months", func(t *testing.T) {
		deadline := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		got := MonthlySavingsNeeded(d("2000"), d("500"), &deadline, now)
		require.NotNil(t, got)
		assert.Equal(t, "150", got.String())
	})

	t.Run("target already reached", func(t *testing.T) {
		deadline := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		got := MonthlySavingsNeeded(d("2000"), d("2000"), &deadline, now)
		require.NotNil(t, got)
		assert.True(t, got.IsZero())
	})

	t.Run("no deadline", func(t *testing.T) {
		assert.Nil(t, MonthlySavingsNeeded(d("2000"), d("500"), nil, now))
	})

	t.Run("past deadline", func(t *testing.T) {
		deadline := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
		assert.Nil(t, MonthlySavingsNeeded(d("2000"), d("500"), &deadline, now))
	})

	t.Run("rounds to cents", func(t *testing.T) {
		deadline := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
		got := MonthlySavingsNeeded(d("1000"), d("0"), &deadline, now)
		require.NotNil(t, got)
		assert.Equal(t, "333.33", got.String())
	})
}
