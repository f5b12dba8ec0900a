package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spesecasa/cassa/internal/api"
)

func openTestStore(t *testing.T) *Snapshots {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLoadSummary(t *testing.T) {
	s := openTestStore(t)

	sum := api.Summary{
		Income:  decimal.RequireFromString("2500.50"),
		Expense: decimal.RequireFromString("1800.25"),
		Balance: decimal.RequireFromString("700.25"),
		Period:  api.Period{Month: 3, Year: 2025},
	}
	require.NoError(t, s.SaveSummary(sum))

	got, fetchedAt, ok, err := s.LoadSummary(3, 2025)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Income.Equal(sum.Income))
	assert.True(t, got.Expense.Equal(sum.Expense))
	assert.True(t, got.Balance.Equal(sum.Balance))
	assert.Equal(t, sum.Period, got.Period)
	assert.False(t, fetchedAt.IsZero())
}

func TestLoadSummaryMissingPeriod(t *testing.T) {
	s := openTestStore(t)

	_, _, ok, err := s.LoadSummary(1, 2020)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveSummaryOverwritesPeriod(t *testing.T) {
	s := openTestStore(t)

	first := api.Summary{
		Income: decimal.RequireFromString("100"), Expense: decimal.RequireFromString("50"),
		Balance: decimal.RequireFromString("50"), Period: api.Period{Month: 6, Year: 2025},
	}
	require.NoError(t, s.SaveSummary(first))

	second := first
	second.Income = decimal.RequireFromString("200")
	require.NoError(t, s.SaveSummary(second))

	got, _, ok, err := s.LoadSummary(6, 2025)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "200", got.Income.String())
}

func TestSaveAndLoadYears(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveYears([]int{2025, 2023, 2024}))
	years, err := s.LoadYears()
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024, 2025}, years)

	// Replaces instead of accumulating.
	require.NoError(t, s.SaveYears([]int{2025}))
	years, err = s.LoadYears()
	require.NoError(t, err)
	assert.Equal(t, []int{2025}, years)
}
