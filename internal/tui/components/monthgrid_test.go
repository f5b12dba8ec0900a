package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepMonthWraps(t *testing.T) {
	assert.Equal(t, 2, StepMonth(1, 1))
	assert.Equal(t, 12, StepMonth(1, -1))
	assert.Equal(t, 1, StepMonth(12, 1))
	assert.Equal(t, 4, StepMonth(1, 3))
}

func TestStepYearClampsToAvailable(t *testing.T) {
	years := []int{2023, 2024, 2025}

	assert.Equal(t, 2024, StepYear(2023, 1, years))
	assert.Equal(t, 2023, StepYear(2023, -1, years))
	assert.Equal(t, 2025, StepYear(2025, 1, years))
	assert.Equal(t, 2030, StepYear(2029, 1, nil))
}

func TestVisibleTabsHidesAdminOnly(t *testing.T) {
	all := VisibleTabs(true)
	limited := VisibleTabs(false)

	assert.Greater(t, len(all), len(limited))
	for _, tab := range limited {
		assert.False(t, tab.AdminOnly)
	}
}

func TestTabIdxByKey(t *testing.T) {
	tabs := VisibleTabs(false)
	assert.Equal(t, 0, TabIdxByKey(tabs, 'd'))
	assert.Equal(t, -1, TabIdxByKey(tabs, 'f'))
	assert.Equal(t, -1, TabIdxByKey(tabs, 'z'))
}

func TestLayoutRowSumsExactly(t *testing.T) {
	widths := LayoutRow(100, 3)
	sum := 0
	for _, w := range widths {
		sum += w
	}
	assert.Equal(t, 100, sum)
	assert.Equal(t, []int{34, 33, 33}, widths)
}
