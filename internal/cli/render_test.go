package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spesecasa/cassa/internal/finance"
)

func TestRenderTableEmpty(t *testing.T) {
	assert.Equal(t, "", RenderTable(Table{}))
}

func TestRenderTableContainsCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Categoria", "Importo"},
		Rows: [][]string{
			{"Spesa", "€ 120,00"},
			{"Affitto", "€ 800,00"},
		},
	})

	assert.Contains(t, out, "Categoria")
	assert.Contains(t, out, "Affitto")
	assert.Contains(t, out, "€ 800,00")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╯")
}

func TestRenderBudgetLabelKeepsText(t *testing.T) {
	for _, label := range []string{finance.LabelOnTrack, finance.LabelWarning, finance.LabelOverBudget} {
		assert.Contains(t, RenderBudgetLabel(label), label)
	}
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "", RenderSparkline(nil))

	out := RenderSparkline([]float64{0, 50, 100})
	assert.Equal(t, 3, len([]rune(out)))
	assert.Equal(t, '█', []rune(out)[2])
}

func TestRenderHorizontalBar(t *testing.T) {
	out := RenderHorizontalBar("Spesa", "€ 100,00", 100, 100, 10)
	assert.Contains(t, out, "Spesa")
	assert.Contains(t, out, strings.Repeat("█", 10))

	empty := RenderHorizontalBar("Vuota", "€ 0,00", 0, 100, 10)
	assert.Contains(t, empty, strings.Repeat("░", 10))
}
