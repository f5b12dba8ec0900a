// Package finance holds the pure presentation math: budget health, savings
// goal projections and password strength. Everything here is computed from
// server-provided figures; no aggregation happens client side.
package finance

import "github.com/shopspring/decimal"

// Budget health labels shown across the dashboard and budget views.
const (
	LabelOverBudget = "Superato"
	LabelWarning    = "Attenzione"
	LabelOnTrack    = "In linea"
)

// BudgetProgress returns the fill percentage for a budget bar, capped at
// 100 so an overrun does not stretch the gauge.
func BudgetProgress(spent, limit float64) float64 {
	if limit <= 0 {
		if spent > 0 {
			return 100
		}
		return 0
	}
	pct := spent / limit * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// BudgetLabel classifies a budget by how much of its limit is spent.
// Warning starts strictly above 80%; over budget strictly above the limit.
func BudgetLabel(spent, limit float64) string {
	if limit > 0 && spent > limit {
		return LabelOverBudget
	}
	if limit <= 0 {
		if spent > 0 {
			return LabelOverBudget
		}
		return LabelOnTrack
	}
	pct := spent / limit * 100
	if pct > 80 {
		return LabelWarning
	}
	return LabelOnTrack
}

// BudgetOverage returns how far past the limit the spending is, or zero
// when within budget.
func BudgetOverage(spent, limit float64) decimal.Decimal {
	s := decimal.NewFromFloat(spent)
	l := decimal.NewFromFloat(limit)
	if s.LessThanOrEqual(l) {
		return decimal.Zero
	}
	return s.Sub(l)
}
