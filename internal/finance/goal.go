package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalProgress returns how much of the target has been saved, as a
// percentage capped at 100.
func GoalProgress(target, current decimal.Decimal) float64 {
	if target.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	pct, _ := current.Div(target).Mul(decimal.NewFromInt(100)).Float64()
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// MonthsUntil counts the whole calendar months from now to the deadline.
// A deadline in the current month or earlier counts as zero.
func MonthsUntil(now time.Time, deadline time.Time) int {
	months := (deadline.Year()-now.Year())*12 + int(deadline.Month()) - int(now.Month())
	if months < 0 {
		return 0
	}
	return months
}

// MonthlySavingsNeeded returns the even monthly amount that closes the gap
// to the target by the deadline. It returns nil when there is no deadline
// or the deadline gives no full month to save in, and zero when the target
// is already reached.
func MonthlySavingsNeeded(target, current decimal.Decimal, deadline *time.Time, now time.Time) *decimal.Decimal {
	if deadline == nil {
		return nil
	}
	months := MonthsUntil(now, *deadline)
	if months <= 0 {
		return nil
	}
	gap := target.Sub(current)
	if gap.LessThanOrEqual(decimal.Zero) {
		z := decimal.Zero
		return &z
	}
	monthly := gap.DivRound(decimal.NewFromInt(int64(months)), 2)
	return &monthly
}
