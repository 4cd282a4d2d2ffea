// Package distributor holds the per-tier allocation state machines of the
// waterfall: the first (preferred return + return of capital) tier, the
// promote tiers above it, and the final uncapped residual tier. Every
// function is pure and guards division and negative inputs by returning
// zero amounts, never an error.
package distributor

import (
	"github.com/shopspring/decimal"
)

// Result holds one tier's distribution for one period
type Result struct {
	LP        decimal.Decimal
	GP        decimal.Decimal
	Remaining decimal.Decimal
}

// zero is the no-cash result: no distributions, nothing passed on
func zero() Result {
	return Result{LP: decimal.Zero, GP: decimal.Zero, Remaining: decimal.Zero}
}
