package accrual

import (
	"math"

	"github.com/shopspring/decimal"
)

// daysPerYear is the day-count basis for the fractional-year exponent
const daysPerYear = 365.0

// Compound returns the preferred return accrued on beginningBalance over
// elapsedDays at annualRate:
//
//	beginningBalance x ((1 + annualRate)^(elapsedDays/365) - 1)
//
// Returns zero when the balance, rate, or elapsed day count is zero or
// negative: accrual never goes negative and never accrues on an empty
// account. Compounding uses a fractional-year exponent rather than per-day
// iteration, so the result stays stable over multi-decade spans.
func Compound(beginningBalance decimal.Decimal, annualRate float64, elapsedDays int) decimal.Decimal {
	if beginningBalance.LessThanOrEqual(decimal.Zero) || annualRate <= 0 || elapsedDays <= 0 {
		return decimal.Zero
	}

	factor := math.Pow(1+annualRate, float64(elapsedDays)/daysPerYear) - 1

	return beginningBalance.Mul(decimal.NewFromFloat(factor))
}
