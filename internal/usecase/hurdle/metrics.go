package hurdle

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Metrics holds the cumulative return figures the evaluator compares
// against a tier's thresholds
type Metrics struct {
	IRR            float64
	EquityMultiple float64
}

// CashFlow is one dated flow of the deal or of a single party.
// Contributions are negative, distributions positive.
type CashFlow struct {
	Date   time.Time
	Amount float64
}

const (
	irrDaysPerYear = 365.0
	irrLowerBound  = -0.9999
	irrUpperBound  = 10.0
	irrTolerance   = 1e-9
	irrMaxIter     = 200
)

// InternalRateOfReturn computes the annualized IRR of a dated cash-flow
// series (XIRR): the rate r at which the day-count discounted sum of the
// flows is zero. Solved by bisection, which is deterministic and needs no
// derivative. Returns 0 when the series has no sign change (no root exists,
// e.g. distributions without any contribution) or when the root is not
// bracketed by the search interval.
func InternalRateOfReturn(flows []CashFlow) float64 {
	if len(flows) < 2 {
		return 0
	}

	hasNegative, hasPositive := false, false
	for _, f := range flows {
		if f.Amount < 0 {
			hasNegative = true
		}
		if f.Amount > 0 {
			hasPositive = true
		}
	}
	if !hasNegative || !hasPositive {
		return 0
	}

	base := flows[0].Date
	npv := func(rate float64) float64 {
		total := 0.0
		for _, f := range flows {
			years := f.Date.Sub(base).Hours() / 24 / irrDaysPerYear
			total += f.Amount / math.Pow(1+rate, years)
		}
		return total
	}

	lo, hi := irrLowerBound, irrUpperBound
	npvLo, npvHi := npv(lo), npv(hi)
	if npvLo*npvHi > 0 {
		return 0
	}

	for i := 0; i < irrMaxIter; i++ {
		mid := (lo + hi) / 2
		npvMid := npv(mid)

		if math.Abs(npvMid) < irrTolerance || (hi-lo)/2 < irrTolerance {
			return mid
		}

		if npvLo*npvMid < 0 {
			hi = mid
		} else {
			lo, npvLo = mid, npvMid
		}
	}

	return (lo + hi) / 2
}

// EquityMultiple returns totalDistributions / totalContributions.
// Returns 0 (not NaN or infinity) when nothing has been contributed yet.
func EquityMultiple(totalDistributions, totalContributions decimal.Decimal) float64 {
	if totalContributions.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return totalDistributions.Div(totalContributions).InexactFloat64()
}
