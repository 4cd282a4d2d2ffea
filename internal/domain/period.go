package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period represents one discrete time step of the deal's cash flow series.
// Negative NetCashFlow is a capital call, positive is distributable cash.
// Periods are supplied as an ordered, immutable input sequence; the engine
// never reorders or mutates them.
type Period struct {
	Index       int
	Date        time.Time
	NetCashFlow decimal.Decimal
}

// ValidatePeriods ensures the period sequence adheres to input rules.
// Returns an *InputDataError naming the offending period if validation fails.
//
// Checks:
//  1. The sequence is non-empty
//  2. Every period has a usable calendar date (day-count accrual needs it)
//  3. Dates are in strictly increasing order
//
// Non-finite cash flows cannot be represented by decimal.Decimal and are
// rejected at the payload boundary before periods are built.
func ValidatePeriods(periods []Period) error {
	if len(periods) == 0 {
		return &InputDataError{PeriodIndex: 0, Reason: "period list cannot be empty"}
	}

	for i := range periods {
		p := &periods[i]

		if p.Date.IsZero() {
			return &InputDataError{PeriodIndex: p.Index, Reason: "period date is missing"}
		}

		if i > 0 && !p.Date.After(periods[i-1].Date) {
			return &InputDataError{PeriodIndex: p.Index, Reason: "period dates must be strictly increasing"}
		}
	}

	return nil
}
