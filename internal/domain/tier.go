package domain

import (
	"github.com/shopspring/decimal"
)

// HurdleMethod represents how a tier's return hurdle is evaluated
type HurdleMethod string

const (
	HurdleMethodIRR            HurdleMethod = "IRR"
	HurdleMethodEquityMultiple HurdleMethod = "EQUITY_MULTIPLE"
	HurdleMethodEitherOf       HurdleMethod = "EITHER_OF"
)

// ReturnOfCapitalPolicy represents how tier 1 repays contributed capital
type ReturnOfCapitalPolicy string

const (
	ReturnOfCapitalSequentialLPFirst ReturnOfCapitalPolicy = "SEQUENTIAL_LP_FIRST"
	ReturnOfCapitalPariPassu         ReturnOfCapitalPolicy = "PARI_PASSU"
)

// Tier represents one row of the waterfall configuration.
// Tiers are created once from user-entered configuration and are immutable
// during a single waterfall run; a configuration change triggers a new run.
type Tier struct {
	Ordinal              int             // 1-based position, ordering is significant
	IRRHurdle            *float64        // annual IRR threshold; also the tier's accrual rate
	EquityMultipleHurdle *float64        // equity-multiple threshold
	LPSplit              decimal.Decimal // fraction 0..1; LPSplit + GPSplit must equal 1
	GPSplit              decimal.Decimal
	PromotePercent       decimal.Decimal       // GP's disproportionate share, used to derive tier 2+ splits
	GPCatchUp            bool                  // tier 1 only
	ReturnOfCapital      ReturnOfCapitalPolicy // tier 1 only
}

// AccrualRate returns the annual rate at which this tier's capital accounts
// compound unpaid preferred return. For hurdle methods involving IRR this is
// the tier's IRR hurdle rate; a tier with no IRR threshold accrues at 0.
func (t *Tier) AccrualRate() float64 {
	if t.IRRHurdle == nil {
		return 0
	}
	return *t.IRRHurdle
}

// HasExplicitSplits reports whether the tier carries its own split
// percentages. Tiers 2+ without explicit splits get defaults derived from
// LP ownership and PromotePercent.
func (t *Tier) HasExplicitSplits() bool {
	return !t.LPSplit.IsZero() || !t.GPSplit.IsZero()
}
