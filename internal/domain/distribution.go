package domain

import (
	"github.com/shopspring/decimal"
)

// DistributionRecord is the output unit: for a given period and tier, the
// amounts distributed to each party and the cash remaining after this tier.
// Zero-amount records are still emitted for tiers that received no cash, so
// the sequence is a complete audit trail. Records are append-only and never
// mutated after creation.
type DistributionRecord struct {
	PeriodIndex   int
	TierOrdinal   int
	LPAmount      decimal.Decimal
	GPAmount      decimal.Decimal
	CashRemaining decimal.Decimal
}

// PartySummary holds a party's cumulative results for the whole run
type PartySummary struct {
	Contributions  decimal.Decimal
	Distributions  decimal.Decimal
	IRR            float64
	EquityMultiple float64
}

// RunSummary holds the final metrics of a waterfall run
type RunSummary struct {
	LP                 PartySummary
	GP                 PartySummary
	DealIRR            float64
	DealEquityMultiple float64
}

// RunResult is the full output of one waterfall run: the ordered record
// sequence (one group per period, one record per tier) plus summary metrics.
type RunResult struct {
	Records []DistributionRecord
	Summary RunSummary
}
