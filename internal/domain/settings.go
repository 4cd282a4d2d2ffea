package domain

import (
	"github.com/shopspring/decimal"
)

// splitTolerance bounds how far LPSplit + GPSplit may drift from 1.0 before
// the configuration is rejected. Derived splits sum to 1 exactly; the
// tolerance only matters for user-entered splits.
var splitTolerance = decimal.New(1, -9)

// WaterfallSettings is the process-wide configuration for one run.
// Created once per run, read-only thereafter. There is no module-level
// default configuration: every call receives its settings explicitly.
type WaterfallSettings struct {
	HurdleMethod HurdleMethod
	LPOwnership  decimal.Decimal // fraction 0..1
	Tiers        []Tier
}

// Validate ensures the settings adhere to domain rules.
// Returns a *ConfigurationError naming the failing tier if validation fails.
// CRITICAL: must be called before the period loop starts; a malformed
// configuration never produces a partial DistributionRecord sequence.
//
// Checks:
//  1. Tier list is non-empty and holds at least a first tier and a residual tier
//  2. LP ownership is within [0, 1]
//  3. Hurdle method is one of IRR, EQUITY_MULTIPLE, EITHER_OF
//  4. Tier ordinals are 1..N in order
//  5. Each tier's splits sum to 1 within tolerance
//  6. Every non-residual tier carries the threshold(s) the active hurdle
//     method requires (under EITHER_OF at least one of the two)
func (s *WaterfallSettings) Validate() error {
	if len(s.Tiers) == 0 {
		return &ConfigurationError{Reason: "tier list cannot be empty"}
	}
	if len(s.Tiers) < 2 {
		return &ConfigurationError{Reason: "waterfall requires at least a first tier and a residual tier"}
	}

	if s.LPOwnership.LessThan(decimal.Zero) || s.LPOwnership.GreaterThan(decimal.NewFromInt(1)) {
		return &ConfigurationError{Reason: "LP ownership must be between 0 and 1"}
	}

	switch s.HurdleMethod {
	case HurdleMethodIRR, HurdleMethodEquityMultiple, HurdleMethodEitherOf:
	default:
		return &ConfigurationError{Reason: "hurdle method must be IRR, EQUITY_MULTIPLE, or EITHER_OF"}
	}

	one := decimal.NewFromInt(1)
	for i := range s.Tiers {
		tier := &s.Tiers[i]

		if tier.Ordinal != i+1 {
			return &ConfigurationError{TierOrdinal: i + 1, Reason: "tier ordinals must be sequential starting at 1"}
		}

		sum := tier.LPSplit.Add(tier.GPSplit)
		if sum.Sub(one).Abs().GreaterThan(splitTolerance) {
			return &ConfigurationError{TierOrdinal: tier.Ordinal, Reason: "LP and GP splits must sum to 1"}
		}
		if tier.LPSplit.LessThan(decimal.Zero) || tier.GPSplit.LessThan(decimal.Zero) {
			return &ConfigurationError{TierOrdinal: tier.Ordinal, Reason: "splits must not be negative"}
		}

		if tier.Ordinal == 1 {
			switch tier.ReturnOfCapital {
			case ReturnOfCapitalSequentialLPFirst, ReturnOfCapitalPariPassu:
			default:
				return &ConfigurationError{TierOrdinal: 1, Reason: "return of capital policy must be SEQUENTIAL_LP_FIRST or PARI_PASSU"}
			}
		}

		// The residual tier is uncapped and needs no hurdle thresholds
		if i == len(s.Tiers)-1 {
			continue
		}

		if err := s.validateThresholds(tier); err != nil {
			return err
		}
	}

	return nil
}

// validateThresholds ensures a non-residual tier carries the threshold(s)
// required by the active hurdle method
func (s *WaterfallSettings) validateThresholds(tier *Tier) error {
	switch s.HurdleMethod {
	case HurdleMethodIRR:
		if tier.IRRHurdle == nil {
			return &ConfigurationError{TierOrdinal: tier.Ordinal, Reason: "IRR hurdle is required by the IRR hurdle method"}
		}
	case HurdleMethodEquityMultiple:
		if tier.EquityMultipleHurdle == nil {
			return &ConfigurationError{TierOrdinal: tier.Ordinal, Reason: "equity multiple hurdle is required by the EQUITY_MULTIPLE hurdle method"}
		}
	case HurdleMethodEitherOf:
		if tier.IRRHurdle == nil && tier.EquityMultipleHurdle == nil {
			return &ConfigurationError{TierOrdinal: tier.Ordinal, Reason: "at least one hurdle threshold is required by the EITHER_OF hurdle method"}
		}
	}
	return nil
}
