package hurdle

import (
	"github.com/simaogato/waterfall-backend/internal/domain"
)

// Evaluate decides whether a tier's return hurdle has been met given the
// cumulative metrics to date.
// Logic:
//   - IRR method: met iff current IRR >= the tier's IRR threshold
//   - EQUITY_MULTIPLE method: met iff current EMx >= the tier's EMx threshold
//   - EITHER_OF method: met iff either threshold is met. This is the
//     behavior that decides when cash flows into the next, more GP-favorable
//     tier, so it must stay "either", not "both".
//
// A tier missing a threshold for the active method is treated as never-met
// for that criterion.
func Evaluate(method domain.HurdleMethod, tier *domain.Tier, current Metrics) bool {
	switch method {
	case domain.HurdleMethodIRR:
		return irrMet(tier, current)
	case domain.HurdleMethodEquityMultiple:
		return equityMultipleMet(tier, current)
	case domain.HurdleMethodEitherOf:
		return irrMet(tier, current) || equityMultipleMet(tier, current)
	default:
		return false
	}
}

func irrMet(tier *domain.Tier, current Metrics) bool {
	return tier.IRRHurdle != nil && current.IRR >= *tier.IRRHurdle
}

func equityMultipleMet(tier *domain.Tier, current Metrics) bool {
	return tier.EquityMultipleHurdle != nil && current.EquityMultiple >= *tier.EquityMultipleHurdle
}
