package allocator

import (
	"github.com/shopspring/decimal"
)

// TierSplit holds the LP/GP distribution-split percentages for one tier.
// LP + GP equals 1 exactly by construction, not by rounding.
type TierSplit struct {
	LP decimal.Decimal
	GP decimal.Decimal
}

// CalculateSplit derives a promote tier's default split percentages from LP
// ownership and the GP promote percentage.
// Logic:
//
//	gpSplit = 1 - lpOwnership x (1 - promotePercent)
//	lpSplit = 1 - gpSplit
//
// The promote percentage is GP's disproportionate share above LP's ownership:
// with promotePercent = 0 the split collapses to plain ownership, with
// promotePercent = 1 GP takes everything.
func CalculateSplit(lpOwnership, promotePercent decimal.Decimal) TierSplit {
	one := decimal.NewFromInt(1)

	gp := one.Sub(lpOwnership.Mul(one.Sub(promotePercent)))

	return TierSplit{
		LP: one.Sub(gp),
		GP: gp,
	}
}
