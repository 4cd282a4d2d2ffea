package distributor

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/waterfall-backend/internal/domain"
)

// Tier1Input holds everything the first tier needs for one period. The
// balances are what each party is owed after this period's accrual and
// contribution have been applied.
type Tier1Input struct {
	CashAvailable decimal.Decimal
	LPBalance     decimal.Decimal
	GPBalance     decimal.Decimal
	LPSplit       decimal.Decimal
	GPSplit       decimal.Decimal
	GPCatchUp     bool
	Policy        domain.ReturnOfCapitalPolicy
}

// DistributeTier1 allocates available cash for the first tier (preferred
// return + return of capital).
//
// Policy SEQUENTIAL_LP_FIRST: LP is paid up to its balance first, then GP is
// paid up to its balance from whatever cash is left.
//
// Policy PARI_PASSU: LP receives min(lpBalance, cash x lpSplit). With
// GPCatchUp, GP then takes everything left up to its balance. Without it,
// GP receives a pro-rata amount scaled to the LP/GP ratio actually achieved
// for LP (lpDist / lpSplit x gpSplit), capped at GP's balance, so the tier's
// target ratio holds even when LP was capped by its own balance rather than
// by available cash.
//
// Never produces a negative distribution: zero or negative cash yields an
// all-zero result, and a zero LPSplit skips the pro-rata formula.
func DistributeTier1(in Tier1Input) Result {
	if in.CashAvailable.LessThanOrEqual(decimal.Zero) {
		return zero()
	}

	var lp, gp decimal.Decimal

	switch in.Policy {
	case domain.ReturnOfCapitalSequentialLPFirst:
		lp = decimal.Min(in.LPBalance, in.CashAvailable)
		gp = decimal.Min(in.GPBalance, in.CashAvailable.Sub(lp))

	case domain.ReturnOfCapitalPariPassu:
		lp = decimal.Min(in.LPBalance, in.CashAvailable.Mul(in.LPSplit))

		if in.GPCatchUp {
			gp = decimal.Min(in.CashAvailable.Sub(lp), in.GPBalance)
		} else if in.LPSplit.GreaterThan(decimal.Zero) {
			proRata := lp.Div(in.LPSplit).Mul(in.GPSplit)
			gp = decimal.Min(proRata, in.GPBalance)
		} else {
			gp = decimal.Zero
		}

	default:
		return zero()
	}

	if lp.LessThan(decimal.Zero) {
		lp = decimal.Zero
	}
	if gp.LessThan(decimal.Zero) {
		gp = decimal.Zero
	}

	return Result{
		LP:        lp,
		GP:        gp,
		Remaining: in.CashAvailable.Sub(lp).Sub(gp),
	}
}
