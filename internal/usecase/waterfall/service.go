package waterfall

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/waterfall-backend/internal/domain"
	"github.com/simaogato/waterfall-backend/internal/usecase/accrual"
	"github.com/simaogato/waterfall-backend/internal/usecase/allocator"
	"github.com/simaogato/waterfall-backend/internal/usecase/distributor"
	"github.com/simaogato/waterfall-backend/internal/usecase/hurdle"
	"github.com/simaogato/waterfall-backend/internal/usecase/ledger"
)

// Service drives the full waterfall computation. It is stateless: every run
// owns its own ledger and metric history, so independent runs may execute in
// parallel without coordination.
type Service struct{}

// NewService creates a new Service instance
func NewService() *Service {
	return &Service{}
}

var parties = []domain.Party{domain.PartyLP, domain.PartyGP}

// Run executes the waterfall over the ordered period sequence.
// Logic, per period in strict input order:
//  1. Accrue compounded preferred return on every tier/party beginning
//     balance, at each tier's accrual rate, over the days elapsed since the
//     prior period (the first period accrues nothing)
//  2. Split a capital call between LP and GP by ownership and add it to
//     every tier's capital accounts
//  3. Walk tiers in ascending order: tier 1 pays preferred return and
//     return of capital, promote tiers pay only while their hurdle (as of
//     the prior period) is met, the final tier takes all residual cash;
//     each tier's distributions are subtracted from its capital accounts
//     and from the cash carried to the next tier
//  4. Emit one DistributionRecord per tier, including zero-amount records,
//     so the output is a complete audit trail
//  5. Recompute cumulative IRR and equity multiple for the next period's
//     hurdle evaluation
//
// Validation failures abort the run before any record is produced: callers
// never see a truncated waterfall.
func (s *Service) Run(periods []domain.Period, settings domain.WaterfallSettings) (*domain.RunResult, error) {
	normalized := normalizeSettings(settings)

	if err := normalized.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidatePeriods(periods); err != nil {
		return nil, err
	}

	tiers := normalized.Tiers
	led := ledger.New(len(tiers))
	records := make([]domain.DistributionRecord, 0, len(periods)*len(tiers))

	var (
		metrics   hurdle.Metrics // cumulative through the prior period
		dealFlows []hurdle.CashFlow
		lpFlows   []hurdle.CashFlow
		gpFlows   []hurdle.CashFlow
		lpTotals  partyTotals
		gpTotals  partyTotals
		prevDate  time.Time
	)

	for pi := range periods {
		period := &periods[pi]

		elapsedDays := 0
		if pi > 0 {
			elapsedDays = int(period.Date.Sub(prevDate).Hours() / 24)
		}
		prevDate = period.Date

		// 1. Accrue preferred return on beginning balances
		for ti := range tiers {
			rate := tiers[ti].AccrualRate()
			for _, party := range parties {
				led.AddAccrual(ti, party, accrual.Compound(led.BeginningBalance(ti, party), rate, elapsedDays))
			}
		}

		// 2. Apply this period's capital call, if any
		contrib := allocator.AllocateContribution(period.NetCashFlow, normalized.LPOwnership)
		for ti := range tiers {
			led.AddContribution(ti, domain.PartyLP, contrib.LP)
			led.AddContribution(ti, domain.PartyGP, contrib.GP)
		}

		// 3. Walk the tiers with the distributable cash
		cash := period.NetCashFlow
		if cash.LessThan(decimal.Zero) {
			cash = decimal.Zero
		}

		lpPaid := decimal.Zero
		gpPaid := decimal.Zero

		for ti := range tiers {
			tier := &tiers[ti]

			var res distributor.Result
			switch {
			case ti == 0:
				res = distributor.DistributeTier1(distributor.Tier1Input{
					CashAvailable: cash,
					LPBalance:     led.Balance(ti, domain.PartyLP),
					GPBalance:     led.Balance(ti, domain.PartyGP),
					LPSplit:       tier.LPSplit,
					GPSplit:       tier.GPSplit,
					GPCatchUp:     tier.GPCatchUp,
					Policy:        tier.ReturnOfCapital,
				})
			case ti == len(tiers)-1:
				res = distributor.DistributeResidual(cash, tier.LPSplit)
			default:
				if hurdle.Evaluate(normalized.HurdleMethod, tier, metrics) {
					res = distributor.DistributePromote(distributor.PromoteInput{
						CashAvailable:        cash,
						LPCapitalAccount:     led.Balance(ti, domain.PartyLP),
						LPSplit:              tier.LPSplit,
						GPSplit:              tier.GPSplit,
						PriorLPDistributions: lpPaid,
					})
				} else {
					// Below its hurdle: the tier receives nothing and
					// passes all cash through
					res = distributor.Result{LP: decimal.Zero, GP: decimal.Zero, Remaining: cash}
				}
			}

			led.ApplyDistribution(ti, domain.PartyLP, res.LP)
			led.ApplyDistribution(ti, domain.PartyGP, res.GP)

			records = append(records, domain.DistributionRecord{
				PeriodIndex:   period.Index,
				TierOrdinal:   tier.Ordinal,
				LPAmount:      res.LP,
				GPAmount:      res.GP,
				CashRemaining: res.Remaining,
			})

			lpPaid = lpPaid.Add(res.LP)
			gpPaid = gpPaid.Add(res.GP)
			cash = res.Remaining
		}

		led.ClosePeriod()

		// 4. Roll cumulative totals and recompute metrics for the next period
		lpTotals.add(contrib.LP, lpPaid)
		gpTotals.add(contrib.GP, gpPaid)

		dealFlows = append(dealFlows, hurdle.CashFlow{
			Date:   period.Date,
			Amount: lpPaid.Add(gpPaid).Sub(contrib.LP).Sub(contrib.GP).InexactFloat64(),
		})
		lpFlows = append(lpFlows, hurdle.CashFlow{Date: period.Date, Amount: lpPaid.Sub(contrib.LP).InexactFloat64()})
		gpFlows = append(gpFlows, hurdle.CashFlow{Date: period.Date, Amount: gpPaid.Sub(contrib.GP).InexactFloat64()})

		metrics = hurdle.Metrics{
			IRR: hurdle.InternalRateOfReturn(dealFlows),
			EquityMultiple: hurdle.EquityMultiple(
				lpTotals.distributions.Add(gpTotals.distributions),
				lpTotals.contributions.Add(gpTotals.contributions),
			),
		}
	}

	return &domain.RunResult{
		Records: records,
		Summary: domain.RunSummary{
			LP:                 lpTotals.summary(lpFlows),
			GP:                 gpTotals.summary(gpFlows),
			DealIRR:            metrics.IRR,
			DealEquityMultiple: metrics.EquityMultiple,
		},
	}, nil
}

// partyTotals accumulates one party's cumulative contributions and
// distributions across the run
type partyTotals struct {
	contributions decimal.Decimal
	distributions decimal.Decimal
}

func (t *partyTotals) add(contribution, distribution decimal.Decimal) {
	t.contributions = t.contributions.Add(contribution)
	t.distributions = t.distributions.Add(distribution)
}

func (t *partyTotals) summary(flows []hurdle.CashFlow) domain.PartySummary {
	return domain.PartySummary{
		Contributions:  t.contributions,
		Distributions:  t.distributions,
		IRR:            hurdle.InternalRateOfReturn(flows),
		EquityMultiple: hurdle.EquityMultiple(t.distributions, t.contributions),
	}
}

// normalizeSettings returns a copy of the settings with default splits
// filled in: tier 1 defaults to the plain ownership split, later tiers to
// the promote-derived split. The caller's settings value is never mutated.
func normalizeSettings(settings domain.WaterfallSettings) domain.WaterfallSettings {
	normalized := settings
	normalized.Tiers = make([]domain.Tier, len(settings.Tiers))
	copy(normalized.Tiers, settings.Tiers)

	one := decimal.NewFromInt(1)
	for i := range normalized.Tiers {
		tier := &normalized.Tiers[i]
		if tier.HasExplicitSplits() {
			continue
		}

		if i == 0 {
			tier.LPSplit = normalized.LPOwnership
			tier.GPSplit = one.Sub(normalized.LPOwnership)
			continue
		}

		split := allocator.CalculateSplit(normalized.LPOwnership, tier.PromotePercent)
		tier.LPSplit = split.LP
		tier.GPSplit = split.GP
	}

	return normalized
}
