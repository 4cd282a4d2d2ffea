package distributor

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDistributePromote_PartialLPNeed(t *testing.T) {
	// cash=500, split 0.7/0.3, lpCapitalAccount=200, no prior distributions:
	// lpNeed=200, lpDist=min(200, 350)=200, gpDist=200/0.7x0.3 ~ 85.71
	res := DistributePromote(PromoteInput{
		CashAvailable:    decimal.NewFromInt(500),
		LPCapitalAccount: decimal.NewFromInt(200),
		LPSplit:          decimal.NewFromFloat(0.7),
		GPSplit:          decimal.NewFromFloat(0.3),
	})

	assert.True(t, res.LP.Equal(decimal.NewFromInt(200)), "LP should receive its full need")
	assert.InDelta(t, 85.7142857, res.GP.InexactFloat64(), 1e-6, "GP should scale to the 7:3 ratio")
	assert.InDelta(t, 214.2857143, res.Remaining.InexactFloat64(), 1e-6)
}

func TestDistributePromote_CashCapsLP(t *testing.T) {
	// LP's need exceeds its split share of cash, so cash is the binding cap
	res := DistributePromote(PromoteInput{
		CashAvailable:    decimal.NewFromInt(1000),
		LPCapitalAccount: decimal.NewFromInt(5000),
		LPSplit:          decimal.NewFromFloat(0.7),
		GPSplit:          decimal.NewFromFloat(0.3),
	})

	assert.True(t, res.LP.Equal(decimal.NewFromInt(700)))
	assert.True(t, res.GP.Equal(decimal.NewFromInt(300)))
	assert.True(t, res.Remaining.IsZero())
}

func TestDistributePromote_PriorDistributionsReduceNeed(t *testing.T) {
	// 150 already paid to LP in earlier tiers this period counts toward
	// this tier's 200 account: need is only 50
	res := DistributePromote(PromoteInput{
		CashAvailable:        decimal.NewFromInt(500),
		LPCapitalAccount:     decimal.NewFromInt(200),
		LPSplit:              decimal.NewFromFloat(0.5),
		GPSplit:              decimal.NewFromFloat(0.5),
		PriorLPDistributions: decimal.NewFromInt(150),
	})

	assert.True(t, res.LP.Equal(decimal.NewFromInt(50)))
	assert.True(t, res.GP.Equal(decimal.NewFromInt(50)), "GP matches LP at a 1:1 split")
	assert.True(t, res.Remaining.Equal(decimal.NewFromInt(400)))
}

func TestDistributePromote_NeedFullySatisfiedByPriorTiers(t *testing.T) {
	res := DistributePromote(PromoteInput{
		CashAvailable:        decimal.NewFromInt(500),
		LPCapitalAccount:     decimal.NewFromInt(200),
		LPSplit:              decimal.NewFromFloat(0.7),
		GPSplit:              decimal.NewFromFloat(0.3),
		PriorLPDistributions: decimal.NewFromInt(300),
	})

	assert.True(t, res.LP.IsZero())
	assert.True(t, res.GP.IsZero(), "GP gets nothing when LP distributes nothing")
	assert.True(t, res.Remaining.Equal(decimal.NewFromInt(500)), "all cash passes through")
}

func TestDistributePromote_ZeroLPSplitGuard(t *testing.T) {
	res := DistributePromote(PromoteInput{
		CashAvailable:    decimal.NewFromInt(500),
		LPCapitalAccount: decimal.NewFromInt(200),
		LPSplit:          decimal.Zero,
		GPSplit:          decimal.NewFromInt(1),
	})

	assert.True(t, res.LP.IsZero())
	assert.True(t, res.GP.IsZero())
	assert.True(t, res.Remaining.Equal(decimal.NewFromInt(500)))
}

func TestDistributePromote_NoCash(t *testing.T) {
	res := DistributePromote(PromoteInput{
		CashAvailable:    decimal.NewFromInt(-5),
		LPCapitalAccount: decimal.NewFromInt(200),
		LPSplit:          decimal.NewFromFloat(0.7),
		GPSplit:          decimal.NewFromFloat(0.3),
	})

	assert.True(t, res.LP.IsZero())
	assert.True(t, res.GP.IsZero())
	assert.True(t, res.Remaining.IsZero())
}
