package hurdle

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestInternalRateOfReturn_OneYearTenPercent(t *testing.T) {
	// -1000 now, +1100 in exactly 365 days: IRR = 10%
	flows := []CashFlow{
		{Date: date("2020-01-01"), Amount: -1000},
		{Date: date("2020-12-31"), Amount: 1100},
	}

	assert.InDelta(t, 0.10, InternalRateOfReturn(flows), 1e-6)
}

func TestInternalRateOfReturn_TwoYearDouble(t *testing.T) {
	// Doubling over two years: (1+r)^2 = 2, r ~ 41.42%
	flows := []CashFlow{
		{Date: date("2020-01-01"), Amount: -1000},
		{Date: date("2021-12-31"), Amount: 2000},
	}

	assert.InDelta(t, 0.414214, InternalRateOfReturn(flows), 1e-5)
}

func TestInternalRateOfReturn_NegativeReturn(t *testing.T) {
	flows := []CashFlow{
		{Date: date("2020-01-01"), Amount: -1000},
		{Date: date("2020-12-31"), Amount: 800},
	}

	assert.InDelta(t, -0.20, InternalRateOfReturn(flows), 1e-6)
}

func TestInternalRateOfReturn_NoSignChange(t *testing.T) {
	// Distributions without any contribution have no root: 0, not NaN
	onlyPositive := []CashFlow{
		{Date: date("2020-01-01"), Amount: 500},
		{Date: date("2020-06-30"), Amount: 700},
	}
	onlyNegative := []CashFlow{
		{Date: date("2020-01-01"), Amount: -500},
		{Date: date("2020-06-30"), Amount: -700},
	}

	assert.Zero(t, InternalRateOfReturn(onlyPositive))
	assert.Zero(t, InternalRateOfReturn(onlyNegative))
}

func TestInternalRateOfReturn_TooFewFlows(t *testing.T) {
	assert.Zero(t, InternalRateOfReturn(nil))
	assert.Zero(t, InternalRateOfReturn([]CashFlow{{Date: date("2020-01-01"), Amount: -1000}}))
}

func TestEquityMultiple_Identity(t *testing.T) {
	// equityMultiple = totalDistributions / totalContributions
	emx := EquityMultiple(decimal.NewFromInt(1800), decimal.NewFromInt(1000))

	assert.InDelta(t, 1.8, emx, 1e-9)
}

func TestEquityMultiple_NoContributions(t *testing.T) {
	// Returns 0, never NaN or infinity
	assert.Zero(t, EquityMultiple(decimal.NewFromInt(500), decimal.Zero))
	assert.Zero(t, EquityMultiple(decimal.Zero, decimal.Zero))
}
