package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidatePeriods_Valid(t *testing.T) {
	periods := []Period{
		{Index: 0, Date: day("2020-01-01"), NetCashFlow: decimal.NewFromInt(-1000)},
		{Index: 1, Date: day("2020-06-30"), NetCashFlow: decimal.NewFromInt(600)},
	}
	assert.NoError(t, ValidatePeriods(periods))
}

func TestValidatePeriods_Empty(t *testing.T) {
	var inputErr *InputDataError
	require.ErrorAs(t, ValidatePeriods(nil), &inputErr)
}

func TestValidatePeriods_MissingDate(t *testing.T) {
	periods := []Period{
		{Index: 0, Date: day("2020-01-01")},
		{Index: 1},
	}

	var inputErr *InputDataError
	require.ErrorAs(t, ValidatePeriods(periods), &inputErr)
	assert.Equal(t, 1, inputErr.PeriodIndex)
}

func TestValidatePeriods_DatesMustStrictlyIncrease(t *testing.T) {
	t.Run("out of order", func(t *testing.T) {
		periods := []Period{
			{Index: 0, Date: day("2020-06-30")},
			{Index: 1, Date: day("2020-01-01")},
		}

		var inputErr *InputDataError
		require.ErrorAs(t, ValidatePeriods(periods), &inputErr)
		assert.Equal(t, 1, inputErr.PeriodIndex)
	})

	t.Run("duplicate date", func(t *testing.T) {
		periods := []Period{
			{Index: 0, Date: day("2020-01-01")},
			{Index: 1, Date: day("2020-01-01")},
		}

		var inputErr *InputDataError
		require.ErrorAs(t, ValidatePeriods(periods), &inputErr)
		assert.Equal(t, 1, inputErr.PeriodIndex)
	})
}
