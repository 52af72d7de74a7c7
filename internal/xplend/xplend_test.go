package xplend

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilizationRate(t *testing.T) {
	assert.True(t, UtilizationRate(decimal.Zero, decimal.Zero).IsZero(), "empty pool should be 0")
	assert.True(t, UtilizationRate(decimal.Zero, decimal.NewFromInt(10)).IsZero(), "zero supply should be 0")

	u := UtilizationRate(decimal.NewFromInt(1000), decimal.NewFromInt(800))
	assert.True(t, u.Equal(decimal.NewFromFloat(0.8)))
}

func TestGetBorrowRateFloor(t *testing.T) {
	for i := 0; i <= 100; i++ {
		u := decimal.NewFromInt(int64(i)).Div(decimal.NewFromInt(100))
		rate := GetBorrowRate(u)
		assert.True(t, rate.GreaterThanOrEqual(BaseRate), "borrow rate below base rate at u=%s", u)
	}
}

func TestGetBorrowRateMonotonic(t *testing.T) {
	prev := decimal.Zero
	for i := 0; i <= 100; i++ {
		u := decimal.NewFromInt(int64(i)).Div(decimal.NewFromInt(100))
		rate := GetBorrowRate(u)
		assert.True(t, rate.GreaterThanOrEqual(prev), "borrow rate decreased at u=%s", u)
		prev = rate
	}
}

func TestGetBorrowRateKinkContinuity(t *testing.T) {
	atKink := GetBorrowRate(OptimalUtilization)
	require.True(t, atKink.Equal(decimal.NewFromFloat(0.06)), "rate at kink should be base + slope1, got %s", atKink)

	// the jump branch starts exactly where the normal branch ends
	justAbove := GetBorrowRate(decimal.NewFromFloat(0.800001))
	assert.True(t, justAbove.Sub(atKink).Abs().LessThan(decimal.NewFromFloat(0.00001)))
}

func TestGetSupplyRateBelowBorrowRate(t *testing.T) {
	reserveFactor := decimal.NewFromFloat(0.1)

	for i := 0; i <= 100; i++ {
		u := decimal.NewFromInt(int64(i)).Div(decimal.NewFromInt(100))
		borrowRate := GetBorrowRate(u)
		supplyRate := GetSupplyRate(u, reserveFactor)
		assert.True(t, supplyRate.LessThanOrEqual(borrowRate), "supply rate above borrow rate at u=%s", u)
	}
}

func TestGetHealthFactor(t *testing.T) {
	threshold := decimal.NewFromFloat(0.8)

	hf := GetHealthFactor(decimal.NewFromInt(1000), decimal.NewFromInt(700), threshold)
	expected := decimal.NewFromInt(1000).Mul(threshold).Div(decimal.NewFromInt(700)).Truncate(MaxPrecision)
	assert.True(t, hf.Equal(expected), "got %s", hf)
	assert.True(t, hf.GreaterThan(decimal.NewFromFloat(1.14)))
	assert.True(t, hf.LessThan(decimal.NewFromFloat(1.15)))

	assert.True(t, GetHealthFactor(decimal.NewFromInt(1000), decimal.Zero, threshold).Equal(MaxHealthFactor), "zero debt should hit the sentinel")
}

func TestMaxBorrow(t *testing.T) {
	max := MaxBorrow(decimal.NewFromInt(1000), decimal.NewFromFloat(0.75))
	assert.True(t, max.Equal(decimal.NewFromInt(750)))
}
