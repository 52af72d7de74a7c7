package xplend

import (
	"github.com/shopspring/decimal"
)

var (
	// BaseRate base borrow rate per year, 0.02
	BaseRate = decimal.NewFromFloat(0.02)
	// OptimalUtilization kink of the interest rate curve, 0.80
	OptimalUtilization = decimal.NewFromFloat(0.8)
	// Slope1 rate multiplier below the kink, 0.04
	Slope1 = decimal.NewFromFloat(0.04)
	// Slope2 rate multiplier above the kink, 0.75
	Slope2 = decimal.NewFromFloat(0.75)
	// MaxHealthFactor sentinel health factor for a position with zero debt
	MaxHealthFactor = decimal.NewFromInt(999)
	// MaxPrecision max precision
	MaxPrecision int32 = 16

	one = decimal.NewFromInt(1)
)

// UtilizationRate utilization rate
// utilization_rate = pool.total_borrowed / pool.total_supplied
func UtilizationRate(totalSupplied, totalBorrowed decimal.Decimal) decimal.Decimal {
	if totalSupplied.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return totalBorrowed.Div(totalSupplied).Truncate(MaxPrecision)
}

// GetBorrowRate borrow rate per year at the given utilization.
//
// Two-slope curve: below the kink the rate climbs by Slope1, above it
// the excess utilization is scaled into (0, 1] and climbs by Slope2.
// Both branches agree at the kink.
func GetBorrowRate(utilizationRate decimal.Decimal) decimal.Decimal {
	if utilizationRate.LessThanOrEqual(OptimalUtilization) {
		return utilizationRate.Div(OptimalUtilization).Mul(Slope1).Add(BaseRate).Truncate(MaxPrecision)
	}

	excessUtilRate := utilizationRate.Sub(OptimalUtilization).Div(one.Sub(OptimalUtilization))
	return excessUtilRate.Mul(Slope2).Add(BaseRate).Add(Slope1).Truncate(MaxPrecision)
}

// GetSupplyRate supply rate per year at the given utilization
// supply_rate = borrow_rate * utilization_rate * (1 - reserve_factor)
func GetSupplyRate(utilizationRate, reserveFactor decimal.Decimal) decimal.Decimal {
	borrowRate := GetBorrowRate(utilizationRate)
	rateToPool := borrowRate.Mul(one.Sub(reserveFactor))
	return utilizationRate.Mul(rateToPool).Truncate(MaxPrecision)
}

// GetHealthFactor health factor of a borrow position
// health_factor = collateral * liquidation_threshold / debt
//
// Values below 1 mark the position eligible for liquidation. Zero debt
// returns the MaxHealthFactor sentinel.
func GetHealthFactor(collateral, debt, liquidationThreshold decimal.Decimal) decimal.Decimal {
	if debt.LessThanOrEqual(decimal.Zero) {
		return MaxHealthFactor
	}

	return collateral.Mul(liquidationThreshold).Div(debt).Truncate(MaxPrecision)
}

// MaxBorrow upper borrow bound for the given collateral
func MaxBorrow(collateral, ltvRatio decimal.Decimal) decimal.Decimal {
	return collateral.Mul(ltvRatio).Truncate(MaxPrecision)
}
