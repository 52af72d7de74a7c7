package number

import (
	"github.com/shopspring/decimal"
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// Percent format a rate (0.0623) as a percent string ("6.23%")
func Percent(d decimal.Decimal) string {
	return d.Shift(2).StringFixed(2) + "%"
}
