package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestPercent(t *testing.T) {
	data := map[string]string{
		"0.0623": "6.23%",
		"0.8":    "80.00%",
		"0":      "0.00%",
		"1":      "100.00%",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, v, Percent(Decimal(k)))
		})
	}
}
