package views

import (
	"xplend/core"

	"github.com/shopspring/decimal"
)

// Pool pool view decorated with live utilization and APY percent
// strings. The formatted fields shadow the pool's cached decimal
// columns in the encoded output.
type Pool struct {
	core.Pool
	Utilization string          `json:"utilization"`
	SupplyApy   string          `json:"supply_apy"`
	BorrowApy   string          `json:"borrow_apy"`
	TVL         decimal.Decimal `json:"tvl"`
	Suppliers   int64           `json:"suppliers"`
	Borrowers   int64           `json:"borrowers"`
}
