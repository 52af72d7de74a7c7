package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Pool lending pool info, one row per asset
type Pool struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Asset         string          `sql:"size:10;unique_index:asset_idx" json:"asset"`
	TotalSupplied decimal.Decimal `sql:"type:decimal(36,18)" json:"total_supplied"`
	TotalBorrowed decimal.Decimal `sql:"type:decimal(36,18)" json:"total_borrowed"`
	// 累计存款指数，初始为 1。当前版本只存储不推进，xpx 按 1:1 铸造
	LiquidityIndex decimal.Decimal `sql:"type:decimal(36,27);default:1" json:"liquidity_index"`
	// 累计借款指数，初始为 1，同上
	BorrowIndex decimal.Decimal `sql:"type:decimal(36,27);default:1" json:"borrow_index"`
	// 缓存的展示利率，由 rates worker 按当前资金利用率刷新
	SupplyAPY decimal.Decimal `sql:"type:decimal(10,4)" json:"supply_apy"`
	BorrowAPY decimal.Decimal `sql:"type:decimal(10,4)" json:"borrow_apy"`
	// 抵押因子 = 可借贷价值 / 抵押资产价值, 默认 0.75
	LtvRatio decimal.Decimal `sql:"type:decimal(5,4)" json:"ltv_ratio"`
	// 触发清算阈值, LtvRatio < LiquidationThreshold <= 1, 默认 0.80
	LiquidationThreshold decimal.Decimal `sql:"type:decimal(5,4)" json:"liquidation_threshold"`
	// 清算激励因子, 默认 0.05
	LiquidationBonus decimal.Decimal `sql:"type:decimal(5,4)" json:"liquidation_bonus"`
	// 平台保留金率, 默认 0.10
	ReserveFactor decimal.Decimal `sql:"type:decimal(5,4)" json:"reserve_factor"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AvailableLiquidity cash left in the pool for withdraws and borrows
func (p *Pool) AvailableLiquidity() decimal.Decimal {
	return p.TotalSupplied.Sub(p.TotalBorrowed)
}

// IPoolStore pool store interface
type IPoolStore interface {
	Create(ctx context.Context, pool *Pool) error
	Find(ctx context.Context, asset string) (*Pool, bool, error)
	All(ctx context.Context) ([]*Pool, error)
	Update(ctx context.Context, tx *db.DB, pool *Pool) error
}

// IPoolService pool service interface
type IPoolService interface {
	// Get fetches the pool of the asset, lazily creating it with
	// default risk parameters. Creation is idempotent under race.
	Get(ctx context.Context, asset string) (*Pool, error)
	CurUtilization(pool *Pool) decimal.Decimal
	CurBorrowRate(pool *Pool) decimal.Decimal
	CurSupplyRate(pool *Pool) decimal.Decimal
}
