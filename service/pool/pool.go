package pool

import (
	"context"

	"xplend/core"
	"xplend/internal/xplend"

	"github.com/shopspring/decimal"
)

type service struct {
	poolStore core.IPoolStore
}

// New new pool service
func New(poolStore core.IPoolStore) core.IPoolService {
	return &service{
		poolStore: poolStore,
	}
}

// Get fetch-or-create the pool of the asset.
//
// A missing pool is created with the default risk parameters and never
// recreated once present: creation goes through FirstOrCreate against
// the unique asset index, so a racing create falls back to the winner's
// row.
func (s *service) Get(ctx context.Context, asset string) (*core.Pool, error) {
	pool, notFound, err := s.poolStore.Find(ctx, asset)
	if err != nil {
		return nil, err
	}

	if notFound {
		pool = &core.Pool{
			Asset:                asset,
			TotalSupplied:        decimal.Zero,
			TotalBorrowed:        decimal.Zero,
			LiquidityIndex:       decimal.New(1, 0),
			BorrowIndex:          decimal.New(1, 0),
			LtvRatio:             decimal.NewFromFloat(0.75),
			LiquidationThreshold: decimal.NewFromFloat(0.80),
			LiquidationBonus:     decimal.NewFromFloat(0.05),
			ReserveFactor:        decimal.NewFromFloat(0.10),
		}
		if err := s.poolStore.Create(ctx, pool); err != nil {
			return nil, err
		}
	}

	return pool, nil
}

func (s *service) CurUtilization(pool *core.Pool) decimal.Decimal {
	return xplend.UtilizationRate(pool.TotalSupplied, pool.TotalBorrowed)
}

func (s *service) CurBorrowRate(pool *core.Pool) decimal.Decimal {
	return xplend.GetBorrowRate(s.CurUtilization(pool))
}

func (s *service) CurSupplyRate(pool *core.Pool) decimal.Decimal {
	return xplend.GetSupplyRate(s.CurUtilization(pool), pool.ReserveFactor)
}
