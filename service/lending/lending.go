package lending

import (
	"context"
	"fmt"

	"xplend/core"
	"xplend/internal/xplend"
	"xplend/pkg/concurrency"
	"xplend/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Txer runs fn inside one database transaction; *db.DB satisfies it.
// The engine writes every state mutation and its ledger record through
// one Tx call so a failed ledger write rolls the mutation back.
type Txer interface {
	Tx(fn func(tx *db.DB) error) error
}

type lendingService struct {
	config           *core.Config
	db               Txer
	poolStore        core.IPoolStore
	poolService      core.IPoolService
	supplyStore      core.ISupplyStore
	borrowStore      core.IBorrowStore
	transactionStore core.TransactionStore
	locks            *concurrency.KeyedLock
}

// New new lending service
func New(cfg *core.Config,
	db Txer,
	poolStore core.IPoolStore,
	poolService core.IPoolService,
	supplyStore core.ISupplyStore,
	borrowStore core.IBorrowStore,
	transactionStore core.TransactionStore) core.ILendingService {
	return &lendingService{
		config:           cfg,
		db:               db,
		poolStore:        poolStore,
		poolService:      poolService,
		supplyStore:      supplyStore,
		borrowStore:      borrowStore,
		transactionStore: transactionStore,
		locks:            concurrency.NewKeyedLock(),
	}
}

// Supply deposits amount into the pool and mints xpx 1:1.
//
// Upserts the user's supply position; a fresh position snapshots the
// pool liquidity index as its entry index.
func (s *lendingService) Supply(ctx context.Context, userID string, amount decimal.Decimal, txHash string) (*core.Supply, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrInvalidAmount
	}

	asset := s.config.PoolAsset()
	unlock := s.locks.Lock(asset)
	defer unlock()

	pool, err := s.poolService.Get(ctx, asset)
	if err != nil {
		return nil, err
	}

	position, notFound, err := s.supplyStore.Find(ctx, userID, asset)
	if err != nil {
		return nil, err
	}

	err = s.db.Tx(func(tx *db.DB) error {
		if notFound {
			position = &core.Supply{
				UserID:         userID,
				Asset:          asset,
				SuppliedAmount: amount,
				XpxBalance:     amount,
				EntryIndex:     pool.LiquidityIndex,
			}
			if err := s.supplyStore.Create(ctx, tx, position); err != nil {
				return err
			}
		} else {
			position.SuppliedAmount = position.SuppliedAmount.Add(amount)
			position.XpxBalance = position.XpxBalance.Add(amount)
			if err := s.supplyStore.Update(ctx, tx, position); err != nil {
				return err
			}
		}

		pool.TotalSupplied = pool.TotalSupplied.Add(amount)
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			return err
		}

		return s.transactionStore.Create(ctx, tx, &core.Transaction{
			UserID:      userID,
			Type:        core.TransactionTypeLendingSupply,
			Amount:      amount,
			Currency:    asset,
			TxHash:      txHash,
			Description: fmt.Sprintf("Supplied %s to lending pool", asset),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("service", "lending").
		Debugf("user %s supplied %s %s", userID, amount, asset)

	return position, nil
}

// Withdraw redeems amount of supplied principal and burns xpx 1:1.
//
// Rejected if it exceeds the user's principal or the pool's available
// liquidity, so TotalBorrowed can never climb above TotalSupplied.
func (s *lendingService) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*core.Supply, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrInvalidAmount
	}

	asset := s.config.PoolAsset()
	unlock := s.locks.Lock(asset)
	defer unlock()

	pool, err := s.poolService.Get(ctx, asset)
	if err != nil {
		return nil, err
	}

	position, notFound, err := s.supplyStore.Find(ctx, userID, asset)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, core.ErrSupplyNotFound
	}

	if amount.GreaterThan(position.SuppliedAmount) {
		return nil, core.ErrInsufficientBalance
	}

	if amount.GreaterThan(pool.AvailableLiquidity()) {
		return nil, core.ErrInsufficientLiquidity
	}

	err = s.db.Tx(func(tx *db.DB) error {
		position.SuppliedAmount = position.SuppliedAmount.Sub(amount)
		position.XpxBalance = position.XpxBalance.Sub(amount)
		if err := s.supplyStore.Update(ctx, tx, position); err != nil {
			return err
		}

		pool.TotalSupplied = pool.TotalSupplied.Sub(amount)
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			return err
		}

		return s.transactionStore.Create(ctx, tx, &core.Transaction{
			UserID:      userID,
			Type:        core.TransactionTypeLendingWithdraw,
			Amount:      amount,
			Currency:    asset,
			Description: fmt.Sprintf("Withdrew %s from lending pool", asset),
		})
	})
	if err != nil {
		return nil, err
	}

	return position, nil
}

// Borrow opens a new borrow position against posted collateral.
//
// The amount is capped by collateral * ltv and by the pool's available
// liquidity. Each borrow creates its own position row.
func (s *lendingService) Borrow(ctx context.Context, userID string, borrowAmount, collateralAmount decimal.Decimal, collateralAsset string) (*core.Borrow, error) {
	if borrowAmount.LessThanOrEqual(decimal.Zero) || collateralAmount.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrInvalidAmount
	}

	asset := s.config.PoolAsset()
	if collateralAsset == "" {
		collateralAsset = asset
	}

	unlock := s.locks.Lock(asset)
	defer unlock()

	pool, err := s.poolService.Get(ctx, asset)
	if err != nil {
		return nil, err
	}

	maxBorrow := xplend.MaxBorrow(collateralAmount, pool.LtvRatio)
	if borrowAmount.GreaterThan(maxBorrow) {
		return nil, fmt.Errorf("%w: max %s", core.ErrLtvExceeded, maxBorrow)
	}

	if borrowAmount.GreaterThan(pool.AvailableLiquidity()) {
		return nil, core.ErrInsufficientLiquidity
	}

	position := &core.Borrow{
		ID:               id.GenTraceID(),
		UserID:           userID,
		Asset:            asset,
		BorrowedAmount:   borrowAmount,
		CollateralAmount: collateralAmount,
		CollateralAsset:  collateralAsset,
		EntryIndex:       pool.BorrowIndex,
		HealthFactor:     xplend.GetHealthFactor(collateralAmount, borrowAmount, pool.LiquidationThreshold),
	}

	err = s.db.Tx(func(tx *db.DB) error {
		if err := s.borrowStore.Create(ctx, tx, position); err != nil {
			return err
		}

		pool.TotalBorrowed = pool.TotalBorrowed.Add(borrowAmount)
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			return err
		}

		transaction := &core.Transaction{
			UserID:      userID,
			Type:        core.TransactionTypeBorrow,
			Amount:      borrowAmount,
			Currency:    asset,
			Description: fmt.Sprintf("Borrowed %s with %s %s collateral", asset, collateralAmount, collateralAsset),
		}

		extra := make(core.TransactionExtraData)
		extra.Put("collateral_amount", collateralAmount)
		extra.Put("collateral_asset", collateralAsset)
		transaction.SetExtraData(extra)

		return s.transactionStore.Create(ctx, tx, transaction)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("service", "lending").
		Debugf("user %s borrowed %s %s against %s %s", userID, borrowAmount, asset, collateralAmount, collateralAsset)

	return position, nil
}

// Repay pays down a borrow position.
//
// Over-repayment is clamped to the outstanding debt: the ledger records
// the clamped amount and neither the position nor the pool total can go
// negative.
func (s *lendingService) Repay(ctx context.Context, userID, positionID string, amount decimal.Decimal) (*core.Borrow, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrInvalidAmount
	}

	asset := s.config.PoolAsset()
	unlock := s.locks.Lock(asset)
	defer unlock()

	position, notFound, err := s.borrowStore.Find(ctx, userID, positionID)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, core.ErrBorrowNotFound
	}

	pool, err := s.poolService.Get(ctx, asset)
	if err != nil {
		return nil, err
	}

	repayAmount := decimal.Min(amount, position.BorrowedAmount)

	err = s.db.Tx(func(tx *db.DB) error {
		position.BorrowedAmount = position.BorrowedAmount.Sub(repayAmount)
		position.HealthFactor = xplend.GetHealthFactor(position.CollateralAmount, position.BorrowedAmount, pool.LiquidationThreshold)
		if err := s.borrowStore.Update(ctx, tx, position); err != nil {
			return err
		}

		pool.TotalBorrowed = pool.TotalBorrowed.Sub(repayAmount)
		if pool.TotalBorrowed.LessThan(decimal.Zero) {
			pool.TotalBorrowed = decimal.Zero
		}
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			return err
		}

		return s.transactionStore.Create(ctx, tx, &core.Transaction{
			UserID:      userID,
			Type:        core.TransactionTypeRepay,
			Amount:      repayAmount,
			Currency:    asset,
			Description: fmt.Sprintf("Repaid %s loan", asset),
		})
	})
	if err != nil {
		return nil, err
	}

	return position, nil
}

func (s *lendingService) Positions(ctx context.Context, userID string) (*core.UserPositions, error) {
	supplies, err := s.supplyStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	borrows, err := s.borrowStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &core.UserPositions{
		Supplies: supplies,
		Borrows:  borrows,
	}, nil
}
