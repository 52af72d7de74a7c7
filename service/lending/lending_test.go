package lending

import (
	"context"
	"sync"
	"testing"

	"xplend/core"
	"xplend/internal/xplend"
	"xplend/service/pool"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	engine       core.ILendingService
	pools        *fakePoolStore
	supplies     *fakeSupplyStore
	borrows      *fakeBorrowStore
	transactions *fakeTransactionStore
}

func newTestEnv() *testEnv {
	cfg := &core.Config{App: core.App{Asset: "XP"}}
	pools := newFakePoolStore()
	supplies := newFakeSupplyStore()
	borrows := newFakeBorrowStore()
	transactions := newFakeTransactionStore()

	engine := New(cfg, fakeTxer{}, pools, pool.New(pools), supplies, borrows, transactions)

	return &testEnv{
		engine:       engine,
		pools:        pools,
		supplies:     supplies,
		borrows:      borrows,
		transactions: transactions,
	}
}

func (env *testEnv) pool(t *testing.T) *core.Pool {
	p, notFound, err := env.pools.Find(context.Background(), "XP")
	require.NoError(t, err)
	require.False(t, notFound)
	return p
}

func TestSupplyCreatesPoolWithDefaults(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.engine.Supply(ctx, "alice", decimal.NewFromInt(100), "")
	require.NoError(t, err)

	p := env.pool(t)
	assert.True(t, p.LtvRatio.Equal(decimal.NewFromFloat(0.75)))
	assert.True(t, p.LiquidationThreshold.Equal(decimal.NewFromFloat(0.80)))
	assert.True(t, p.LiquidationBonus.Equal(decimal.NewFromFloat(0.05)))
	assert.True(t, p.ReserveFactor.Equal(decimal.NewFromFloat(0.10)))
	assert.True(t, p.LiquidityIndex.Equal(decimal.New(1, 0)))
	assert.True(t, p.BorrowIndex.Equal(decimal.New(1, 0)))
}

func TestSupplyInvalidAmount(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.engine.Supply(ctx, "alice", decimal.Zero, "")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = env.engine.Supply(ctx, "alice", decimal.NewFromInt(-5), "")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	records, _ := env.transactions.ListByUser(ctx, "alice", 0)
	assert.Empty(t, records, "rejected supply must not write to the ledger")
}

func TestSupplyWithdrawRoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	amount := decimal.NewFromInt(500)
	position, err := env.engine.Supply(ctx, "alice", amount, "0xabc")
	require.NoError(t, err)
	assert.True(t, position.SuppliedAmount.Equal(amount))
	assert.True(t, position.XpxBalance.Equal(amount), "xpx mints 1:1")
	assert.True(t, env.pool(t).TotalSupplied.Equal(amount))

	position, err = env.engine.Withdraw(ctx, "alice", amount)
	require.NoError(t, err)
	assert.True(t, position.SuppliedAmount.IsZero())
	assert.True(t, position.XpxBalance.IsZero())
	assert.True(t, env.pool(t).TotalSupplied.IsZero())

	records, err := env.transactions.ListByUser(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, core.TransactionTypeLendingSupply, records[0].Type)
	assert.Equal(t, "0xabc", records[0].TxHash)
	assert.Equal(t, core.TransactionTypeLendingWithdraw, records[1].Type)
}

func TestWithdrawWithoutPosition(t *testing.T) {
	env := newTestEnv()

	_, err := env.engine.Withdraw(context.Background(), "alice", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, core.ErrSupplyNotFound)
}

func TestWithdrawExceedsPrincipal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.engine.Supply(ctx, "alice", decimal.NewFromInt(100), "")
	require.NoError(t, err)

	_, err = env.engine.Withdraw(ctx, "alice", decimal.NewFromInt(101))
	assert.ErrorIs(t, err, core.ErrInsufficientBalance)
}

func TestWithdrawInsufficientLiquidity(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.engine.Supply(ctx, "alice", decimal.NewFromInt(1000), "")
	require.NoError(t, err)

	// bob pushes utilization to 900/1000, only 100 stays withdrawable
	_, err = env.engine.Borrow(ctx, "bob", decimal.NewFromInt(900), decimal.NewFromInt(1200), "XP")
	require.NoError(t, err)

	_, err = env.engine.Withdraw(ctx, "alice", decimal.NewFromInt(150))
	assert.ErrorIs(t, err, core.ErrInsufficientLiquidity, "alice's principal covers 150 but the pool cannot")

	p := env.pool(t)
	assert.True(t, p.TotalBorrowed.LessThanOrEqual(p.TotalSupplied))
}

func TestBorrowLtvExceeded(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.engine.Supply(ctx, "alice", decimal.NewFromInt(1000), "")
	require.NoError(t, err)

	_, err = env.engine.Borrow(ctx, "bob", decimal.NewFromInt(800), decimal.NewFromInt(1000), "XP")
	assert.ErrorIs(t, err, core.ErrLtvExceeded)
	assert.Contains(t, err.Error(), "750", "error should report the computed max")
	assert.True(t, env.pool(t).TotalBorrowed.IsZero(), "rejected borrow must not touch the pool")
}

func TestBorrow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.engine.Supply(ctx, "alice", decimal.NewFromInt(1000), "")
	require.NoError(t, err)

	position, err := env.engine.Borrow(ctx, "bob", decimal.NewFromInt(700), decimal.NewFromInt(1000), "")
	require.NoError(t, err)
	require.NotEmpty(t, position.ID)
	assert.Equal(t, "XP", position.CollateralAsset, "collateral asset defaults to the pool asset")
	assert.True(t, position.HealthFactor.GreaterThan(decimal.NewFromFloat(1.14)))
	assert.True(t, position.HealthFactor.LessThan(decimal.NewFromFloat(1.15)))
	assert.True(t, env.pool(t).TotalBorrowed.Equal(decimal.NewFromInt(700)))

	records, err := env.transactions.ListByUser(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, core.TransactionTypeBorrow, records[0].Type)
	assert.Contains(t, records[0].Description, "1000 XP collateral")
}

func TestBorrowZeroAmount(t *testing.T) {
	env := newTestEnv()

	_, err := env.engine.Borrow(context.Background(), "bob", decimal.Zero, decimal.NewFromInt(1000), "XP")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
}

func TestBorrowInsufficientLiquidity(t *testing.T) {
	env := newTestEnv()

	_, err := env.engine.Borrow(context.Background(), "bob", decimal.NewFromInt(10), decimal.NewFromInt(100), "XP")
	assert.ErrorIs(t, err, core.ErrInsufficientLiquidity, "empty pool has nothing to lend")
}

func TestRepayClampsToOutstandingDebt(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.engine.Supply(ctx, "alice", decimal.NewFromInt(1000), "")
	require.NoError(t, err)

	position, err := env.engine.Borrow(ctx, "bob", decimal.NewFromInt(500), decimal.NewFromInt(1000), "XP")
	require.NoError(t, err)

	position, err = env.engine.Repay(ctx, "bob", position.ID, decimal.NewFromInt(600))
	require.NoError(t, err)
	assert.True(t, position.BorrowedAmount.IsZero(), "over-repayment is clamped, not rejected")
	assert.True(t, position.HealthFactor.Equal(xplend.MaxHealthFactor), "zero debt hits the sentinel")
	assert.True(t, env.pool(t).TotalBorrowed.IsZero())

	records, err := env.transactions.ListByUser(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	repaid := records[1]
	assert.Equal(t, core.TransactionTypeRepay, repaid.Type)
	assert.True(t, repaid.Amount.Equal(decimal.NewFromInt(500)), "ledger records the clamped amount, got %s", repaid.Amount)

	// the fully repaid position stays queryable
	positions, err := env.engine.Positions(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, positions.Borrows, 1)
	assert.True(t, positions.Borrows[0].BorrowedAmount.IsZero())
}

func TestRepayUnknownPosition(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.engine.Repay(ctx, "bob", "no-such-position", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, core.ErrBorrowNotFound)
}

func TestRepayForeignPosition(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.engine.Supply(ctx, "alice", decimal.NewFromInt(1000), "")
	require.NoError(t, err)

	position, err := env.engine.Borrow(ctx, "bob", decimal.NewFromInt(100), decimal.NewFromInt(200), "XP")
	require.NoError(t, err)

	_, err = env.engine.Repay(ctx, "mallory", position.ID, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, core.ErrBorrowNotFound)
}

func TestConcurrentSupply(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := env.engine.Supply(ctx, "alice", decimal.NewFromInt(100), "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.True(t, env.pool(t).TotalSupplied.Equal(decimal.NewFromInt(200)), "lost update: got %s", env.pool(t).TotalSupplied)
}

func TestPoolInvariantAfterMixedSequence(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.engine.Supply(ctx, "alice", decimal.NewFromInt(1000), "")
	require.NoError(t, err)

	b1, err := env.engine.Borrow(ctx, "bob", decimal.NewFromInt(300), decimal.NewFromInt(500), "XP")
	require.NoError(t, err)

	_, err = env.engine.Withdraw(ctx, "alice", decimal.NewFromInt(200))
	require.NoError(t, err)

	_, err = env.engine.Repay(ctx, "bob", b1.ID, decimal.NewFromInt(100))
	require.NoError(t, err)

	_, err = env.engine.Supply(ctx, "carol", decimal.NewFromInt(50), "")
	require.NoError(t, err)

	p := env.pool(t)
	assert.True(t, p.TotalBorrowed.LessThanOrEqual(p.TotalSupplied))
	assert.True(t, p.TotalSupplied.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, p.TotalBorrowed.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, p.TotalSupplied.Equal(decimal.NewFromInt(850)))
	assert.True(t, p.TotalBorrowed.Equal(decimal.NewFromInt(200)))
}
