package lending

import (
	"context"
	"sync"

	"xplend/core"

	"github.com/fox-one/pkg/store/db"
)

// in-memory fakes backing the engine tests. Find hands out copies so
// concurrent readers mutate private rows, the same way gorm scans into
// fresh structs.

type fakeTxer struct{}

func (fakeTxer) Tx(fn func(tx *db.DB) error) error {
	return fn(nil)
}

type fakePoolStore struct {
	mu    sync.Mutex
	pools map[string]*core.Pool
}

func newFakePoolStore() *fakePoolStore {
	return &fakePoolStore{pools: make(map[string]*core.Pool)}
}

func (s *fakePoolStore) Create(ctx context.Context, pool *core.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.pools[pool.Asset]; ok {
		*pool = *existing
		return nil
	}

	c := *pool
	s.pools[pool.Asset] = &c
	return nil
}

func (s *fakePoolStore) Find(ctx context.Context, asset string) (*core.Pool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[asset]
	if !ok {
		return nil, true, nil
	}

	c := *pool
	return &c, false, nil
}

func (s *fakePoolStore) All(ctx context.Context) ([]*core.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pools []*core.Pool
	for _, pool := range s.pools {
		c := *pool
		pools = append(pools, &c)
	}

	return pools, nil
}

func (s *fakePoolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool.Version++
	c := *pool
	s.pools[pool.Asset] = &c
	return nil
}

type supplyKey struct {
	userID string
	asset  string
}

type fakeSupplyStore struct {
	mu       sync.Mutex
	supplies map[supplyKey]*core.Supply
}

func newFakeSupplyStore() *fakeSupplyStore {
	return &fakeSupplyStore{supplies: make(map[supplyKey]*core.Supply)}
}

func (s *fakeSupplyStore) Create(ctx context.Context, tx *db.DB, supply *core.Supply) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := supplyKey{supply.UserID, supply.Asset}
	if existing, ok := s.supplies[key]; ok {
		*supply = *existing
		return nil
	}

	c := *supply
	s.supplies[key] = &c
	return nil
}

func (s *fakeSupplyStore) Find(ctx context.Context, userID, asset string) (*core.Supply, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	supply, ok := s.supplies[supplyKey{userID, asset}]
	if !ok {
		return nil, true, nil
	}

	c := *supply
	return &c, false, nil
}

func (s *fakeSupplyStore) FindByUser(ctx context.Context, userID string) ([]*core.Supply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var supplies []*core.Supply
	for key, supply := range s.supplies {
		if key.userID == userID {
			c := *supply
			supplies = append(supplies, &c)
		}
	}

	return supplies, nil
}

func (s *fakeSupplyStore) Update(ctx context.Context, tx *db.DB, supply *core.Supply) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	supply.Version++
	c := *supply
	s.supplies[supplyKey{supply.UserID, supply.Asset}] = &c
	return nil
}

func (s *fakeSupplyStore) CountOfSuppliers(ctx context.Context, asset string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for key := range s.supplies {
		if key.asset == asset {
			count++
		}
	}

	return count, nil
}

type fakeBorrowStore struct {
	mu      sync.Mutex
	borrows map[string]*core.Borrow
}

func newFakeBorrowStore() *fakeBorrowStore {
	return &fakeBorrowStore{borrows: make(map[string]*core.Borrow)}
}

func (s *fakeBorrowStore) Create(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *borrow
	s.borrows[borrow.ID] = &c
	return nil
}

func (s *fakeBorrowStore) Find(ctx context.Context, userID, id string) (*core.Borrow, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	borrow, ok := s.borrows[id]
	if !ok || borrow.UserID != userID {
		return nil, true, nil
	}

	c := *borrow
	return &c, false, nil
}

func (s *fakeBorrowStore) FindByUser(ctx context.Context, userID string) ([]*core.Borrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var borrows []*core.Borrow
	for _, borrow := range s.borrows {
		if borrow.UserID == userID {
			c := *borrow
			borrows = append(borrows, &c)
		}
	}

	return borrows, nil
}

func (s *fakeBorrowStore) Update(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	borrow.Version++
	c := *borrow
	s.borrows[borrow.ID] = &c
	return nil
}

func (s *fakeBorrowStore) CountOfBorrowers(ctx context.Context, asset string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make(map[string]struct{})
	for _, borrow := range s.borrows {
		if borrow.Asset == asset {
			users[borrow.UserID] = struct{}{}
		}
	}

	return int64(len(users)), nil
}

type fakeTransactionStore struct {
	mu           sync.Mutex
	transactions []*core.Transaction
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{}
}

func (s *fakeTransactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *transaction
	s.transactions = append(s.transactions, &c)
	return nil
}

func (s *fakeTransactionStore) ListByUser(ctx context.Context, userID string, limit int) ([]*core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var transactions []*core.Transaction
	for _, transaction := range s.transactions {
		if transaction.UserID == userID {
			c := *transaction
			transactions = append(transactions, &c)
		}
		if limit > 0 && len(transactions) >= limit {
			break
		}
	}

	return transactions, nil
}
