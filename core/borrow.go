package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Borrow user borrow position, one row per borrow event.
// A fully repaid position keeps BorrowedAmount = 0 and stays queryable.
type Borrow struct {
	ID               string          `sql:"size:36;PRIMARY_KEY" json:"id"`
	UserID           string          `sql:"size:36;index:idx_borrows_user_id" json:"user_id"`
	Asset            string          `sql:"size:10" json:"asset"`
	BorrowedAmount   decimal.Decimal `sql:"type:decimal(36,18)" json:"borrowed_amount"`
	CollateralAmount decimal.Decimal `sql:"type:decimal(36,18)" json:"collateral_amount"`
	CollateralAsset  string          `sql:"size:10" json:"collateral_asset"`
	// 开仓时池子的 borrow index 快照
	EntryIndex decimal.Decimal `sql:"type:decimal(36,27);default:1" json:"entry_index"`
	// Cached at write time, recomputed only on borrow/repay. Goes
	// stale between writes if collateral turns price-volatile.
	HealthFactor decimal.Decimal `sql:"type:decimal(10,4)" json:"health_factor"`
	Version      int64           `sql:"default:0" json:"version"`
	CreatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IBorrowStore borrow store interface
type IBorrowStore interface {
	Create(ctx context.Context, tx *db.DB, borrow *Borrow) error
	Find(ctx context.Context, userID, id string) (*Borrow, bool, error)
	FindByUser(ctx context.Context, userID string) ([]*Borrow, error)
	Update(ctx context.Context, tx *db.DB, borrow *Borrow) error
	CountOfBorrowers(ctx context.Context, asset string) (int64, error)
}
