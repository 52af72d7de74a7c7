package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Supply user supply position, unique per user + pool asset.
// Amount may reach 0 but the row persists.
type Supply struct {
	ID             uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID         string          `sql:"size:36;unique_index:user_asset_idx" json:"user_id"`
	Asset          string          `sql:"size:10;unique_index:user_asset_idx" json:"asset"`
	SuppliedAmount decimal.Decimal `sql:"type:decimal(36,18)" json:"supplied_amount"`
	// xpx 凭证余额，按 1:1 铸造
	XpxBalance decimal.Decimal `sql:"type:decimal(36,18)" json:"xpx_balance"`
	// 开仓时池子的 liquidity index 快照
	EntryIndex decimal.Decimal `sql:"type:decimal(36,27);default:1" json:"entry_index"`
	Version    int64           `sql:"default:0" json:"version"`
	CreatedAt  time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ISupplyStore supply store interface
type ISupplyStore interface {
	Create(ctx context.Context, tx *db.DB, supply *Supply) error
	Find(ctx context.Context, userID, asset string) (*Supply, bool, error)
	FindByUser(ctx context.Context, userID string) ([]*Supply, error)
	Update(ctx context.Context, tx *db.DB, supply *Supply) error
	CountOfSuppliers(ctx context.Context, asset string) (int64, error)
}
