package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// TransactionType ledger record type
type TransactionType string

const (
	// TransactionTypeLendingSupply supply to lending pool
	TransactionTypeLendingSupply TransactionType = "LENDING_SUPPLY"
	// TransactionTypeLendingWithdraw withdraw from lending pool
	TransactionTypeLendingWithdraw TransactionType = "LENDING_WITHDRAW"
	// TransactionTypeBorrow borrow against collateral
	TransactionTypeBorrow TransactionType = "BORROW"
	// TransactionTypeRepay repay a borrow position
	TransactionTypeRepay TransactionType = "REPAY"
)

// Transaction ledger record, one per mutating lending operation
type Transaction struct {
	ID          uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID      string          `sql:"size:36;index:idx_transactions_user_id" json:"user_id"`
	Type        TransactionType `sql:"size:20" json:"type"`
	Amount      decimal.Decimal `sql:"type:decimal(36,18)" json:"amount"`
	Currency    string          `sql:"size:10" json:"currency"`
	TxHash      string          `sql:"size:66" json:"tx_hash,omitempty"`
	Description string          `sql:"size:255" json:"description,omitempty"`
	Data        types.JSONText  `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at"`
}

// TransactionExtraData extra data attached to a ledger record
type TransactionExtraData map[string]interface{}

// Put put data
func (t TransactionExtraData) Put(key string, value interface{}) {
	t[key] = value
}

// Format format as []byte
func (t TransactionExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// SetExtraData attach extra data
func (t *Transaction) SetExtraData(extra TransactionExtraData) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// TransactionStore transaction store interface
type TransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*Transaction, error)
}
