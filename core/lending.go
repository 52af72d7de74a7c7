package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// UserPositions all lending positions of one user
type UserPositions struct {
	Supplies []*Supply `json:"supplies"`
	Borrows  []*Borrow `json:"borrows"`
}

// ILendingService lending pool engine interface.
//
// All mutating operations are serialized per pool asset and run their
// state change and ledger write in one database transaction. Validation
// failures short-circuit before any write.
type ILendingService interface {
	Supply(ctx context.Context, userID string, amount decimal.Decimal, txHash string) (*Supply, error)
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*Supply, error)
	Borrow(ctx context.Context, userID string, borrowAmount, collateralAmount decimal.Decimal, collateralAsset string) (*Borrow, error)
	Repay(ctx context.Context, userID, positionID string, amount decimal.Decimal) (*Borrow, error)
	Positions(ctx context.Context, userID string) (*UserPositions, error)
}
