package core

import "errors"

var (
	// ErrInvalidAmount amount is zero or negative
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrPoolNotFound pool not found
	ErrPoolNotFound = errors.New("pool not found")
	// ErrSupplyNotFound no supply position found
	ErrSupplyNotFound = errors.New("no supply position found")
	// ErrBorrowNotFound borrow position not found
	ErrBorrowNotFound = errors.New("borrow position not found")
	// ErrInsufficientBalance withdraw exceeds supplied principal
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInsufficientLiquidity pool cannot cover the outflow
	ErrInsufficientLiquidity = errors.New("insufficient pool liquidity")
	// ErrLtvExceeded borrow exceeds the collateral-derived limit
	ErrLtvExceeded = errors.New("borrow amount exceeds ltv limit")
)
