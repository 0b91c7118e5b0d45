package ledger

import "errors"

// Ledger domain errors
var (
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrInsufficientFunds   = errors.New("insufficient remaining salary for this advance")
	ErrBalanceNotFound     = errors.New("leave balance not found")
)
