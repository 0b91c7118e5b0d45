package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service is the single authoritative entry point for balance mutations.
// Every approval path (manager, HR, admin) goes through it; callers must
// invoke it inside the same transaction as the request status transition so
// the ledger adjustment applies exactly once.
type Service interface {
	// ReserveLeave deducts days from the user's annual balance. A missing
	// balance row is created lazily with the configured default allotment;
	// a first request exceeding the allotment fails ErrInsufficientBalance
	// rather than opening the ledger negative.
	ReserveLeave(ctx context.Context, userID string, days int) (LeaveBalance, error)

	// ReserveDeduction increases the user's deduction total by amount,
	// failing ErrInsufficientFunds when salary - deductions < amount.
	ReserveDeduction(ctx context.Context, userID string, amount decimal.Decimal) error

	// Balances lists the user's ledger rows.
	Balances(ctx context.Context, userID string) ([]LeaveBalance, error)
}
