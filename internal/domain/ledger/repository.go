package ledger

import "context"

type LeaveBalanceRepository interface {
	// GetByUserAndType retrieves the balance row, locking it when called
	// inside a transaction. Returns ErrBalanceNotFound when the user has no
	// row yet (lazy creation is the service's job).
	GetByUserAndType(ctx context.Context, userID, leaveType string) (LeaveBalance, error)

	Create(ctx context.Context, b LeaveBalance) (LeaveBalance, error)

	// Decrement subtracts days from remaining in a single guarded statement:
	// zero rows affected means the balance was insufficient and nothing
	// changed, reported as ErrInsufficientBalance.
	Decrement(ctx context.Context, id string, days int) error

	GetByUser(ctx context.Context, userID string) ([]LeaveBalance, error)
}
