package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wforce/workforce-backend-go/internal/domain/ledger"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
)

type LedgerServiceImpl struct {
	ledger.LeaveBalanceRepository
	user.UserRepository
	defaultAllotment int
}

func NewLedgerService(
	balanceRepo ledger.LeaveBalanceRepository,
	userRepo user.UserRepository,
	defaultAllotment int,
) ledger.Service {
	return &LedgerServiceImpl{
		LeaveBalanceRepository: balanceRepo,
		UserRepository:         userRepo,
		defaultAllotment:       defaultAllotment,
	}
}

// ReserveLeave implements ledger.Service. Balance rows are created lazily on
// first use with the configured allotment; the guarded decrement in storage
// is what actually enforces 0 <= remaining <= total.
func (l *LedgerServiceImpl) ReserveLeave(ctx context.Context, userID string, days int) (ledger.LeaveBalance, error) {
	if days <= 0 {
		return ledger.LeaveBalance{}, fmt.Errorf("leave days must be positive, got %d", days)
	}

	balance, err := l.LeaveBalanceRepository.GetByUserAndType(ctx, userID, ledger.LeaveTypeAnnual)
	if err == ledger.ErrBalanceNotFound {
		balance, err = l.LeaveBalanceRepository.Create(ctx, ledger.LeaveBalance{
			UserID:    userID,
			LeaveType: ledger.LeaveTypeAnnual,
			Total:     l.defaultAllotment,
			Remaining: l.defaultAllotment,
		})
	}
	if err != nil {
		return ledger.LeaveBalance{}, fmt.Errorf("failed to load leave balance: %w", err)
	}

	if err := l.LeaveBalanceRepository.Decrement(ctx, balance.ID, days); err != nil {
		return ledger.LeaveBalance{}, err
	}

	balance.Remaining -= days
	return balance, nil
}

// ReserveDeduction implements ledger.Service. The deduction total lives on
// the user row; the guard keeps it within salary.
func (l *LedgerServiceImpl) ReserveDeduction(ctx context.Context, userID string, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("deduction amount must be positive, got %s", amount)
	}
	return l.UserRepository.AddDeduction(ctx, userID, amount)
}

// Balances implements ledger.Service.
func (l *LedgerServiceImpl) Balances(ctx context.Context, userID string) ([]ledger.LeaveBalance, error) {
	return l.LeaveBalanceRepository.GetByUser(ctx, userID)
}
