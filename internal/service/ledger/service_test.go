package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wforce/workforce-backend-go/internal/domain/ledger"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
)

// fakeBalanceRepo mimics the guarded-update semantics of the storage layer.
type fakeBalanceRepo struct {
	byID   map[string]*ledger.LeaveBalance
	nextID int
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{byID: make(map[string]*ledger.LeaveBalance)}
}

func (f *fakeBalanceRepo) GetByUserAndType(ctx context.Context, userID, leaveType string) (ledger.LeaveBalance, error) {
	for _, b := range f.byID {
		if b.UserID == userID && b.LeaveType == leaveType {
			return *b, nil
		}
	}
	return ledger.LeaveBalance{}, ledger.ErrBalanceNotFound
}

func (f *fakeBalanceRepo) Create(ctx context.Context, b ledger.LeaveBalance) (ledger.LeaveBalance, error) {
	f.nextID++
	b.ID = fmt.Sprintf("balance-%d", f.nextID)
	b.UpdatedAt = time.Now()
	f.byID[b.ID] = &b
	return b, nil
}

func (f *fakeBalanceRepo) Decrement(ctx context.Context, id string, days int) error {
	b, ok := f.byID[id]
	if !ok || b.Remaining < days {
		return ledger.ErrInsufficientBalance
	}
	b.Remaining -= days
	return nil
}

func (f *fakeBalanceRepo) GetByUser(ctx context.Context, userID string) ([]ledger.LeaveBalance, error) {
	var out []ledger.LeaveBalance
	for _, b := range f.byID {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

// fakeUserRepo overrides only what the ledger touches.
type fakeUserRepo struct {
	user.UserRepository
	salary     map[string]decimal.Decimal
	deductions map[string]decimal.Decimal
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		salary:     make(map[string]decimal.Decimal),
		deductions: make(map[string]decimal.Decimal),
	}
}

func (f *fakeUserRepo) AddDeduction(ctx context.Context, userID string, amount decimal.Decimal) error {
	salary, ok := f.salary[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	remaining := salary.Sub(f.deductions[userID])
	if remaining.LessThan(amount) {
		return ledger.ErrInsufficientFunds
	}
	f.deductions[userID] = f.deductions[userID].Add(amount)
	return nil
}

func TestReserveLeave_LazyCreatesBalance(t *testing.T) {
	balances := newFakeBalanceRepo()
	svc := NewLedgerService(balances, newFakeUserRepo(), 21)

	balance, err := svc.ReserveLeave(context.Background(), "user-1", 5)
	require.NoError(t, err)

	assert.Equal(t, 21, balance.Total)
	assert.Equal(t, 16, balance.Remaining)

	stored, err := balances.GetByUserAndType(context.Background(), "user-1", ledger.LeaveTypeAnnual)
	require.NoError(t, err)
	assert.Equal(t, 16, stored.Remaining)
}

func TestReserveLeave_ReusesExistingBalance(t *testing.T) {
	balances := newFakeBalanceRepo()
	svc := NewLedgerService(balances, newFakeUserRepo(), 21)

	_, err := svc.ReserveLeave(context.Background(), "user-1", 5)
	require.NoError(t, err)

	balance, err := svc.ReserveLeave(context.Background(), "user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 13, balance.Remaining)

	// Only one row per (user, type)
	all, err := balances.GetByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestReserveLeave_InsufficientBalance(t *testing.T) {
	balances := newFakeBalanceRepo()
	svc := NewLedgerService(balances, newFakeUserRepo(), 21)

	_, err := svc.ReserveLeave(context.Background(), "user-1", 20)
	require.NoError(t, err)

	_, err = svc.ReserveLeave(context.Background(), "user-1", 2)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	// Nothing was deducted by the failed reservation
	stored, err := balances.GetByUserAndType(context.Background(), "user-1", ledger.LeaveTypeAnnual)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Remaining)
}

func TestReserveLeave_FirstRequestExceedsAllotment(t *testing.T) {
	balances := newFakeBalanceRepo()
	svc := NewLedgerService(balances, newFakeUserRepo(), 21)

	_, err := svc.ReserveLeave(context.Background(), "user-1", 25)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
}

func TestReserveLeave_RejectsNonPositiveDays(t *testing.T) {
	svc := NewLedgerService(newFakeBalanceRepo(), newFakeUserRepo(), 21)

	_, err := svc.ReserveLeave(context.Background(), "user-1", 0)
	assert.Error(t, err)
	_, err = svc.ReserveLeave(context.Background(), "user-1", -3)
	assert.Error(t, err)
}

func TestReserveDeduction(t *testing.T) {
	users := newFakeUserRepo()
	users.salary["user-1"] = decimal.RequireFromString("3000")
	svc := NewLedgerService(newFakeBalanceRepo(), users, 21)

	err := svc.ReserveDeduction(context.Background(), "user-1", decimal.RequireFromString("500"))
	require.NoError(t, err)
	assert.True(t, users.deductions["user-1"].Equal(decimal.RequireFromString("500")))
}

func TestReserveDeduction_ExceedsNetSalary(t *testing.T) {
	users := newFakeUserRepo()
	users.salary["user-1"] = decimal.RequireFromString("3000")
	svc := NewLedgerService(newFakeBalanceRepo(), users, 21)

	require.NoError(t, svc.ReserveDeduction(context.Background(), "user-1", decimal.RequireFromString("500")))

	// 3000 left against a 2500 net salary
	err := svc.ReserveDeduction(context.Background(), "user-1", decimal.RequireFromString("3000"))
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	// The failed reservation changed nothing
	assert.True(t, users.deductions["user-1"].Equal(decimal.RequireFromString("500")))
}

func TestReserveDeduction_UnknownUser(t *testing.T) {
	svc := NewLedgerService(newFakeBalanceRepo(), newFakeUserRepo(), 21)

	err := svc.ReserveDeduction(context.Background(), "ghost", decimal.RequireFromString("500"))
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.NotErrorIs(t, err, ledger.ErrInsufficientFunds)
}

func TestReserveDeduction_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewLedgerService(newFakeBalanceRepo(), newFakeUserRepo(), 21)

	assert.Error(t, svc.ReserveDeduction(context.Background(), "user-1", decimal.Zero))
	assert.Error(t, svc.ReserveDeduction(context.Background(), "user-1", decimal.RequireFromString("-10")))
}
