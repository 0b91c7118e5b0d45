package request

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wforce/workforce-backend-go/internal/domain/ledger"
	"github.com/wforce/workforce-backend-go/internal/domain/request"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
	ledgerService "github.com/wforce/workforce-backend-go/internal/service/ledger"
)

// passTxManager runs fn directly; the fakes below enforce the same guarded
// semantics the SQL layer would inside a real transaction.
type passTxManager struct{}

func (passTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	user.UserRepository
	users      map[string]user.User
	deductions map[string]decimal.Decimal
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:      make(map[string]user.User),
		deductions: make(map[string]decimal.Decimal),
	}
}

func (f *fakeUserRepo) add(id string, role user.Role, departmentID *string, salary string) {
	f.users[id] = user.User{
		ID:           id,
		Name:         id,
		Role:         role,
		DepartmentID: departmentID,
		Salary:       decimal.RequireFromString(salary),
		IsActive:     true,
	}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.Deductions = f.deductions[id]
	return u, nil
}

func (f *fakeUserRepo) AddDeduction(ctx context.Context, userID string, amount decimal.Decimal) error {
	u, ok := f.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	if u.Salary.Sub(f.deductions[userID]).LessThan(amount) {
		return ledger.ErrInsufficientFunds
	}
	f.deductions[userID] = f.deductions[userID].Add(amount)
	return nil
}

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

type fakeRequestRepo struct {
	byID   map[string]*request.Request
	users  *fakeUserRepo
	nextID int
}

func newFakeRequestRepo(users *fakeUserRepo) *fakeRequestRepo {
	return &fakeRequestRepo{byID: make(map[string]*request.Request), users: users}
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *request.Request) (string, error) {
	f.nextID++
	req.ID = fmt.Sprintf("request-%d", f.nextID)
	req.Status = request.StatusPending
	req.SubmittedAt = time.Now()
	stored := *req
	f.byID[req.ID] = &stored
	return req.ID, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*request.Request, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, request.ErrRequestNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*request.Request, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRequestRepo) ListByUser(ctx context.Context, userID string) ([]request.Request, error) {
	var out []request.Request
	for _, r := range f.byID {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListPending(ctx context.Context, t request.Type, departmentID *string) ([]request.Request, error) {
	var out []request.Request
	for _, r := range f.byID {
		if r.Status != request.StatusPending || r.Type != t {
			continue
		}
		if departmentID != nil {
			u, err := f.users.GetByID(ctx, r.UserID)
			if err != nil || u.DepartmentID == nil || *u.DepartmentID != *departmentID {
				continue
			}
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRequestRepo) ListAll(ctx context.Context) ([]request.Request, error) {
	var out []request.Request
	for _, r := range f.byID {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRequestRepo) MarkResolved(ctx context.Context, id string, status request.Status, resolvedBy string, resolvedByRole user.Role, rejectionReason *string) error {
	r, ok := f.byID[id]
	if !ok || r.Status != request.StatusPending {
		return request.ErrAlreadyResolved
	}
	r.Status = status
	r.ResolvedBy = &resolvedBy
	r.ResolvedByRole = &resolvedByRole
	r.RejectionReason = rejectionReason
	return nil
}

var testJWTAuth = jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)

func actorCtx(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	tok, _, err := testJWTAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    string(role),
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fixture struct {
	users    *fakeUserRepo
	balances *fakeBalanceRepo
	requests *fakeRequestRepo
	svc      request.RequestService
}

func newFixture() *fixture {
	users := newFakeUserRepo()
	balances := newFakeBalanceRepo()
	requests := newFakeRequestRepo(users)
	ledgerSvc := ledgerService.NewLedgerService(balances, users, 21)
	svc := NewRequestService(passTxManager{}, requests, users, ledgerSvc)
	return &fixture{users: users, balances: balances, requests: requests, svc: svc}
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestSubmit_Leave(t *testing.T) {
	f := newFixture()
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")

	resp, err := f.svc.Submit(actorCtx(t, "emp-1", user.RoleEmployee), request.SubmitRequest{
		Type:   request.TypeLeave,
		Amount: decPtr("5"),
	})
	require.NoError(t, err)

	assert.Equal(t, request.StatusPending, resp.Status)
	assert.Equal(t, "emp-1", resp.UserID)
}

func TestSubmit_AdvanceWithoutAmount(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(actorCtx(t, "emp-1", user.RoleEmployee), request.SubmitRequest{
		Type: request.TypeAdvance,
	})
	assert.ErrorIs(t, err, request.ErrAmountRequired)
}

func TestSubmit_Unauthenticated(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), request.SubmitRequest{Type: request.TypeLeave})
	assert.ErrorIs(t, err, user.ErrUnauthenticated)
}

func submitLeave(t *testing.T, f *fixture, userID, days string) string {
	t.Helper()
	resp, err := f.svc.Submit(actorCtx(t, userID, user.RoleEmployee), request.SubmitRequest{
		Type:   request.TypeLeave,
		Amount: decPtr(days),
	})
	require.NoError(t, err)
	return resp.ID
}

func submitAdvance(t *testing.T, f *fixture, userID, amount string) string {
	t.Helper()
	resp, err := f.svc.Submit(actorCtx(t, userID, user.RoleEmployee), request.SubmitRequest{
		Type:   request.TypeAdvance,
		Amount: decPtr(amount),
	})
	require.NoError(t, err)
	return resp.ID
}

func TestResolve_ApproveLeaveByManager(t *testing.T) {
	f := newFixture()
	f.users.add("mgr-1", user.RoleDepartmentManager, strPtr("dept-1"), "5000")
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")
	id := submitLeave(t, f, "emp-1", "5")

	resp, err := f.svc.Resolve(actorCtx(t, "mgr-1", user.RoleDepartmentManager), request.ResolveRequest{
		RequestID: id,
		Approve:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, request.StatusApproved, resp.Status)
	assert.Equal(t, "mgr-1", *resp.ResolvedBy)
	assert.Equal(t, user.RoleDepartmentManager, *resp.ResolvedByRole)

	balance, err := f.balances.GetByUserAndType(context.Background(), "emp-1", ledger.LeaveTypeAnnual)
	require.NoError(t, err)
	assert.Equal(t, 16, balance.Remaining)
}

func TestResolve_ForbiddenCombinations(t *testing.T) {
	f := newFixture()
	f.users.add("hr-1", user.RoleHR, nil, "5000")
	f.users.add("mgr-1", user.RoleDepartmentManager, strPtr("dept-1"), "5000")
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")

	leaveID := submitLeave(t, f, "emp-1", "2")
	advanceID := submitAdvance(t, f, "emp-1", "500")

	// HR may not resolve leave
	_, err := f.svc.Resolve(actorCtx(t, "hr-1", user.RoleHR), request.ResolveRequest{RequestID: leaveID, Approve: true})
	assert.ErrorIs(t, err, request.ErrForbidden)

	// A department manager may not resolve advances
	_, err = f.svc.Resolve(actorCtx(t, "mgr-1", user.RoleDepartmentManager), request.ResolveRequest{RequestID: advanceID, Approve: true})
	assert.ErrorIs(t, err, request.ErrForbidden)

	// An employee may not resolve anything
	_, err = f.svc.Resolve(actorCtx(t, "emp-1", user.RoleEmployee), request.ResolveRequest{RequestID: leaveID, Approve: true})
	assert.ErrorIs(t, err, request.ErrForbidden)

	// Both stayed pending
	r, err := f.requests.GetByID(context.Background(), leaveID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, r.Status)
}

func TestResolve_ManagerScopedToOwnDepartment(t *testing.T) {
	f := newFixture()
	f.users.add("mgr-2", user.RoleDepartmentManager, strPtr("dept-2"), "5000")
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")
	id := submitLeave(t, f, "emp-1", "2")

	_, err := f.svc.Resolve(actorCtx(t, "mgr-2", user.RoleDepartmentManager), request.ResolveRequest{
		RequestID: id,
		Approve:   true,
	})
	assert.ErrorIs(t, err, request.ErrForbidden)
}

func TestResolve_AdminBypassesDepartmentScope(t *testing.T) {
	f := newFixture()
	f.users.add("admin-1", user.RoleAdmin, nil, "0")
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")
	id := submitLeave(t, f, "emp-1", "2")

	resp, err := f.svc.Resolve(actorCtx(t, "admin-1", user.RoleAdmin), request.ResolveRequest{
		RequestID: id,
		Approve:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, resp.Status)
}

func TestResolve_Twice(t *testing.T) {
	f := newFixture()
	f.users.add("mgr-1", user.RoleDepartmentManager, strPtr("dept-1"), "5000")
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")
	id := submitLeave(t, f, "emp-1", "2")

	_, err := f.svc.Resolve(actorCtx(t, "mgr-1", user.RoleDepartmentManager), request.ResolveRequest{RequestID: id, Approve: true})
	require.NoError(t, err)

	_, err = f.svc.Resolve(actorCtx(t, "mgr-1", user.RoleDepartmentManager), request.ResolveRequest{RequestID: id, Approve: false})
	assert.ErrorIs(t, err, request.ErrAlreadyResolved)

	// The leave was only deducted once
	balance, err := f.balances.GetByUserAndType(context.Background(), "emp-1", ledger.LeaveTypeAnnual)
	require.NoError(t, err)
	assert.Equal(t, 19, balance.Remaining)
}

func TestResolve_RejectUsesDefaultReason(t *testing.T) {
	f := newFixture()
	f.users.add("mgr-1", user.RoleDepartmentManager, strPtr("dept-1"), "5000")
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")
	id := submitLeave(t, f, "emp-1", "2")

	resp, err := f.svc.Resolve(actorCtx(t, "mgr-1", user.RoleDepartmentManager), request.ResolveRequest{
		RequestID: id,
		Approve:   false,
	})
	require.NoError(t, err)

	assert.Equal(t, request.StatusRejected, resp.Status)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "Rejected by Department Manager", *resp.RejectionReason)

	// A rejection never touches the ledger
	_, err = f.balances.GetByUserAndType(context.Background(), "emp-1", ledger.LeaveTypeAnnual)
	assert.ErrorIs(t, err, ledger.ErrBalanceNotFound)
}

func TestResolve_RejectKeepsGivenReason(t *testing.T) {
	f := newFixture()
	f.users.add("hr-1", user.RoleHR, nil, "5000")
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")
	id := submitAdvance(t, f, "emp-1", "500")

	resp, err := f.svc.Resolve(actorCtx(t, "hr-1", user.RoleHR), request.ResolveRequest{
		RequestID:       id,
		Approve:         false,
		RejectionReason: strPtr("budget freeze"),
	})
	require.NoError(t, err)
	assert.Equal(t, "budget freeze", *resp.RejectionReason)
}

func TestResolve_AdvanceExceedingNetSalaryStaysPending(t *testing.T) {
	f := newFixture()
	f.users.add("hr-1", user.RoleHR, nil, "5000")
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")

	first := submitAdvance(t, f, "emp-1", "500")
	second := submitAdvance(t, f, "emp-1", "3000")

	_, err := f.svc.Resolve(actorCtx(t, "hr-1", user.RoleHR), request.ResolveRequest{RequestID: first, Approve: true})
	require.NoError(t, err)

	// 3000 against a 2500 net salary
	_, err = f.svc.Resolve(actorCtx(t, "hr-1", user.RoleHR), request.ResolveRequest{RequestID: second, Approve: true})
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	r, err := f.requests.GetByID(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, r.Status)

	assert.True(t, f.users.deductions["emp-1"].Equal(decimal.RequireFromString("500")))
}

func TestResolve_NotFound(t *testing.T) {
	f := newFixture()
	f.users.add("admin-1", user.RoleAdmin, nil, "0")

	_, err := f.svc.Resolve(actorCtx(t, "admin-1", user.RoleAdmin), request.ResolveRequest{
		RequestID: "missing",
		Approve:   true,
	})
	assert.ErrorIs(t, err, request.ErrRequestNotFound)
}

func TestPendingRequests_ByRole(t *testing.T) {
	f := newFixture()
	f.users.add("mgr-1", user.RoleDepartmentManager, strPtr("dept-1"), "5000")
	f.users.add("hr-1", user.RoleHR, nil, "5000")
	f.users.add("admin-1", user.RoleAdmin, nil, "0")
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")
	f.users.add("emp-2", user.RoleEmployee, strPtr("dept-2"), "3000")

	submitLeave(t, f, "emp-1", "2")
	submitLeave(t, f, "emp-2", "3")
	submitAdvance(t, f, "emp-1", "500")

	// Manager only sees leave requests from their own department
	pending, err := f.svc.PendingRequests(actorCtx(t, "mgr-1", user.RoleDepartmentManager))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "emp-1", pending[0].UserID)
	assert.Equal(t, request.TypeLeave, pending[0].Type)

	// HR sees all pending advances
	pending, err = f.svc.PendingRequests(actorCtx(t, "hr-1", user.RoleHR))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, request.TypeAdvance, pending[0].Type)

	// Admin sees everything pending
	pending, err = f.svc.PendingRequests(actorCtx(t, "admin-1", user.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	// Employees have no resolution queue
	_, err = f.svc.PendingRequests(actorCtx(t, "emp-1", user.RoleEmployee))
	assert.ErrorIs(t, err, request.ErrForbidden)
}

func TestAllRequests_AdminOnly(t *testing.T) {
	f := newFixture()
	f.users.add("admin-1", user.RoleAdmin, nil, "0")
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")
	submitLeave(t, f, "emp-1", "2")

	all, err := f.svc.AllRequests(actorCtx(t, "admin-1", user.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.svc.AllRequests(actorCtx(t, "emp-1", user.RoleEmployee))
	assert.ErrorIs(t, err, request.ErrForbidden)
}

func TestMyRequests(t *testing.T) {
	f := newFixture()
	f.users.add("emp-1", user.RoleEmployee, strPtr("dept-1"), "3000")
	f.users.add("emp-2", user.RoleEmployee, strPtr("dept-1"), "3000")
	submitLeave(t, f, "emp-1", "2")
	submitAdvance(t, f, "emp-1", "100")
	submitLeave(t, f, "emp-2", "1")

	mine, err := f.svc.MyRequests(actorCtx(t, "emp-1", user.RoleEmployee))
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
