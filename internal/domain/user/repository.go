package user

import (
	"context"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	// Create inserts the user and returns it with its generated identifier.
	Create(ctx context.Context, u User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByIDWithRelations also fills DepartmentName and ManagerName.
	GetByIDWithRelations(ctx context.Context, id string) (User, error)

	List(ctx context.Context) ([]User, error)

	// ListByDepartment retrieves users of the given role within a department.
	ListByDepartment(ctx context.Context, departmentID string, role Role) ([]User, error)

	Update(ctx context.Context, req UpdateUserRequest) error
	Delete(ctx context.Context, id string) error

	// SetManagement writes the department/manager cross-links created by the
	// two-step manager provisioning protocol.
	SetManagement(ctx context.Context, userID string, departmentID, managerID *string) error

	// AddDeduction atomically increases the user's deduction total, guarded so
	// that deductions never exceed salary. Returns ErrInsufficientFunds from
	// the ledger domain when the guard rejects the update.
	AddDeduction(ctx context.Context, userID string, amount decimal.Decimal) error
}
