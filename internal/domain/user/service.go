package user

import (
	"context"

	"github.com/wforce/workforce-backend-go/internal/domain/department"
)

// UserService defines the directory operations: user provisioning, the
// manager/department cross-link protocol, and the CRUD surface around them.
type UserService interface {
	// CreateUser provisions a user of any non-admin role (admin only). For
	// department managers a department is created and cross-linked in the
	// same transaction. The credentials email is best-effort: a send failure
	// surfaces as a warning on the response, never as an error.
	CreateUser(ctx context.Context, req CreateUserRequest) (CreateUserResponse, error)

	// CreateManager provisions a department manager plus their department
	// (HR surface). The employee record, department record and cross-links
	// are written all-or-nothing.
	CreateManager(ctx context.Context, req CreateManagerRequest) (CreateManagerResponse, error)

	// CreateEmployee provisions an employee under an existing manager who
	// heads a department (HR surface).
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (CreateUserResponse, error)

	UpdateUser(ctx context.Context, req UpdateUserRequest) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]UserResponse, error)

	// MyEmployees lists the employees in the calling manager's department.
	MyEmployees(ctx context.Context) ([]UserResponse, error)

	// EmployeeInfo returns the calling employee's own profile with net salary.
	EmployeeInfo(ctx context.Context) (EmployeeInfoResponse, error)

	UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) error
	ListDepartments(ctx context.Context) ([]department.Department, error)
}
