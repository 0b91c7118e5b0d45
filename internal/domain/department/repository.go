package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)

	// GetByManagerID finds the department headed by the given user.
	GetByManagerID(ctx context.Context, managerID string) (Department, error)

	List(ctx context.Context) ([]Department, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) error
	Delete(ctx context.Context, id string) error

	// SetManager writes the manager cross-link.
	SetManager(ctx context.Context, departmentID, managerID string) error
}
