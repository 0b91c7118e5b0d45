package user

import (
	"github.com/shopspring/decimal"
	"github.com/wforce/workforce-backend-go/internal/pkg/validator"
)

type CreateUserRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     Role            `json:"role"`
	Salary   decimal.Decimal `json:"salary"`

	// Required for employees and HR: they inherit their manager's department.
	DirectManagerID *string `json:"direct_manager_id,omitempty"`

	// Required when creating a department manager: a department of this name
	// is created and cross-linked in the same transaction.
	DepartmentName *string `json:"department_name,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "a valid email is required"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if !r.Role.Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "unknown role"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateUserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`

	// DepartmentID is set when a department was created alongside the user.
	DepartmentID *string `json:"department_id,omitempty"`

	// Warning carries the soft failure of the credentials email: the account
	// is committed either way.
	Warning string `json:"-"`
}

type CreateManagerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`

	DepartmentName        string  `json:"department_name"`
	DepartmentDescription *string `json:"department_description,omitempty"`
}

func (r CreateManagerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "a valid email is required"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if validator.IsEmpty(r.DepartmentName) {
		errs = append(errs, validator.ValidationError{Field: "department_name", Message: "department name is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateManagerResponse struct {
	ManagerID    string `json:"manager_id"`
	DepartmentID string `json:"department_id"`

	// Warning carries the soft failure of the credentials email: the manager
	// and department are committed either way.
	Warning string `json:"-"`
}

type CreateEmployeeRequest struct {
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Salary    decimal.Decimal `json:"salary"`
	ManagerID string          `json:"manager_id"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "a valid email is required"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if validator.IsEmpty(r.ManagerID) {
		errs = append(errs, validator.ValidationError{Field: "manager_id", Message: "manager_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
	PasswordHash *string `json:"-"`
	DepartmentID *string `json:"department_id,omitempty"`
	ManagerID    *string `json:"manager_id,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type UserResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Role           Role    `json:"role"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
	ManagerID      *string `json:"manager_id,omitempty"`
	IsActive       bool    `json:"is_active"`
}

// EmployeeInfoResponse is the self-service profile view, including the net
// salary after advance deductions.
type EmployeeInfoResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           string          `json:"role"`
	DepartmentName string          `json:"department_name"`
	ManagerID      *string         `json:"manager_id,omitempty"`
	ManagerName    string          `json:"manager_name"`
	BasicSalary    decimal.Decimal `json:"basic_salary"`
	Deductions     decimal.Decimal `json:"deductions"`
	NetSalary      decimal.Decimal `json:"net_salary"`
}
