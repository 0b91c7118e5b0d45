package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleEmployee          Role = "employee"
	RoleHR                Role = "hr"
	RoleDepartmentManager Role = "department_manager"
	RoleAdmin             Role = "admin"
)

// DisplayName returns the role name as shown to humans, e.g. in the default
// rejection reason "Rejected by Department Manager".
func (r Role) DisplayName() string {
	switch r {
	case RoleEmployee:
		return "Employee"
	case RoleHR:
		return "HR"
	case RoleDepartmentManager:
		return "Department Manager"
	case RoleAdmin:
		return "Admin"
	}
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleHR, RoleDepartmentManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	DepartmentID *string
	ManagerID    *string

	Salary     decimal.Decimal
	Deductions decimal.Decimal
	IsActive   bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	DepartmentName *string
	ManagerName    *string
}

// NetSalary is the salary left after the accumulated advance deductions.
func (u User) NetSalary() decimal.Decimal {
	return u.Salary.Sub(u.Deductions)
}
