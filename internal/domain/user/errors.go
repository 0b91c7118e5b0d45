package user

import "errors"

// User domain errors
var (
	ErrUnauthenticated = errors.New("no authenticated user in request context")
	ErrForbidden       = errors.New("you are not allowed to perform this action")

	ErrUserNotFound    = errors.New("user not found")
	ErrManagerNotFound = errors.New("manager not found")
	ErrEmailExists     = errors.New("email already registered")

	ErrCannotCreateAdmin      = errors.New("admins cannot create other admin accounts")
	ErrCannotModifyAdmin      = errors.New("admin accounts cannot be modified")
	ErrManagerRequired        = errors.New("a direct manager is required for this role")
	ErrManagerHasNoDepartment = errors.New("the specified manager is not assigned to any department")
	ErrSalaryRequired         = errors.New("salary must be greater than zero for this role")
)
