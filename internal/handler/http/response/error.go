package response

import (
	"errors"
	"net/http"

	"github.com/wforce/workforce-backend-go/internal/domain/attendance"
	"github.com/wforce/workforce-backend-go/internal/domain/department"
	"github.com/wforce/workforce-backend-go/internal/domain/ledger"
	"github.com/wforce/workforce-backend-go/internal/domain/request"
	"github.com/wforce/workforce-backend-go/internal/domain/task"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
	"github.com/wforce/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrForbidden):
		Forbidden(w, "You do not have access to this resource")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrCannotCreateAdmin):
		Forbidden(w, "Admin accounts cannot be created through this endpoint")
	case errors.Is(err, user.ErrCannotModifyAdmin):
		Forbidden(w, "Admin accounts cannot be modified")
	case errors.Is(err, user.ErrManagerRequired):
		BadRequest(w, "A direct manager is required for this role", nil)
	case errors.Is(err, user.ErrManagerHasNoDepartment):
		BadRequest(w, "The manager does not head a department", nil)
	case errors.Is(err, user.ErrSalaryRequired):
		BadRequest(w, "A positive salary is required", nil)

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")

	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrAlreadyResolved):
		Conflict(w, "Request already approved or rejected")
	case errors.Is(err, request.ErrAmountRequired):
		BadRequest(w, "A positive amount is required for advance requests", nil)
	case errors.Is(err, request.ErrForbidden):
		Forbidden(w, "You are not allowed to resolve this request")

	// Ledger domain errors
	case errors.Is(err, ledger.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, ledger.ErrInsufficientFunds):
		BadRequest(w, "Advance exceeds remaining salary", nil)
	case errors.Is(err, ledger.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrMalformedToken):
		BadRequest(w, "Attendance token is malformed", nil)
	case errors.Is(err, attendance.ErrExpiredToken):
		BadRequest(w, "Attendance token has expired", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out for today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrAlreadyResolved):
		Conflict(w, "Task already accepted or rejected")
	case errors.Is(err, task.ErrReasonRequired):
		BadRequest(w, "A rejection reason is required", nil)
	case errors.Is(err, task.ErrForbidden):
		Forbidden(w, "You are not allowed to act on this task")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
