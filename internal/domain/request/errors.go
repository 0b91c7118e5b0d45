package request

import "errors"

// Request workflow errors
var (
	ErrRequestNotFound = errors.New("request not found")
	ErrAlreadyResolved = errors.New("request has already been approved or rejected")
	ErrAmountRequired  = errors.New("a positive amount is required for advance requests")
	ErrForbidden       = errors.New("you are not allowed to resolve this request")
)
