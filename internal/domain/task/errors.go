package task

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrAlreadyResolved = errors.New("task has already been accepted or rejected")
	ErrReasonRequired  = errors.New("a rejection reason is required")
	ErrForbidden       = errors.New("not allowed to act on this task")
)
