package attendance

import "errors"

var (
	ErrMalformedToken     = errors.New("attendance token is malformed")
	ErrExpiredToken       = errors.New("attendance token has expired")
	ErrAlreadyCheckedOut  = errors.New("attendance already checked out for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
