package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	// Scan drives the check-in/check-out state machine for the
	// authenticated user. First valid scan of the day checks in, second
	// checks out, any further scan fails with ErrAlreadyCheckedOut.
	Scan(ctx context.Context, req ScanRequest) (*ScanResponse, error)

	// DailyToken returns today's attendance token for display as a QR code.
	DailyToken(ctx context.Context) (*TokenResponse, error)

	// MyAttendance returns the authenticated user's recent history.
	MyAttendance(ctx context.Context) ([]AttendanceResponse, error)

	// ListByDate returns all attendance rows for one day.
	ListByDate(ctx context.Context, date time.Time) ([]AttendanceResponse, error)

	// InitializeDay seeds absent rows for all employees and department
	// managers, skipping users that already have a row. Idempotent.
	InitializeDay(ctx context.Context, date time.Time) (int64, error)
}
