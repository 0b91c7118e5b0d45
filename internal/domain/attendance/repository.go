package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a new attendance row. Returns the generated ID.
	Create(ctx context.Context, att *Attendance) (string, error)

	// GetByUserAndDateForUpdate loads the row for one user and day, locking
	// it for the duration of the surrounding transaction. Returns
	// ErrAttendanceNotFound when no row exists yet.
	GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// Update persists check-in/check-out mutations on an existing row.
	Update(ctx context.Context, att *Attendance) error

	// ListByUser returns a user's attendance history, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Attendance, error)

	// ListByDate returns every row for one day, joined with user names.
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// SeedAbsentForDate inserts an absent placeholder row for every active
	// employee and department manager that has none for the date. Returns
	// the number of rows inserted; running it twice for the same date
	// inserts nothing the second time.
	SeedAbsentForDate(ctx context.Context, date time.Time) (int64, error)
}
