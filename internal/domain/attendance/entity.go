package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusAbsent  Status = "absent"
	StatusPresent Status = "present"
	StatusLate    Status = "late"
)

type Attendance struct {
	ID           string
	UserID       string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	WorkHours    *decimal.Decimal
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	UserName *string
}

// CheckedIn reports whether the row carries an actual scan, as opposed to the
// seeded absent placeholder the daily initializer creates.
func (a *Attendance) CheckedIn() bool {
	return a.CheckInTime != nil
}

func (a *Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}
