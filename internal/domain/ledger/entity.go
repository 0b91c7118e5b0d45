package ledger

import "time"

// LeaveTypeAnnual is the only leave type the ledger tracks today. The column
// exists so sick/unpaid types can be added without a schema change.
const LeaveTypeAnnual = "Annual"

// LeaveBalance is one ledger row per (user, leave type). The invariant
// 0 <= Remaining <= Total holds after every mutation; it is enforced by the
// guarded decrement in storage, not re-checked by callers.
type LeaveBalance struct {
	ID        string
	UserID    string
	LeaveType string

	Total     int
	Remaining int

	UpdatedAt time.Time
}
