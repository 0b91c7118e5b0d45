package request

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
)

type Type string

const (
	TypeLeave   Type = "leave"
	TypeAdvance Type = "advance"
)

func (t Type) Valid() bool {
	return t == TypeLeave || t == TypeAdvance
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is an employee self-service request. Status moves exactly once from
// pending to approved or rejected and is immutable afterwards.
type Request struct {
	ID     string
	UserID string
	Type   Type

	Description *string

	// Amount is money for advances and a day count for leave. Absent or zero
	// on a leave request means one day.
	Amount *decimal.Decimal

	Status      Status
	SubmittedAt time.Time

	ResolvedBy      *string
	ResolvedByRole  *user.Role
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	UserName *string
}

// LeaveDays is the number of days a leave request consumes when approved.
func (r Request) LeaveDays() int {
	if r.Amount == nil || r.Amount.IsZero() {
		return 1
	}
	return int(r.Amount.IntPart())
}
