package request

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
	"github.com/wforce/workforce-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	Type        Type             `json:"request_type"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

func (r SubmitRequest) Validate() error {
	if !r.Type.Valid() {
		return validator.ValidationErrors{{Field: "request_type", Message: "must be leave or advance"}}
	}
	if r.Type == TypeAdvance && (r.Amount == nil || r.Amount.Sign() <= 0) {
		return ErrAmountRequired
	}
	if r.Type == TypeLeave && r.Amount != nil && r.Amount.Sign() < 0 {
		return validator.ValidationErrors{{Field: "amount", Message: "leave days cannot be negative"}}
	}
	return nil
}

type ResolveRequest struct {
	RequestID       string  `json:"-"`
	Approve         bool    `json:"approve"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type RequestResponse struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	UserName        *string          `json:"user_name,omitempty"`
	Type            Type             `json:"request_type"`
	Description     *string          `json:"description,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Status          Status           `json:"status"`
	SubmittedAt     time.Time        `json:"submitted_at"`
	ResolvedBy      *string          `json:"resolved_by,omitempty"`
	ResolvedByRole  *user.Role       `json:"resolved_by_role,omitempty"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
}

func ToResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		UserName:        r.UserName,
		Type:            r.Type,
		Description:     r.Description,
		Amount:          r.Amount,
		Status:          r.Status,
		SubmittedAt:     r.SubmittedAt,
		ResolvedBy:      r.ResolvedBy,
		ResolvedByRole:  r.ResolvedByRole,
		RejectionReason: r.RejectionReason,
	}
}
