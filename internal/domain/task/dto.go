package task

import (
	"time"

	"github.com/wforce/workforce-backend-go/internal/pkg/validator"
)

type AssignTaskRequest struct {
	UserID      string     `json:"user_id"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (r AssignTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RespondTaskRequest struct {
	TaskID          string  `json:"-"`
	Accept          bool    `json:"accept"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type TaskResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	UserName        *string    `json:"user_name,omitempty"`
	AssignedBy      string     `json:"assigned_by"`
	AssignerName    *string    `json:"assigner_name,omitempty"`
	Description     string     `json:"description"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Status          Status     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func ToResponse(t *UserTask) *TaskResponse {
	return &TaskResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		UserName:        t.UserName,
		AssignedBy:      t.AssignedBy,
		AssignerName:    t.AssignerName,
		Description:     t.Description,
		DueDate:         t.DueDate,
		Status:          t.Status,
		RejectionReason: t.RejectionReason,
		CreatedAt:       t.CreatedAt,
	}
}
