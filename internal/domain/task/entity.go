package task

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type UserTask struct {
	ID              string
	UserID          string
	AssignedBy      string
	Description     string
	DueDate         *time.Time
	Status          Status
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	UserName     *string
	AssignerName *string
}
