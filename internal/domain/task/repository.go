package task

import "context"

type TaskRepository interface {
	Create(ctx context.Context, t *UserTask) (string, error)

	// GetByID returns ErrTaskNotFound when no row matches.
	GetByID(ctx context.Context, id string) (*UserTask, error)

	ListByUser(ctx context.Context, userID string) ([]UserTask, error)
	ListByAssigner(ctx context.Context, assignerID string) ([]UserTask, error)

	// Resolve flips a pending task to accepted or rejected. The update is
	// guarded on the pending status; a no-op means the task was already
	// resolved and ErrAlreadyResolved is returned.
	Resolve(ctx context.Context, id string, status Status, rejectionReason *string) error
}
