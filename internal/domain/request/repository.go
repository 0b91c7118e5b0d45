package request

import (
	"context"

	"github.com/wforce/workforce-backend-go/internal/domain/user"
)

type RequestRepository interface {
	Create(ctx context.Context, req *Request) (string, error)

	// GetByID returns ErrRequestNotFound when no row matches.
	GetByID(ctx context.Context, id string) (*Request, error)

	// GetByIDForUpdate is GetByID with a row lock, for use inside the
	// resolution transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*Request, error)

	ListByUser(ctx context.Context, userID string) ([]Request, error)

	// ListPending filters pending requests by type, optionally scoped to a
	// department. A nil departmentID means no department filter.
	ListPending(ctx context.Context, t Type, departmentID *string) ([]Request, error)

	// ListAll returns every request regardless of status, newest first.
	ListAll(ctx context.Context) ([]Request, error)

	// MarkResolved flips a pending request to the given terminal status and
	// stamps the resolver. The update is guarded on the pending status; a
	// no-op means somebody else resolved it first and ErrAlreadyResolved is
	// returned.
	MarkResolved(ctx context.Context, id string, status Status, resolvedBy string, resolvedByRole user.Role, rejectionReason *string) error
}
