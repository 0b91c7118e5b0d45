package request

import "context"

type RequestService interface {
	// Submit files a new pending request for the authenticated user.
	Submit(ctx context.Context, req SubmitRequest) (*RequestResponse, error)

	// Resolve approves or rejects a pending request on behalf of the
	// authenticated actor. Approval applies the balance side effect (leave
	// days or salary deduction) atomically with the status flip; any
	// failure leaves the request pending.
	Resolve(ctx context.Context, req ResolveRequest) (*RequestResponse, error)

	// MyRequests lists the authenticated user's own requests.
	MyRequests(ctx context.Context) ([]RequestResponse, error)

	// PendingRequests lists the pending requests the authenticated actor is
	// allowed to resolve: department leave requests for managers, advance
	// requests for HR, everything for admins.
	PendingRequests(ctx context.Context) ([]RequestResponse, error)

	// AllRequests lists every request in the system. Admin only.
	AllRequests(ctx context.Context) ([]RequestResponse, error)
}
