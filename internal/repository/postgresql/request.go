package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/wforce/workforce-backend-go/internal/domain/request"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
	"github.com/wforce/workforce-backend-go/internal/pkg/database"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

// Create implements request.RequestRepository.
func (r *requestRepositoryImpl) Create(ctx context.Context, req *request.Request) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO requests (
			id, user_id, request_type, description, amount, status,
			submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, 'pending',
			NOW(), NOW(), NOW()
		) RETURNING id, status, submitted_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.UserID, req.Type, req.Description, req.Amount,
	).Scan(&req.ID, &req.Status, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return "", err
	}
	return req.ID, nil
}

const requestColumns = `
	r.id, r.user_id, r.request_type, r.description, r.amount, r.status,
	r.submitted_at, r.resolved_by, r.resolved_by_role, r.rejection_reason,
	r.created_at, r.updated_at,
	u.name AS user_name
`

func scanRequest(row pgx.Row) (*request.Request, error) {
	var req request.Request
	err := row.Scan(
		&req.ID, &req.UserID, &req.Type, &req.Description, &req.Amount, &req.Status,
		&req.SubmittedAt, &req.ResolvedBy, &req.ResolvedByRole, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt,
		&req.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByID implements request.RequestRepository.
func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (*request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM requests r
		JOIN users u ON r.user_id = u.id
		WHERE r.id = $1
	`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, request.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

// GetByIDForUpdate implements request.RequestRepository. FOR UPDATE OF r
// locks only the request row, not the joined user row.
func (r *requestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (*request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM requests r
		JOIN users u ON r.user_id = u.id
		WHERE r.id = $1
		FOR UPDATE OF r
	`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, request.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *requestRepositoryImpl) queryRequests(ctx context.Context, query string, args ...interface{}) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]request.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}

	return requests, nil
}

// ListByUser implements request.RequestRepository.
func (r *requestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]request.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests r
		JOIN users u ON r.user_id = u.id
		WHERE r.user_id = $1
		ORDER BY r.submitted_at DESC
	`
	return r.queryRequests(ctx, query, userID)
}

// ListPending implements request.RequestRepository.
func (r *requestRepositoryImpl) ListPending(ctx context.Context, t request.Type, departmentID *string) ([]request.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests r
		JOIN users u ON r.user_id = u.id
		WHERE r.status = 'pending' AND r.request_type = $1
		AND ($2::text IS NULL OR u.department_id = $2)
		ORDER BY r.submitted_at
	`
	return r.queryRequests(ctx, query, t, departmentID)
}

// ListAll implements request.RequestRepository.
func (r *requestRepositoryImpl) ListAll(ctx context.Context) ([]request.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests r
		JOIN users u ON r.user_id = u.id
		ORDER BY r.submitted_at DESC
	`
	return r.queryRequests(ctx, query)
}

// MarkResolved implements request.RequestRepository. The status guard makes
// resolution first-wins: a request already out of pending is left untouched
// and the caller gets ErrAlreadyResolved.
func (r *requestRepositoryImpl) MarkResolved(ctx context.Context, id string, status request.Status, resolvedBy string, resolvedByRole user.Role, rejectionReason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE requests
		SET status = $1, resolved_by = $2, resolved_by_role = $3,
			rejection_reason = $4, updated_at = NOW()
		WHERE id = $5
		AND status = 'pending'
	`

	result, err := q.Exec(ctx, query, status, resolvedBy, resolvedByRole, rejectionReason, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return request.ErrAlreadyResolved
	}
	return nil
}
