package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/wforce/workforce-backend-go/internal/domain/task"
	"github.com/wforce/workforce-backend-go/internal/pkg/database"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t *task.UserTask) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_tasks (
			id, user_id, assigned_by, description, due_date, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, 'pending',
			NOW(), NOW()
		) RETURNING id, status, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.UserID, t.AssignedBy, t.Description, t.DueDate,
	).Scan(&t.ID, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (*task.UserTask, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.user_id, t.assigned_by, t.description, t.due_date, t.status,
			   t.rejection_reason, t.created_at, t.updated_at,
			   u.name AS user_name,
			   a.name AS assigner_name
		FROM user_tasks t
		JOIN users u ON t.user_id = u.id
		JOIN users a ON t.assigned_by = a.id
		WHERE t.id = $1
	`

	var t task.UserTask
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.AssignedBy, &t.Description, &t.DueDate, &t.Status,
		&t.RejectionReason, &t.CreatedAt, &t.UpdatedAt,
		&t.UserName, &t.AssignerName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *taskRepositoryImpl) queryTasks(ctx context.Context, query string, args ...interface{}) ([]task.UserTask, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]task.UserTask, 0)
	for rows.Next() {
		var t task.UserTask
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.AssignedBy, &t.Description, &t.DueDate, &t.Status,
			&t.RejectionReason, &t.CreatedAt, &t.UpdatedAt,
			&t.UserName, &t.AssignerName,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

// ListByUser implements task.TaskRepository.
func (r *taskRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]task.UserTask, error) {
	query := `
		SELECT t.id, t.user_id, t.assigned_by, t.description, t.due_date, t.status,
			   t.rejection_reason, t.created_at, t.updated_at,
			   u.name AS user_name,
			   a.name AS assigner_name
		FROM user_tasks t
		JOIN users u ON t.user_id = u.id
		JOIN users a ON t.assigned_by = a.id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
	`
	return r.queryTasks(ctx, query, userID)
}

// ListByAssigner implements task.TaskRepository.
func (r *taskRepositoryImpl) ListByAssigner(ctx context.Context, assignerID string) ([]task.UserTask, error) {
	query := `
		SELECT t.id, t.user_id, t.assigned_by, t.description, t.due_date, t.status,
			   t.rejection_reason, t.created_at, t.updated_at,
			   u.name AS user_name,
			   a.name AS assigner_name
		FROM user_tasks t
		JOIN users u ON t.user_id = u.id
		JOIN users a ON t.assigned_by = a.id
		WHERE t.assigned_by = $1
		ORDER BY t.created_at DESC
	`
	return r.queryTasks(ctx, query, assignerID)
}

// Resolve implements task.TaskRepository. Guarded on pending status so a
// task is accepted or rejected at most once.
func (r *taskRepositoryImpl) Resolve(ctx context.Context, id string, status task.Status, rejectionReason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE user_tasks
		SET status = $1, rejection_reason = $2, updated_at = NOW()
		WHERE id = $3
		AND status = 'pending'
	`

	result, err := q.Exec(ctx, query, status, rejectionReason, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return task.ErrAlreadyResolved
	}
	return nil
}
