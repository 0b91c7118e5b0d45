package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/wforce/workforce-backend-go/internal/domain/ledger"
	"github.com/wforce/workforce-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) ledger.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetByUserAndType implements ledger.LeaveBalanceRepository. The row lock
// only takes effect when a transaction is on the context.
func (r *leaveBalanceRepositoryImpl) GetByUserAndType(ctx context.Context, userID, leaveType string) (ledger.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, leave_type, total, remaining, updated_at
		FROM leave_balances
		WHERE user_id = $1 AND leave_type = $2
		FOR UPDATE
	`

	var b ledger.LeaveBalance
	err := q.QueryRow(ctx, query, userID, leaveType).Scan(
		&b.ID, &b.UserID, &b.LeaveType, &b.Total, &b.Remaining, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.LeaveBalance{}, ledger.ErrBalanceNotFound
		}
		return ledger.LeaveBalance{}, err
	}
	return b, nil
}

// Create implements ledger.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, b ledger.LeaveBalance) (ledger.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (id, user_id, leave_type, total, remaining, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW())
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query, b.UserID, b.LeaveType, b.Total, b.Remaining).
		Scan(&b.ID, &b.UpdatedAt)
	if err != nil {
		return ledger.LeaveBalance{}, err
	}
	return b, nil
}

// Decrement implements ledger.LeaveBalanceRepository. The guard keeps
// remaining non-negative: zero rows affected means the balance could not
// cover the days and nothing changed.
func (r *leaveBalanceRepositoryImpl) Decrement(ctx context.Context, id string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET remaining = remaining - $1, updated_at = NOW()
		WHERE id = $2
		AND remaining >= $1
	`

	result, err := q.Exec(ctx, query, days, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ledger.ErrInsufficientBalance
	}
	return nil
}

// GetByUser implements ledger.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByUser(ctx context.Context, userID string) ([]ledger.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, leave_type, total, remaining, updated_at
		FROM leave_balances
		WHERE user_id = $1
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]ledger.LeaveBalance, 0)
	for rows.Next() {
		var b ledger.LeaveBalance
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.LeaveType, &b.Total, &b.Remaining, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, nil
}
