package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wforce/workforce-backend-go/internal/domain/attendance"
	"github.com/wforce/workforce-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att *attendance.Attendance) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			id, user_id, date, check_in_time, check_out_time, work_hours, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.UserID, att.Date, att.CheckInTime, att.CheckOutTime, att.WorkHours, att.Status,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return "", err
	}
	return att.ID, nil
}

// GetByUserAndDateForUpdate implements attendance.AttendanceRepository. The
// row lock only takes effect when a transaction is on the context.
func (r *attendanceRepositoryImpl) GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, check_in_time, check_out_time, work_hours, status,
			   created_at, updated_at
		FROM attendances
		WHERE user_id = $1 AND date = $2
		FOR UPDATE
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&att.ID, &att.UserID, &att.Date, &att.CheckInTime, &att.CheckOutTime, &att.WorkHours, &att.Status,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in_time = $1, check_out_time = $2, work_hours = $3, status = $4,
			updated_at = NOW()
		WHERE id = $5
	`

	result, err := q.Exec(ctx, query,
		att.CheckInTime, att.CheckOutTime, att.WorkHours, att.Status, att.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUser(ctx context.Context, userID string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, check_in_time, check_out_time, work_hours, status,
			   created_at, updated_at
		FROM attendances
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.UserID, &att.Date, &att.CheckInTime, &att.CheckOutTime, &att.WorkHours, &att.Status,
			&att.CreatedAt, &att.UpdatedAt,
		); err != nil {
			return nil, err
		}
		attendances = append(attendances, att)
	}

	return attendances, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.user_id, a.date, a.check_in_time, a.check_out_time, a.work_hours, a.status,
			   a.created_at, a.updated_at,
			   u.name AS user_name
		FROM attendances a
		JOIN users u ON a.user_id = u.id
		WHERE a.date = $1
		ORDER BY u.name
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.UserID, &att.Date, &att.CheckInTime, &att.CheckOutTime, &att.WorkHours, &att.Status,
			&att.CreatedAt, &att.UpdatedAt,
			&att.UserName,
		); err != nil {
			return nil, err
		}
		attendances = append(attendances, att)
	}

	return attendances, nil
}

// SeedAbsentForDate implements attendance.AttendanceRepository. Admin and HR
// are not tracked; users that already have a row for the date are skipped,
// which makes re-runs of the daily initializer no-ops.
func (r *attendanceRepositoryImpl) SeedAbsentForDate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, user_id, date, status, created_at, updated_at)
		SELECT uuidv7(), u.id, $1, 'absent', NOW(), NOW()
		FROM users u
		WHERE u.is_active
		AND u.role IN ('employee', 'department_manager')
		AND NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.user_id = u.id AND a.date = $1
		)
	`

	result, err := q.Exec(ctx, query, date)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
