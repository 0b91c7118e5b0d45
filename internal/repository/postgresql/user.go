package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wforce/workforce-backend-go/internal/domain/ledger"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
	"github.com/wforce/workforce-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, name, email, password_hash, role,
			department_id, manager_id, salary, deductions, is_active,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7, $8, TRUE,
			NOW(), NOW()
		) RETURNING id, is_active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.Role,
		u.DepartmentID, u.ManagerID, u.Salary, u.Deductions,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, password_hash, role,
			   department_id, manager_id, salary, deductions, is_active,
			   created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.DepartmentID, &u.ManagerID, &u.Salary, &u.Deductions, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, password_hash, role,
			   department_id, manager_id, salary, deductions, is_active,
			   created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.DepartmentID, &u.ManagerID, &u.Salary, &u.Deductions, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// GetByIDWithRelations implements user.UserRepository.
func (r *userRepositoryImpl) GetByIDWithRelations(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, u.email, u.password_hash, u.role,
			   u.department_id, u.manager_id, u.salary, u.deductions, u.is_active,
			   u.created_at, u.updated_at,
			   d.name AS department_name,
			   m.name AS manager_name
		FROM users u
		LEFT JOIN departments d ON u.department_id = d.id
		LEFT JOIN users m ON u.manager_id = m.id
		WHERE u.id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.DepartmentID, &u.ManagerID, &u.Salary, &u.Deductions, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
		&u.DepartmentName, &u.ManagerName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, u.email, u.role,
			   u.department_id, u.manager_id, u.salary, u.deductions, u.is_active,
			   u.created_at, u.updated_at,
			   d.name AS department_name
		FROM users u
		LEFT JOIN departments d ON u.department_id = d.id
		ORDER BY u.created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Role,
			&u.DepartmentID, &u.ManagerID, &u.Salary, &u.Deductions, &u.IsActive,
			&u.CreatedAt, &u.UpdatedAt,
			&u.DepartmentName,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

// ListByDepartment implements user.UserRepository.
func (r *userRepositoryImpl) ListByDepartment(ctx context.Context, departmentID string, role user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, role,
			   department_id, manager_id, salary, deductions, is_active,
			   created_at, updated_at
		FROM users
		WHERE department_id = $1 AND role = $2 AND is_active
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, departmentID, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Role,
			&u.DepartmentID, &u.ManagerID, &u.Salary, &u.Deductions, &u.IsActive,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.PasswordHash != nil {
		updates["password_hash"] = *req.PasswordHash
	}
	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}
	if req.ManagerID != nil {
		updates["manager_id"] = *req.ManagerID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for user update")
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE users SET " +
		strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d", i)
	args = append(args, req.ID)

	result, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active
	`

	result, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// SetManagement implements user.UserRepository.
func (r *userRepositoryImpl) SetManagement(ctx context.Context, userID string, departmentID, managerID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET department_id = $1, manager_id = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := q.Exec(ctx, query, departmentID, managerID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// AddDeduction implements user.UserRepository. The guard keeps deductions
// within salary: zero rows affected on an existing user means the advance
// would overdraw the net salary and nothing changed.
func (r *userRepositoryImpl) AddDeduction(ctx context.Context, userID string, amount decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT TRUE FROM users WHERE id = $1 AND is_active FOR UPDATE`, userID).Scan(&exists)
	if err == pgx.ErrNoRows {
		return user.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET deductions = deductions + $1, updated_at = NOW()
		WHERE id = $2
		AND salary - deductions >= $1
	`

	result, err := q.Exec(ctx, query, amount, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ledger.ErrInsufficientFunds
	}
	return nil
}
