package user

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/wforce/workforce-backend-go/internal/domain/department"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
	"github.com/wforce/workforce-backend-go/internal/pkg/database"
	"github.com/wforce/workforce-backend-go/internal/pkg/email"
	"github.com/wforce/workforce-backend-go/internal/pkg/validator"
)

type UserServiceImpl struct {
	txm database.TxManager
	user.UserRepository
	department.DepartmentRepository
	emailService email.EmailService
}

func NewUserService(
	txm database.TxManager,
	userRepo user.UserRepository,
	departmentRepo department.DepartmentRepository,
	emailService email.EmailService,
) user.UserService {
	return &UserServiceImpl{
		txm:                  txm,
		UserRepository:       userRepo,
		DepartmentRepository: departmentRepo,
		emailService:         emailService,
	}
}

// CreateUser implements user.UserService. Department managers get a fresh
// department created and cross-linked in the same transaction; employees and
// HR are attached under an existing manager.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.CreateUserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.CreateUserResponse{}, err
	}
	if req.Role == user.RoleAdmin {
		return user.CreateUserResponse{}, user.ErrCannotCreateAdmin
	}
	if req.Role == user.RoleEmployee && req.Salary.Sign() <= 0 {
		return user.CreateUserResponse{}, user.ErrSalaryRequired
	}

	if _, err := s.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return user.CreateUserResponse{}, user.ErrEmailExists
	} else if err != user.ErrUserNotFound {
		return user.CreateUserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.CreateUserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Salary:       req.Salary,
	}

	var createdDepartmentID *string

	switch req.Role {
	case user.RoleDepartmentManager:
		if req.DepartmentName == nil || validator.IsEmpty(*req.DepartmentName) {
			return user.CreateUserResponse{}, validator.ValidationErrors{{Field: "department_name", Message: "department_name is required for department managers"}}
		}

		err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
			created, err := s.UserRepository.Create(ctx, newUser)
			if err != nil {
				return err
			}
			newUser = created

			dept, err := s.DepartmentRepository.Create(ctx, department.Department{
				Name:      *req.DepartmentName,
				ManagerID: &created.ID,
			})
			if err != nil {
				return err
			}
			createdDepartmentID = &dept.ID

			// Managers head their own department and report to themselves.
			return s.UserRepository.SetManagement(ctx, created.ID, &dept.ID, &created.ID)
		})
		if err != nil {
			return user.CreateUserResponse{}, err
		}

	default:
		if req.DirectManagerID == nil {
			return user.CreateUserResponse{}, user.ErrManagerRequired
		}
		manager, err := s.UserRepository.GetByID(ctx, *req.DirectManagerID)
		if err != nil {
			if err == user.ErrUserNotFound {
				return user.CreateUserResponse{}, user.ErrManagerNotFound
			}
			return user.CreateUserResponse{}, err
		}
		if manager.DepartmentID == nil {
			return user.CreateUserResponse{}, user.ErrManagerHasNoDepartment
		}

		newUser.DepartmentID = manager.DepartmentID
		newUser.ManagerID = &manager.ID

		created, err := s.UserRepository.Create(ctx, newUser)
		if err != nil {
			return user.CreateUserResponse{}, err
		}
		newUser = created
	}

	resp := user.CreateUserResponse{
		ID:           newUser.ID,
		Name:         newUser.Name,
		Role:         newUser.Role,
		DepartmentID: createdDepartmentID,
	}

	// The account is committed at this point; a mail failure must not undo it.
	if err := s.emailService.SendAccountCredentials(req.Email, req.Name, req.Email, req.Password); err != nil {
		slog.Warn("failed to send credentials email", "user_id", newUser.ID, "error", err)
		resp.Warning = "user created, but the credentials email could not be sent"
	}

	return resp, nil
}

// CreateManager implements user.UserService. The manager row, the department
// row and both cross-links are written all-or-nothing: the department points
// at its manager and the manager at their department.
func (s *UserServiceImpl) CreateManager(ctx context.Context, req user.CreateManagerRequest) (user.CreateManagerResponse, error) {
	if err := req.Validate(); err != nil {
		return user.CreateManagerResponse{}, err
	}

	if _, err := s.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return user.CreateManagerResponse{}, user.ErrEmailExists
	} else if err != user.ErrUserNotFound {
		return user.CreateManagerResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.CreateManagerResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var resp user.CreateManagerResponse
	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		manager, err := s.UserRepository.Create(ctx, user.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         user.RoleDepartmentManager,
		})
		if err != nil {
			return err
		}

		dept, err := s.DepartmentRepository.Create(ctx, department.Department{
			Name:        req.DepartmentName,
			Description: req.DepartmentDescription,
			ManagerID:   &manager.ID,
		})
		if err != nil {
			return err
		}

		if err := s.UserRepository.SetManagement(ctx, manager.ID, &dept.ID, &manager.ID); err != nil {
			return err
		}

		resp = user.CreateManagerResponse{
			ManagerID:    manager.ID,
			DepartmentID: dept.ID,
		}
		return nil
	})
	if err != nil {
		return user.CreateManagerResponse{}, err
	}

	if err := s.emailService.SendAccountCredentials(req.Email, req.Name, req.Email, req.Password); err != nil {
		slog.Warn("failed to send credentials email", "user_id", resp.ManagerID, "error", err)
		resp.Warning = "manager created, but the credentials email could not be sent"
	}

	return resp, nil
}

// CreateEmployee implements user.UserService.
func (s *UserServiceImpl) CreateEmployee(ctx context.Context, req user.CreateEmployeeRequest) (user.CreateUserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.CreateUserResponse{}, err
	}

	return s.CreateUser(ctx, user.CreateUserRequest{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Role:            user.RoleEmployee,
		Salary:          req.Salary,
		DirectManagerID: &req.ManagerID,
	})
}

// UpdateUser implements user.UserService. Admin accounts are immutable
// through this surface.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) error {
	target, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if target.Role == user.RoleAdmin {
		return user.ErrCannotModifyAdmin
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)
		req.PasswordHash = &hashStr
		req.Password = nil
	}

	return s.UserRepository.Update(ctx, req)
}

// DeleteUser implements user.UserService. Deletion is a soft deactivate.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	target, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == user.RoleAdmin {
		return user.ErrCannotModifyAdmin
	}

	return s.UserRepository.Delete(ctx, id)
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

// MyEmployees implements user.UserService.
func (s *UserServiceImpl) MyEmployees(ctx context.Context) ([]user.UserResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	manager, err := s.UserRepository.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if manager.DepartmentID == nil {
		return nil, user.ErrManagerHasNoDepartment
	}

	employees, err := s.UserRepository.ListByDepartment(ctx, *manager.DepartmentID, user.RoleEmployee)
	if err != nil {
		return nil, err
	}
	return toResponses(employees), nil
}

// EmployeeInfo implements user.UserService.
func (s *UserServiceImpl) EmployeeInfo(ctx context.Context) (user.EmployeeInfoResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return user.EmployeeInfoResponse{}, err
	}

	u, err := s.UserRepository.GetByIDWithRelations(ctx, actor.UserID)
	if err != nil {
		return user.EmployeeInfoResponse{}, err
	}

	resp := user.EmployeeInfoResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role.DisplayName(),
		ManagerID:   u.ManagerID,
		BasicSalary: u.Salary,
		Deductions:  u.Deductions,
		NetSalary:   u.NetSalary(),
	}
	if u.DepartmentName != nil {
		resp.DepartmentName = *u.DepartmentName
	}
	if u.ManagerName != nil {
		resp.ManagerName = *u.ManagerName
	}
	return resp, nil
}

// UpdateDepartment implements user.UserService.
func (s *UserServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) error {
	return s.DepartmentRepository.Update(ctx, req)
}

// ListDepartments implements user.UserService.
func (s *UserServiceImpl) ListDepartments(ctx context.Context) ([]department.Department, error) {
	return s.DepartmentRepository.List(ctx)
}

func toResponses(users []user.User) []user.UserResponse {
	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.UserResponse{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			Role:           u.Role,
			DepartmentID:   u.DepartmentID,
			DepartmentName: u.DepartmentName,
			ManagerID:      u.ManagerID,
			IsActive:       u.IsActive,
		})
	}
	return responses
}
