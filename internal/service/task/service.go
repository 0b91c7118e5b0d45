package task

import (
	"context"
	"fmt"

	"github.com/wforce/workforce-backend-go/internal/domain/task"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
	"github.com/wforce/workforce-backend-go/internal/pkg/validator"
)

type TaskServiceImpl struct {
	task.TaskRepository
	user.UserRepository
}

func NewTaskService(taskRepo task.TaskRepository, userRepo user.UserRepository) task.TaskService {
	return &TaskServiceImpl{
		TaskRepository: taskRepo,
		UserRepository: userRepo,
	}
}

// Assign implements task.TaskService. Department managers may only hand
// tasks to employees of their own department; admins may assign anywhere.
func (s *TaskServiceImpl) Assign(ctx context.Context, req task.AssignTaskRequest) (*task.TaskResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	assignee, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case user.RoleAdmin:
	case user.RoleDepartmentManager:
		manager, err := s.UserRepository.GetByID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if manager.DepartmentID == nil || assignee.DepartmentID == nil ||
			*manager.DepartmentID != *assignee.DepartmentID {
			return nil, task.ErrForbidden
		}
	default:
		return nil, task.ErrForbidden
	}

	t := &task.UserTask{
		UserID:      req.UserID,
		AssignedBy:  actor.UserID,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if _, err := s.TaskRepository.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	t.UserName = &assignee.Name

	return task.ToResponse(t), nil
}

// Respond implements task.TaskService. Only the assignee may respond, and a
// rejection must carry a reason.
func (s *TaskServiceImpl) Respond(ctx context.Context, req task.RespondTaskRequest) (*task.TaskResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	t, err := s.TaskRepository.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != actor.UserID {
		return nil, task.ErrForbidden
	}
	if t.Status != task.StatusPending {
		return nil, task.ErrAlreadyResolved
	}

	status := task.StatusAccepted
	var reason *string
	if !req.Accept {
		if req.RejectionReason == nil || validator.IsEmpty(*req.RejectionReason) {
			return nil, task.ErrReasonRequired
		}
		status = task.StatusRejected
		reason = req.RejectionReason
	}

	if err := s.TaskRepository.Resolve(ctx, t.ID, status, reason); err != nil {
		return nil, err
	}

	t.Status = status
	t.RejectionReason = reason
	return task.ToResponse(t), nil
}

// MyTasks implements task.TaskService.
func (s *TaskServiceImpl) MyTasks(ctx context.Context) ([]task.TaskResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.TaskRepository.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return toResponses(tasks), nil
}

// AssignedTasks implements task.TaskService.
func (s *TaskServiceImpl) AssignedTasks(ctx context.Context) ([]task.TaskResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.TaskRepository.ListByAssigner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return toResponses(tasks), nil
}

func toResponses(tasks []task.UserTask) []task.TaskResponse {
	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, *task.ToResponse(&t))
	}
	return responses
}
