package task

import "context"

type TaskService interface {
	// Assign creates a pending task. Department managers may only assign
	// within their own department.
	Assign(ctx context.Context, req AssignTaskRequest) (*TaskResponse, error)

	// Respond lets the assignee accept or reject their own pending task.
	// Rejecting requires a reason.
	Respond(ctx context.Context, req RespondTaskRequest) (*TaskResponse, error)

	// MyTasks lists the authenticated user's tasks, newest first.
	MyTasks(ctx context.Context) ([]TaskResponse, error)

	// AssignedTasks lists tasks the authenticated manager has handed out.
	AssignedTasks(ctx context.Context) ([]TaskResponse, error)
}
