package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	domain "github.com/devwithkudzie/task-management/domain/task"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TaskPort interface.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// callService invokes a task service. Errors that crossed the service boundary
// are restored to domain.ErrNotFound or *domain.ValidationError where possible.
func callService[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return domain.RestoreError(fmt.Errorf("%s service call failed: %w", service, err))
	}
	return nil
}

// ListTasks lists all tasks via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := callService(ctx, a.container, "list-tasks", &ListTasksRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTask retrieves a task by ID via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, id int64) (*TaskResponse, error) {
	var resp TaskResponse
	if err := callService(ctx, a.container, "get-task", &GetTaskRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateTask creates a new task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := callService(ctx, a.container, "create-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateTask updates a task via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := callService(ctx, a.container, "update-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, id int64) error {
	var resp DeleteTaskResponse
	if err := callService(ctx, a.container, "delete-task", &DeleteTaskRequest{ID: id}, &resp); err != nil {
		return err
	}
	if !resp.Deleted {
		return fmt.Errorf("task not deleted: %d", id)
	}
	return nil
}

// ToggleTask flips a task's status via the toggle-task service.
func (a *taskAdapter) ToggleTask(ctx context.Context, id int64) (*TaskResponse, error) {
	var resp TaskResponse
	if err := callService(ctx, a.container, "toggle-task", &ToggleTaskRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StoreHealth reports the task store's connectivity via the store-health service.
func (a *taskAdapter) StoreHealth(ctx context.Context) (*StoreHealthResponse, error) {
	var resp StoreHealthResponse
	if err := callService(ctx, a.container, "store-health", &StoreHealthRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
