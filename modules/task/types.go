package task

import (
	"context"
	"time"
)

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct{}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	ID int64 `json:"id"`
}

// CreateTaskRequest is the request for creating a task.
// Empty Status and Priority fall back to the stored defaults.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Category    *string `json:"category,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// UpdateTaskRequest is the request for updating a task. Nil fields are left
// unchanged; an empty Description, Category or DueDate clears the field.
type UpdateTaskRequest struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Category    *string `json:"category,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID int64 `json:"id"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}

// ToggleTaskRequest is the request for flipping a task's status.
type ToggleTaskRequest struct {
	ID int64 `json:"id"`
}

// StoreHealthRequest is the request for checking the task store.
type StoreHealthRequest struct{}

// StoreHealthResponse reports whether the task store is reachable.
type StoreHealthResponse struct {
	Connected bool   `json:"connected"`
	Driver    string `json:"driver"`
	Error     string `json:"error,omitempty"`
}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Category    *string   `json:"category"`
	DueDate     *string   `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPort defines the interface for task operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the task module.
// Errors can be inspected with errors.Is(err, domain.ErrNotFound) and
// errors.As(err, **domain.ValidationError).
type TaskPort interface {
	ListTasks(ctx context.Context) (*ListTasksResponse, error)
	GetTask(ctx context.Context, id int64) (*TaskResponse, error)
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, id int64) error
	ToggleTask(ctx context.Context, id int64) (*TaskResponse, error)
	StoreHealth(ctx context.Context) (*StoreHealthResponse, error)
}
