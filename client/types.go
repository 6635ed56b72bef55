package client

import (
	"fmt"
	"time"

	domain "github.com/devwithkudzie/task-management/domain/task"
)

// Categories is the suggested set of task categories. Tasks may carry any
// other category as well.
var Categories = []string{"Work", "Personal", "Shopping", "Health", "Education", "Home"}

// Task is the client-side view of a stored task.
type Task struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Status      domain.Status   `json:"status"`
	Priority    domain.Priority `json:"priority"`
	Category    *string         `json:"category"`
	DueDate     *string         `json:"dueDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TaskInput carries the fields of a create or update request. Nil fields are
// omitted; on update an empty Description, Category or DueDate clears it.
type TaskInput struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *domain.Status   `json:"status,omitempty"`
	Priority    *domain.Priority `json:"priority,omitempty"`
	Category    *string          `json:"category,omitempty"`
	DueDate     *string          `json:"dueDate,omitempty"`
}

// Health is the server's health report.
type Health struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	DBConnection string    `json:"dbConnection"`
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Field      string `json:"field,omitempty"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api error %d on %s: %s", e.StatusCode, e.Field, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// String returns a pointer to s, for building TaskInput values.
func String(s string) *string {
	return &s
}
