package task

import (
	"context"

	domain "github.com/devwithkudzie/task-management/domain/task"
)

// Store persists tasks in the tasks table.
//
// Insert and Replace validate the row before writing and return a
// *domain.ValidationError when it is rejected. Operations addressing a
// missing id return domain.ErrNotFound.
type Store interface {
	// ListAll returns every task, newest first.
	ListAll(ctx context.Context) ([]*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	// Insert assigns the id, timestamps and defaults on t.
	Insert(ctx context.Context, t *domain.Task) error
	// Replace overwrites every mutable column of the row identified by t.ID
	// and refreshes t from the stored row.
	Replace(ctx context.Context, t *domain.Task) error
	Remove(ctx context.Context, id int64) error
	// ToggleStatus flips the status in a single statement and returns the
	// updated row.
	ToggleStatus(ctx context.Context, id int64) (*domain.Task, error)
	Ping(ctx context.Context) error
	Driver() string
	Close() error
}
