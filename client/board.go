package client

import (
	"context"
	"errors"
	"sync"
)

// API is the task API surface the board depends on.
type API interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, in TaskInput) (Task, error)
	Update(ctx context.Context, id int64, in TaskInput) (Task, error)
	Delete(ctx context.Context, id int64) error
	Toggle(ctx context.Context, id int64) (Task, error)
}

// Board mirrors the server's task list in memory. Every mutation goes to
// the server first; the local list changes only after the server confirms.
// Each outcome is reported to the Notifier.
type Board struct {
	api      API
	notifier Notifier

	mu     sync.RWMutex
	tasks  []Task
	loaded bool
}

// NewBoard creates an empty board. A nil notifier discards messages.
func NewBoard(api API, notifier Notifier) *Board {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Board{
		api:      api,
		notifier: notifier,
		tasks:    make([]Task, 0),
	}
}

// Load replaces the local list with the server's.
func (b *Board) Load(ctx context.Context) error {
	tasks, err := b.api.List(ctx)
	if err != nil {
		b.notifier.Error(failureMessage(err, "Error fetching tasks"))
		return err
	}

	b.mu.Lock()
	b.tasks = append(make([]Task, 0, len(tasks)), tasks...)
	b.loaded = true
	b.mu.Unlock()
	return nil
}

// Loaded reports whether Load has succeeded at least once.
func (b *Board) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded
}

// Add creates a task and puts it at the front of the list.
func (b *Board) Add(ctx context.Context, in TaskInput) (Task, error) {
	created, err := b.api.Create(ctx, in)
	if err != nil {
		b.notifier.Error(failureMessage(err, "Error creating task"))
		return Task{}, err
	}

	b.mu.Lock()
	b.tasks = append([]Task{created}, b.tasks...)
	b.mu.Unlock()

	b.notifier.Success("Task created successfully")
	return created, nil
}

// Update edits a task and replaces the matching local entry.
func (b *Board) Update(ctx context.Context, id int64, in TaskInput) (Task, error) {
	updated, err := b.api.Update(ctx, id, in)
	if err != nil {
		b.notifier.Error(failureMessage(err, "Error updating task"))
		return Task{}, err
	}

	b.replace(updated)
	b.notifier.Success("Task updated successfully")
	return updated, nil
}

// Toggle flips a task's status and replaces the matching local entry.
func (b *Board) Toggle(ctx context.Context, id int64) (Task, error) {
	toggled, err := b.api.Toggle(ctx, id)
	if err != nil {
		b.notifier.Error(failureMessage(err, "Error toggling task status"))
		return Task{}, err
	}

	b.replace(toggled)
	b.notifier.Success("Task status updated successfully")
	return toggled, nil
}

// Remove deletes a task and drops the matching local entry.
func (b *Board) Remove(ctx context.Context, id int64) error {
	if err := b.api.Delete(ctx, id); err != nil {
		b.notifier.Error(failureMessage(err, "Error deleting task"))
		return err
	}

	b.mu.Lock()
	kept := b.tasks[:0]
	for _, t := range b.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	b.tasks = kept
	b.mu.Unlock()

	b.notifier.Success("Task deleted successfully")
	return nil
}

// Tasks returns a copy of the local list.
func (b *Board) Tasks() []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]Task, len(b.tasks))
	copy(result, b.tasks)
	return result
}

// Stats summarizes the local list without contacting the server.
func (b *Board) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ComputeStats(b.tasks)
}

// Filter returns the local tasks matching f.
func (b *Board) Filter(f Filter) []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return f.Apply(b.tasks)
}

func (b *Board) replace(t Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.tasks {
		if b.tasks[i].ID == t.ID {
			b.tasks[i] = t
			return
		}
	}
}

// failureMessage prefers the server's error text over fallback.
func failureMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
