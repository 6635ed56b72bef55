package task

import (
	"context"
	"strings"
	"time"

	"github.com/go-monolith/mono"

	domain "github.com/devwithkudzie/task-management/domain/task"
	"github.com/devwithkudzie/task-management/events"
)

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.store.ListAll(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(t))
	}
	return response, nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.store.FindByID(ctx, req.ID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(t), nil
}

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	newTask := &domain.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: domain.NormalizeOptional(req.Description),
		Status:      domain.Status(req.Status),
		Priority:    domain.Priority(req.Priority),
		Category:    domain.NormalizeOptional(req.Category),
	}
	if due := domain.NormalizeOptional(req.DueDate); due != nil {
		d, err := domain.ParseDueDate(*due)
		if err != nil {
			return TaskResponse{}, err
		}
		newTask.DueDate = &d
	}

	if err := m.store.Insert(ctx, newTask); err != nil {
		return TaskResponse{}, err
	}

	if m.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    newTask.ID,
			Title:     newTask.Title,
			Priority:  string(newTask.Priority),
			CreatedAt: newTask.CreatedAt,
		}
		if newTask.Category != nil {
			event.Category = *newTask.Category
		}
		if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskCreated event", "taskID", newTask.ID, "error", err)
		}
	}

	return toTaskResponse(newTask), nil
}

// updateTask handles the update-task service request. It loads the row,
// applies the provided fields and writes the result back.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.store.FindByID(ctx, req.ID)
	if err != nil {
		return TaskResponse{}, err
	}

	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = domain.NormalizeOptional(req.Description)
	}
	if req.Status != nil {
		t.Status = domain.Status(*req.Status)
	}
	if req.Priority != nil {
		t.Priority = domain.Priority(*req.Priority)
	}
	if req.Category != nil {
		t.Category = domain.NormalizeOptional(req.Category)
	}
	if req.DueDate != nil {
		if due := domain.NormalizeOptional(req.DueDate); due != nil {
			d, err := domain.ParseDueDate(*due)
			if err != nil {
				return TaskResponse{}, err
			}
			t.DueDate = &d
		} else {
			t.DueDate = nil
		}
	}

	if err := m.store.Replace(ctx, t); err != nil {
		return TaskResponse{}, err
	}

	if m.eventBus != nil {
		event := events.TaskUpdatedEvent{
			TaskID:    t.ID,
			Title:     t.Title,
			Status:    string(t.Status),
			Priority:  string(t.Priority),
			UpdatedAt: t.UpdatedAt,
		}
		if err := events.TaskUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskUpdated event", "taskID", t.ID, "error", err)
		}
	}

	return toTaskResponse(t), nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.store.Remove(ctx, req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}

	if m.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    req.ID,
			DeletedAt: time.Now().UTC(),
		}
		if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskDeleted event", "taskID", req.ID, "error", err)
		}
	}

	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// toggleTask handles the toggle-task service request.
func (m *TaskModule) toggleTask(ctx context.Context, req ToggleTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.store.ToggleStatus(ctx, req.ID)
	if err != nil {
		return TaskResponse{}, err
	}

	if m.eventBus != nil {
		event := events.TaskStatusToggledEvent{
			TaskID:    t.ID,
			Title:     t.Title,
			Status:    string(t.Status),
			ToggledAt: t.UpdatedAt,
		}
		if err := events.TaskStatusToggledV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskStatusToggled event", "taskID", t.ID, "error", err)
		}
	}

	return toTaskResponse(t), nil
}

// storeHealth handles the store-health service request. Store failures are
// reported in the response, not as an error.
func (m *TaskModule) storeHealth(ctx context.Context, _ StoreHealthRequest, _ *mono.Msg) (StoreHealthResponse, error) {
	if m.store == nil {
		return StoreHealthResponse{Connected: false, Error: "store not initialized"}, nil
	}

	resp := StoreHealthResponse{Driver: m.store.Driver()}
	if err := m.store.Ping(ctx); err != nil {
		resp.Error = err.Error()
		return resp, nil
	}
	resp.Connected = true
	return resp, nil
}

// toTaskResponse converts a domain Task to a TaskResponse.
func toTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Category:    t.Category,
		DueDate:     domain.FormatDueDate(t.DueDate),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
