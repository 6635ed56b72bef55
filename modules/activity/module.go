package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/devwithkudzie/task-management/events"
)

// maxEntries bounds the in-memory activity history.
const maxEntries = 100

// Entry is a single recorded task activity.
type Entry struct {
	TaskID  int64     `json:"task_id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// ActivityModule subscribes to task events and writes them to the
// structured log. The most recent entries are kept in memory.
type ActivityModule struct {
	logger  types.Logger
	entries []Entry
	mu      sync.RWMutex
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)
var _ mono.ServiceProviderModule = (*ActivityModule)(nil)

// RecentActivityRequest asks for the latest entries. A Limit of zero or
// less returns everything kept.
type RecentActivityRequest struct {
	Limit int `json:"limit"`
}

// RecentActivityResponse lists entries, oldest first.
type RecentActivityResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

func NewModule(logger types.Logger) *ActivityModule {
	return &ActivityModule{
		logger:  logger,
		entries: make([]Entry, 0),
	}
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "recent-activity", json.Unmarshal, json.Marshal, m.recentActivity,
	); err != nil {
		return fmt.Errorf("failed to register recent-activity service: %w", err)
	}

	m.logger.Info("Registered services", "services", []string{"recent-activity"})
	return nil
}

func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskStatusToggledV1, m.handleTaskStatusToggled, m); err != nil {
		return fmt.Errorf("failed to register TaskStatusToggled consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers",
		"events", []string{"TaskCreated.v1", "TaskUpdated.v1", "TaskStatusToggled.v1", "TaskDeleted.v1"})
	return nil
}

func (m *ActivityModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.logger.Info("Task created", "taskID", event.TaskID, "title", event.Title, "priority", event.Priority)
	m.record(event.TaskID, "task_created", fmt.Sprintf("Task '%s' created", event.Title), event.CreatedAt)
	return nil
}

func (m *ActivityModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.logger.Info("Task updated", "taskID", event.TaskID, "title", event.Title)
	m.record(event.TaskID, "task_updated", fmt.Sprintf("Task '%s' updated", event.Title), event.UpdatedAt)
	return nil
}

func (m *ActivityModule) handleTaskStatusToggled(_ context.Context, event events.TaskStatusToggledEvent, _ *mono.Msg) error {
	m.logger.Info("Task status toggled", "taskID", event.TaskID, "status", event.Status)
	m.record(event.TaskID, "task_status_toggled", fmt.Sprintf("Task '%s' marked %s", event.Title, event.Status), event.ToggledAt)
	return nil
}

func (m *ActivityModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.logger.Info("Task deleted", "taskID", event.TaskID)
	m.record(event.TaskID, "task_deleted", fmt.Sprintf("Task %d deleted", event.TaskID), event.DeletedAt)
	return nil
}

func (m *ActivityModule) record(taskID int64, entryType, message string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, Entry{
		TaskID:  taskID,
		Type:    entryType,
		Message: message,
		At:      at,
	})
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

func (m *ActivityModule) recentActivity(_ context.Context, req RecentActivityRequest, _ *mono.Msg) (RecentActivityResponse, error) {
	entries := m.recent()
	if req.Limit > 0 && req.Limit < len(entries) {
		entries = entries[len(entries)-req.Limit:]
	}
	return RecentActivityResponse{Entries: entries, Total: len(entries)}, nil
}

// recent returns a copy of the recorded entries, oldest first.
func (m *ActivityModule) recent() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entry, len(m.entries))
	copy(result, m.entries)
	return result
}

func (m *ActivityModule) Start(_ context.Context) error {
	m.logger.Info("Activity module started - listening for task events")
	return nil
}

func (m *ActivityModule) Stop(_ context.Context) error {
	m.logger.Info("Activity module stopped")
	return nil
}
