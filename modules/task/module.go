package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/devwithkudzie/task-management/config"
	"github.com/devwithkudzie/task-management/events"
)

// TaskModule provides task management services (core domain).
type TaskModule struct {
	cfg       config.Config
	store     Store
	ownsStore bool
	eventBus  mono.EventBus
	logger    types.Logger
}

var (
	_ mono.Module                = (*TaskModule)(nil)
	_ mono.ServiceProviderModule = (*TaskModule)(nil)
	_ mono.EventEmitterModule    = (*TaskModule)(nil)
	_ mono.HealthCheckableModule = (*TaskModule)(nil)
)

// NewModule creates a TaskModule that opens its store from cfg on Start.
func NewModule(cfg config.Config, logger types.Logger) *TaskModule {
	return &TaskModule{
		cfg:    cfg,
		logger: logger,
	}
}

// NewModuleWithStore creates a TaskModule over an existing store.
// The caller keeps ownership of the store.
func NewModuleWithStore(store Store, logger types.Logger) *TaskModule {
	return &TaskModule{
		store:  store,
		logger: logger,
	}
}

func (m *TaskModule) Name() string {
	return "task"
}

func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskStatusToggledV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-task", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create-task", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-task", json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register update-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-task", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "toggle-task", json.Unmarshal, json.Marshal, m.toggleTask,
	); err != nil {
		return fmt.Errorf("failed to register toggle-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "store-health", json.Unmarshal, json.Marshal, m.storeHealth,
	); err != nil {
		return fmt.Errorf("failed to register store-health service: %w", err)
	}

	m.logger.Info("Registered services",
		"services", []string{"list-tasks", "get-task", "create-task", "update-task", "delete-task", "toggle-task", "store-health"})
	return nil
}

// Start opens the configured store unless one was injected.
func (m *TaskModule) Start(ctx context.Context) error {
	if m.eventBus == nil {
		m.logger.Warn("eventBus not set, events will not be published")
	}

	if m.store != nil {
		m.logger.Info("Task module started with injected store", "driver", m.store.Driver())
		return nil
	}

	store, err := openStore(ctx, m.cfg)
	if err != nil {
		return err
	}
	m.store = store
	m.ownsStore = true

	m.logger.Info("Task module started", "driver", store.Driver(), "autoMigrate", m.cfg.AutoMigrate)
	return nil
}

// Stop closes the store if the module opened it.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.store == nil || !m.ownsStore {
		return nil
	}

	m.logger.Info("Closing task store...")
	if err := m.store.Close(); err != nil {
		return fmt.Errorf("failed to close task store: %w", err)
	}
	m.logger.Info("Task store closed")
	return nil
}

// Health pings the store.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "store not initialized",
		}
	}

	if err := m.store.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": m.store.Driver(),
		},
	}
}

func openStore(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dsn, err := cfg.PostgresDSN()
		if err != nil {
			return nil, err
		}
		return OpenPostgresStore(ctx, dsn, cfg.AutoMigrate)
	case config.DriverSQLite, "":
		return OpenGormStore(cfg.DBPath, cfg.AutoMigrate, cfg.DBDebug)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}
