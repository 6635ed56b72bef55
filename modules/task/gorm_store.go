package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/devwithkudzie/task-management/domain/task"
)

// GormStore is a Store backed by GORM over SQLite.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// OpenGormStore opens the SQLite database at path. The schema is synced when
// autoMigrate is set. debug turns on GORM's SQL logging.
func OpenGormStore(path string, autoMigrate, debug bool) (*GormStore, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every connection to :memory: gets its own empty database.
	if strings.Contains(path, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	store := NewGormStore(db)
	if autoMigrate {
		if err := store.Migrate(); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}

// NewGormStore wraps an open GORM connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the tasks table.
func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// ListAll returns every task ordered by creation time, newest first.
func (s *GormStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID retrieves a task by its id.
func (s *GormStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// Insert stores a new task.
func (s *GormStore) Insert(ctx context.Context, t *domain.Task) error {
	t.ApplyDefaults()
	if err := t.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	t.ID = 0
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Replace overwrites the mutable columns of an existing task.
func (s *GormStore) Replace(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", t.ID).Updates(map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"priority":    t.Priority,
		"category":    t.Category,
		"due_date":    t.DueDate,
		"updated_at":  time.Now().UTC(),
	})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	stored, err := s.FindByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *stored
	return nil
}

// Remove deletes a task permanently.
func (s *GormStore) Remove(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ToggleStatus flips a task between pending and completed.
func (s *GormStore) ToggleStatus(ctx context.Context, id int64) (*domain.Task, error) {
	result := s.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", id).Updates(map[string]any{
		"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE ? END",
			domain.StatusCompleted, domain.StatusPending, domain.StatusCompleted),
		"updated_at": time.Now().UTC(),
	})
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// Ping verifies the database connection.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Driver returns the store's driver name.
func (s *GormStore) Driver() string {
	return "sqlite"
}

// Close closes the database connection.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
