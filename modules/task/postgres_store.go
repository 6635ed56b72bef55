package task

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/devwithkudzie/task-management/domain/task"
)

//go:embed schema/postgres.sql
var postgresSchema string

const taskColumns = `id, title, description, status, priority, category, due_date, created_at, updated_at`

const (
	listTasksSQL = `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, id DESC`

	getTaskSQL = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	insertTaskSQL = `INSERT INTO tasks (title, description, status, priority, category, due_date)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + taskColumns

	replaceTaskSQL = `UPDATE tasks
SET title = $2, description = $3, status = $4, priority = $5, category = $6, due_date = $7,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + taskColumns

	deleteTaskSQL = `DELETE FROM tasks WHERE id = $1`

	toggleTaskSQL = `UPDATE tasks
SET status = CASE WHEN status = 'completed' THEN 'pending' ELSE 'completed' END,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + taskColumns
)

// PostgresStore is a Store backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// OpenPostgresStore connects to dsn and verifies the connection. The schema is
// created when autoMigrate is set.
func OpenPostgresStore(ctx context.Context, dsn string, autoMigrate bool) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := NewPostgresStore(pool)
	if autoMigrate {
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return store, nil
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the tasks table and its index if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// ListAll returns every task ordered by creation time, newest first.
func (s *PostgresStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	rows, err := s.pool.Query(ctx, listTasksSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID retrieves a task by its id.
func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx, getTaskSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return t, nil
}

// Insert stores a new task and refreshes t from the inserted row.
func (s *PostgresStore) Insert(ctx context.Context, t *domain.Task) error {
	t.ApplyDefaults()
	if err := t.Validate(); err != nil {
		return err
	}

	stored, err := scanTask(s.pool.QueryRow(ctx, insertTaskSQL,
		t.Title, t.Description, string(t.Status), string(t.Priority), t.Category, toPgDate(t.DueDate),
	))
	if err != nil {
		if vErr := constraintError(err); vErr != nil {
			return vErr
		}
		return fmt.Errorf("failed to create task: %w", err)
	}
	*t = *stored
	return nil
}

// Replace overwrites the mutable columns of an existing task.
func (s *PostgresStore) Replace(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	stored, err := scanTask(s.pool.QueryRow(ctx, replaceTaskSQL,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority), t.Category, toPgDate(t.DueDate),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if vErr := constraintError(err); vErr != nil {
			return vErr
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	*t = *stored
	return nil
}

// Remove deletes a task permanently.
func (s *PostgresStore) Remove(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, deleteTaskSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ToggleStatus flips a task between pending and completed.
func (s *PostgresStore) ToggleStatus(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx, toggleTaskSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}
	return t, nil
}

// Ping verifies the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Driver returns the store's driver name.
func (s *PostgresStore) Driver() string {
	return "postgres"
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t           domain.Task
		description pgtype.Text
		status      string
		priority    string
		category    pgtype.Text
		dueDate     pgtype.Date
	)
	if err := row.Scan(
		&t.ID, &t.Title, &description, &status, &priority, &category, &dueDate, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = domain.Status(status)
	t.Priority = domain.Priority(priority)
	if description.Valid {
		t.Description = &description.String
	}
	if category.Valid {
		t.Category = &category.String
	}
	if dueDate.Valid {
		d := dueDate.Time
		t.DueDate = &d
	}
	return &t, nil
}

func toPgDate(d *time.Time) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *d, Valid: true}
}

// constraintError maps NOT NULL, CHECK and length violations to a
// *domain.ValidationError. It returns nil for any other error.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case "23502", "23514", "22001":
	default:
		return nil
	}

	field := pgErr.ColumnName
	if field == "" {
		field = columnFromConstraint(pgErr.ConstraintName)
	}
	if field == "due_date" {
		field = "dueDate"
	}
	return &domain.ValidationError{Field: field, Message: pgErr.Message}
}

// columnFromConstraint extracts the column from a default constraint name
// such as tasks_title_check.
func columnFromConstraint(name string) string {
	for _, column := range []string{"title", "status", "priority", "category", "description"} {
		if name == "tasks_"+column+"_check" {
			return column
		}
	}
	return "task"
}
