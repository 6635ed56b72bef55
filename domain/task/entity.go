package task

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Status represents the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Column limits shared by every store.
const (
	MaxTitleLength    = 255
	MaxCategoryLength = 50
)

// DateLayout is the wire format of a due date.
const DateLayout = "2006-01-02"

// Task is the core domain entity representing a todo item.
type Task struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      Status     `gorm:"size:20;not null;default:pending" json:"status"`
	Priority    Priority   `gorm:"size:10;not null;default:medium" json:"priority"`
	Category    *string    `gorm:"size:50" json:"category"`
	DueDate     *time.Time `gorm:"type:date" json:"dueDate"`
	CreatedAt   time.Time  `gorm:"index:idx_tasks_created_at,sort:desc" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}

// ApplyDefaults fills in status and priority when they were omitted.
func (t *Task) ApplyDefaults() {
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

// Validate checks the invariants every stored task must satisfy.
func (t *Task) Validate() error {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: "title must be at most 255 characters"}
	}
	if !t.Status.Valid() {
		return &ValidationError{Field: "status", Message: "status must be one of pending, completed"}
	}
	if !t.Priority.Valid() {
		return &ValidationError{Field: "priority", Message: "priority must be one of low, medium, high"}
	}
	if t.Category != nil && utf8.RuneCountInString(*t.Category) > MaxCategoryLength {
		return &ValidationError{Field: "category", Message: "category must be at most 50 characters"}
	}
	return nil
}

// ParseDueDate accepts either a plain date or an RFC 3339 timestamp and
// returns the calendar date at midnight UTC.
func ParseDueDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if d, err := time.Parse(DateLayout, value); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "dueDate", Message: "dueDate must be a date (YYYY-MM-DD)"}
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDueDate renders a due date in wire format, or nil when unset.
func FormatDueDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format(DateLayout)
	return &s
}

// NormalizeOptional trims an optional text field and maps blank values to nil.
func NormalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
