package client

import (
	"strings"

	domain "github.com/devwithkudzie/task-management/domain/task"
)

// FilterAll matches any status or priority.
const FilterAll = "all"

// Filter selects tasks by title search, status and priority. Empty fields
// and FilterAll match everything.
type Filter struct {
	Search   string
	Status   string
	Priority string
}

// Match reports whether t satisfies every criterion of f.
func (f Filter) Match(t Task) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Status != "" && f.Status != FilterAll && string(t.Status) != f.Status {
		return false
	}
	if f.Priority != "" && f.Priority != FilterAll && string(t.Priority) != f.Priority {
		return false
	}
	return true
}

// Apply returns the tasks matching f, keeping their order.
func (f Filter) Apply(tasks []Task) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			result = append(result, t)
		}
	}
	return result
}

// Stats summarizes a task list.
type Stats struct {
	Total     int `json:"totalTasks"`
	Completed int `json:"completedTasks"`
	Pending   int `json:"pendingTasks"`
	Priority  int `json:"priorityTasks"`
}

// ComputeStats counts tasks by status and high priority.
func ComputeStats(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusCompleted:
			s.Completed++
		case domain.StatusPending:
			s.Pending++
		}
		if t.Priority == domain.PriorityHigh {
			s.Priority++
		}
	}
	return s
}
