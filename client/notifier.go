package client

import "github.com/go-monolith/mono/pkg/types"

// Notifier receives user-facing messages about board operations.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	logger types.Logger
}

// NewLogNotifier creates a Notifier backed by logger.
func NewLogNotifier(logger types.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithModule("board")}
}

func (n *LogNotifier) Success(message string) {
	n.logger.Info(message)
}

func (n *LogNotifier) Error(message string) {
	n.logger.Error(message)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
