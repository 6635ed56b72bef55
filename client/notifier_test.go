package client

import (
	"testing"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
)

type captureLogger struct {
	module string
	infos  []string
	errors []string
}

func (l *captureLogger) Debug(_ string, _ ...any)   {}
func (l *captureLogger) Info(msg string, _ ...any)  { l.infos = append(l.infos, msg) }
func (l *captureLogger) Warn(_ string, _ ...any)    {}
func (l *captureLogger) Error(msg string, _ ...any) { l.errors = append(l.errors, msg) }
func (l *captureLogger) With(_ ...any) types.Logger { return l }
func (l *captureLogger) WithModule(name string) types.Logger {
	l.module = name
	return l
}
func (l *captureLogger) WithError(_ error) types.Logger { return l }

func TestLogNotifier(t *testing.T) {
	logger := &captureLogger{}
	n := NewLogNotifier(logger)

	n.Success("Task created successfully")
	n.Error("Error deleting task")

	assert.Equal(t, "board", logger.module)
	assert.Equal(t, []string{"Task created successfully"}, logger.infos)
	assert.Equal(t, []string{"Error deleting task"}, logger.errors)
}
