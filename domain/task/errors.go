package task

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotFound is returned when no task matches the given id.
var ErrNotFound = errors.New("task not found")

// ValidationError reports a field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Message)
}

var validationPattern = regexp.MustCompile(`validation failed on "([A-Za-z]+)": ([^\n]+)`)

// RestoreError recovers ErrNotFound and *ValidationError from an error that
// crossed a serialization boundary and lost its type. Other errors are
// returned unchanged.
func RestoreError(err error) error {
	if err == nil {
		return nil
	}

	var vErr *ValidationError
	if errors.Is(err, ErrNotFound) || errors.As(err, &vErr) {
		return err
	}

	msg := err.Error()
	if m := validationPattern.FindStringSubmatch(msg); m != nil {
		return &ValidationError{Field: m[1], Message: strings.TrimSpace(m[2])}
	}
	if strings.Contains(msg, ErrNotFound.Error()) {
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return err
}
