package api

import (
	"errors"
	"fmt"
)

// BackendError is a well-formed backend response whose success flag is
// false. The message is what the backend wants the user to read.
type BackendError struct {
	Op      string
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: backend rejected request: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: backend rejected request (status %d)", e.Op, e.Status)
}

// UserMessage returns the text suitable for a transient notification.
func (e *BackendError) UserMessage() string {
	return e.Message
}

// AsBackendError unwraps err into a *BackendError if possible.
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
