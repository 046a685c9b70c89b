// Package apperr defines the error categories shared by the storefront core.
//
// Callers classify failures with errors.Is against the sentinels below; the
// concrete types carry the detail that gets rendered to the client.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrRemote        = errors.New("remote operation failed")
	ErrNotFound      = errors.New("not found")
)

// ValidationError reports missing or malformed input. It is always raised
// before any call to the persistence service.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validation builds a ValidationError for the given field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConfigurationError reports that the persistence service (or another
// collaborator) is not configured or not reachable at all.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return "configuration: " + e.Reason }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// Configuration builds a ConfigurationError.
func Configuration(reason string) error {
	return &ConfigurationError{Reason: reason}
}

// RemoteError wraps a failed fetch/insert/update/delete against the
// persistence service. The underlying message is kept verbatim.
type RemoteError struct {
	Op       string
	Err      error
	NotFound bool
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + ErrNotFound.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrRemote:
		return true
	case ErrNotFound:
		return e.NotFound
	}
	return false
}

// Remote wraps err as a RemoteError for op. A nil err yields nil, and errors
// that are already classified are returned unchanged.
func Remote(op string, err error) error {
	if err == nil {
		return nil
	}
	var re *RemoteError
	if errors.As(err, &re) || errors.Is(err, ErrConfiguration) || errors.Is(err, ErrValidation) {
		return err
	}
	return &RemoteError{Op: op, Err: err}
}

// NotFound reports that op found no matching record.
func NotFound(op string) error {
	return &RemoteError{Op: op, NotFound: true}
}

// IsRetryable reports whether resubmitting the same request may succeed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRemote) && !errors.Is(err, ErrNotFound)
}
