// Package errors provides standardized error handling for chardash.
// It defines the error kinds raised by the API client, the state store,
// configuration loading and spreadsheet export, plus helpers for creating,
// wrapping and classifying them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Remote API error kinds
	RemoteFetchFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// State error kinds
	IllegalTransition
	// Export error kinds
	ExportFailed
	InvalidInputData
)

// Common error constants for frequently occurring errors
var (
	ErrEmptyDataset = NewExportError("nothing to export", "", nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// RemoteFetchError is returned by the API client for transport failures,
// non-2xx responses and unreadable bodies.
type RemoteFetchError struct {
	ApplicationError
	url        string
	statusCode int
}

// NewRemoteFetchError creates a new remote fetch error. statusCode is 0 when
// no response was received.
func NewRemoteFetchError(url string, statusCode int, err error) *RemoteFetchError {
	msg := "remote fetch failed"
	if statusCode != 0 {
		msg = fmt.Sprintf("remote fetch failed with status %d", statusCode)
	}
	return &RemoteFetchError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: RemoteFetchFailed,
		},
		url:        url,
		statusCode: statusCode,
	}
}

// Error returns the remote fetch error message
func (e *RemoteFetchError) Error() string {
	if e.url == "" {
		return e.ApplicationError.Error()
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.msg, e.url, e.err)
	}
	return fmt.Sprintf("%s: %s", e.msg, e.url)
}

// URL returns the request URL
func (e *RemoteFetchError) URL() string {
	return e.url
}

// StatusCode returns the HTTP status, or 0 for transport failures
func (e *RemoteFetchError) StatusCode() int {
	return e.statusCode
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// TransitionError is returned when the store is asked to move between two
// loading phases that are not connected.
type TransitionError struct {
	ApplicationError
	from string
	to   string
}

// NewTransitionError creates a new transition error
func NewTransitionError(from, to string) *TransitionError {
	return &TransitionError{
		ApplicationError: ApplicationError{
			msg:  "illegal phase transition",
			kind: IllegalTransition,
		},
		from: from,
		to:   to,
	}
}

// Error returns the transition error message
func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", e.msg, e.from, e.to)
}

// From returns the phase the store was in
func (e *TransitionError) From() string { return e.from }

// To returns the phase that was requested
func (e *TransitionError) To() string { return e.to }

// ExportError represents errors writing a spreadsheet
type ExportError struct {
	ApplicationError
	path string
}

// NewExportError creates a new export error
func NewExportError(msg string, path string, err error) *ExportError {
	return &ExportError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: ExportFailed,
		},
		path: path,
	}
}

// Error returns the export error message
func (e *ExportError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *ExportError) Path() string {
	return e.path
}

// Is matches any two export errors with the same message, so callers can
// test against ErrEmptyDataset.
func (e *ExportError) Is(target error) bool {
	t, ok := target.(*ExportError)
	return ok && t.msg == e.msg
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsRemoteFetch checks if the error came from the remote API
func IsRemoteFetch(err error) bool {
	var fetchErr *RemoteFetchError
	return errors.As(err, &fetchErr)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsIllegalTransition checks if the error is a rejected phase transition
func IsIllegalTransition(err error) bool {
	var transErr *TransitionError
	return errors.As(err, &transErr)
}

// IsExportError checks if the error is an export error
func IsExportError(err error) bool {
	var exportErr *ExportError
	return errors.As(err, &exportErr)
}

// InvalidInputError represents errors related to invalid input data
type InvalidInputError struct {
	ApplicationError
	context map[string]interface{}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(msg string, err error) *InvalidInputError {
	return &InvalidInputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidInputData,
		},
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the invalid input error
func (e *InvalidInputError) WithContext(key string, value interface{}) *InvalidInputError {
	e.context[key] = value
	return e
}

// Context returns the context information associated with the error
func (e *InvalidInputError) Context() map[string]interface{} {
	return e.context
}

// IsInvalidInputError checks if the error is an invalid input error
func IsInvalidInputError(err error) bool {
	var inputErr *InvalidInputError
	return errors.As(err, &inputErr)
}
