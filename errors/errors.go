package errors

import "fmt"

// DefaultExitCode is the process status for any failure.
const DefaultExitCode = 1

// Error is a coded error with optional cause and metadata.
type Error struct {
	code     ErrorCode
	category ErrorCategory
	message  string
	cause    error
	metadata map[string]string
	exitCode int
}

// Error returns the message, followed by the cause if there is one.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.category
}

// Retryable reports whether the failure may clear on retry.
func (e *Error) Retryable() bool {
	return e.category.IsRetryable()
}

// ExitCode returns the process exit status this error maps to.
func (e *Error) ExitCode() int {
	return e.exitCode
}

// Metadata returns a copy of the error metadata.
func (e *Error) Metadata() map[string]string {
	result := make(map[string]string, len(e.metadata))
	for k, v := range e.metadata {
		result[k] = v
	}
	return result
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Option configures an Error.
type Option func(*Error)

// WithMetadata adds a metadata key-value pair.
func WithMetadata(key, value string) Option {
	return func(e *Error) {
		if e.metadata == nil {
			e.metadata = make(map[string]string)
		}
		e.metadata[key] = value
	}
}

// WithCause sets the underlying cause.
func WithCause(cause error) Option {
	return func(e *Error) {
		e.cause = cause
	}
}

// New creates an Error with the given code and message.
func New(code ErrorCode, message string, opts ...Option) *Error {
	e := &Error{
		code:     code,
		category: code.DefaultCategory(),
		message:  message,
		exitCode: DefaultExitCode,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// InvalidInput creates a configuration error.
func InvalidInput(message string, opts ...Option) *Error {
	return New(ErrCodeInvalidInput, message, opts...)
}

// SimulatedCrash creates the error returned when a scenario decides to die.
func SimulatedCrash(message string, opts ...Option) *Error {
	return New(ErrCodeSimulatedCrash, message, opts...)
}
