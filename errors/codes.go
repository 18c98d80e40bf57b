package errors

// ErrorCategory classifies errors by their retry semantics.
type ErrorCategory string

const (
	// CategoryTransient indicates a failure that may clear on its own.
	CategoryTransient ErrorCategory = "transient"

	// CategoryPermanent indicates a failure that retrying will not fix.
	CategoryPermanent ErrorCategory = "permanent"

	// CategoryInternal indicates abnormal termination.
	CategoryInternal ErrorCategory = "internal"
)

func (c ErrorCategory) String() string {
	return string(c)
}

// IsRetryable reports whether errors in this category may succeed on retry.
func (c ErrorCategory) IsRetryable() bool {
	return c == CategoryTransient
}

// ErrorCode identifies a specific failure.
type ErrorCode string

const (
	ErrCodeInvalidInput   ErrorCode = "INVALID_INPUT"   // Bad configuration or arguments
	ErrCodeIO             ErrorCode = "IO"              // Heartbeat file could not be written or read
	ErrCodeSimulatedCrash ErrorCode = "SIMULATED_CRASH" // Intentional crash in crash_periodic
	ErrCodeInternal       ErrorCode = "INTERNAL"        // Unexpected internal error
)

func (c ErrorCode) String() string {
	return string(c)
}

// DefaultCategory returns the category an error code belongs to.
func (c ErrorCode) DefaultCategory() ErrorCategory {
	switch c {
	case ErrCodeIO:
		return CategoryTransient
	case ErrCodeInvalidInput:
		return CategoryPermanent
	default:
		return CategoryInternal
	}
}
