package errors

import (
	"errors"
	"io/fs"
	"os"
)

// Wrap adds context to err while keeping the chain intact. A coded error
// keeps its code, category and exit code. Filesystem errors map to IO,
// anything else to INTERNAL. Wrap returns nil for a nil err.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	var coded *Error
	if errors.As(err, &coded) {
		wrapped := &Error{
			code:     coded.code,
			category: coded.category,
			message:  message,
			cause:    err,
			metadata: coded.Metadata(),
			exitCode: coded.exitCode,
		}
		for _, opt := range opts {
			opt(wrapped)
		}
		return wrapped
	}

	opts = append(opts, WithCause(err))
	if isFilesystemError(err) {
		return New(ErrCodeIO, message, opts...)
	}
	return New(ErrCodeInternal, message, opts...)
}

// WrapWithCode wraps err under an explicit code.
func WrapWithCode(err error, code ErrorCode, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}
	return New(code, message, append(opts, WithCause(err))...)
}

func isFilesystemError(err error) bool {
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	return errors.As(err, &pathErr) || errors.As(err, &linkErr)
}

// Is reports whether any error in the chain carries code.
func Is(err error, code ErrorCode) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.code == code
	}
	return false
}

// IsRetryable reports whether err is a coded, retryable error.
func IsRetryable(err error) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Retryable()
	}
	return false
}

// Code extracts the error code, or "" for uncoded errors.
func Code(err error) ErrorCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.code
	}
	return ""
}

// ExitCode maps err to a process exit status: 0 for nil, the coded exit
// code when present, DefaultExitCode otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.exitCode
	}
	return DefaultExitCode
}

// GetMetadata extracts metadata from a coded error, or nil.
func GetMetadata(err error) map[string]string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Metadata()
	}
	return nil
}
