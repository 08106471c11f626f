package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies service-layer failures so controllers can map them to
// HTTP statuses without inspecting error strings.
type ErrorCode int

const (
	ErrDatabase ErrorCode = iota + 1000
	ErrMemberNotFound
	ErrFeedNotFound
	ErrRecruitmentNotFound
	ErrFollowNotFound

	ErrSelfFollow
	ErrDuplicateFollow
	ErrDuplicateEmail
	ErrDuplicateNickname

	ErrWriterMismatch
	ErrRecruitmentExpired

	ErrInvalidInput
	ErrInternal
)

// ServiceError carries a code, a caller-facing message and an optional cause.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// New creates a service error without a cause.
func New(code ErrorCode, message string) error {
	return &ServiceError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code ErrorCode, message string, err error) error {
	return &ServiceError{Code: code, Message: message, Err: err}
}

// Code extracts the error code, defaulting to ErrInternal for foreign errors.
func Code(err error) ErrorCode {
	var se *ServiceError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrInternal
}

// Is reports whether err carries the given service error code.
func Is(err error, code ErrorCode) bool {
	var se *ServiceError
	return stderrors.As(err, &se) && se.Code == code
}
