package errors

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/sirupsen/logrus"
)

// ErrorCode is a machine-readable classification carried alongside the HTTP
// status so callers can branch without string-matching messages.
type ErrorCode string

const (
	CodeInvalidInput    ErrorCode = "INVALID_INPUT"
	CodeEmptyScope      ErrorCode = "EMPTY_SCOPE"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeNothingCounted  ErrorCode = "NOTHING_COUNTED"
	CodeNothingToAdjust ErrorCode = "NOTHING_TO_ADJUST"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	CodeStorageFailure  ErrorCode = "STORAGE_FAILURE"
)

type AppError struct {
	StatusCode int
	Code       ErrorCode
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(statusCode int, code ErrorCode, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message)
}

func NewEmptyScopeError(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeEmptyScope, message)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message)
}

func NewNothingCountedError(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeNothingCounted, message)
}

func NewNothingToAdjustError(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeNothingToAdjust, message)
}

// NewConflictError marks an operation attempted from an illegal lifecycle
// state. These are contract violations at the call site, never retried.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message)
}

func NewUnauthorizedError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message[0])
	}
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, "Unauthorized")
}

func NewTooManyRequestsError(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeTooManyRequests, message)
}

func NewInternalServerError(originalError error, message string) *AppError {
	logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	return NewAppError(http.StatusInternalServerError, CodeStorageFailure, message)
}

// CodeOf extracts the ErrorCode from err, or CodeStorageFailure for anything
// that is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeStorageFailure
}
