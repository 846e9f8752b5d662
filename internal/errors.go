package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"

	ErrCodeMemberNotFound    ErrorCode = "MEMBER_NOT_FOUND"
	ErrCodeDuplicateNPM      ErrorCode = "DUPLICATE_NPM"
	ErrCodeDuplicateActivity ErrorCode = "DUPLICATE_ACTIVITY"
	ErrCodeKasNotFound       ErrorCode = "KAS_NOT_FOUND"
	ErrCodeIncomeNotFound    ErrorCode = "INCOME_NOT_FOUND"
	ErrCodeExpenseNotFound   ErrorCode = "EXPENSE_NOT_FOUND"
	ErrCodeActivityNotFound  ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeReportNotFound    ErrorCode = "REPORT_NOT_FOUND"

	ErrCodeActionForbidden ErrorCode = "ACTION_FORBIDDEN"
	ErrCodeStorageFailure  ErrorCode = "STORAGE_FAILURE"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeMemberInactive     ErrorCode = "MEMBER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeStorageFailure,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrMemberNotFound   = NewNotFoundError("member not found", ErrCodeMemberNotFound)
	ErrKasNotFound      = NewNotFoundError("kas entry not found", ErrCodeKasNotFound)
	ErrIncomeNotFound   = NewNotFoundError("income entry not found", ErrCodeIncomeNotFound)
	ErrExpenseNotFound  = NewNotFoundError("expense entry not found", ErrCodeExpenseNotFound)
	ErrActivityNotFound = NewNotFoundError("activity not found", ErrCodeActivityNotFound)
	ErrReportNotFound   = NewNotFoundError("monthly report not found", ErrCodeReportNotFound)

	ErrActionForbidden = NewForbiddenError("action not allowed for this role", ErrCodeActionForbidden)

	ErrInvalidCredentials = NewUnauthorizedError("invalid npm or password", ErrCodeInvalidCredentials)
	ErrMemberInactive     = NewForbiddenError("member account is inactive", ErrCodeMemberInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
