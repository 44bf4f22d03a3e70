package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound        ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized    ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden       ErrorType = "FORBIDDEN"
	ErrorTypeConflict        ErrorType = "CONFLICT"
	ErrorTypeSystemProtected ErrorType = "SYSTEM_PROTECTED"
	ErrorTypeInternal        ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidTitle     ErrorCode = "INVALID_TITLE"
	ErrCodeInvalidName      ErrorCode = "INVALID_NAME"
	ErrCodeInvalidRoleList  ErrorCode = "INVALID_ROLE_LIST"
	ErrCodeFolderCycle      ErrorCode = "FOLDER_CYCLE"

	ErrCodePageNotFound       ErrorCode = "PAGE_NOT_FOUND"
	ErrCodeFolderNotFound     ErrorCode = "FOLDER_NOT_FOUND"
	ErrCodeRoleNotFound       ErrorCode = "ROLE_NOT_FOUND"
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeAssignmentNotFound ErrorCode = "ASSIGNMENT_NOT_FOUND"
	ErrCodeSettingNotFound    ErrorCode = "SETTING_NOT_FOUND"

	ErrCodeInsufficientLevel ErrorCode = "INSUFFICIENT_LEVEL"
	ErrCodeAdminRequired     ErrorCode = "ADMIN_REQUIRED"

	ErrCodeRoleExists ErrorCode = "ROLE_EXISTS"
	ErrCodeRoleInUse  ErrorCode = "ROLE_IN_USE"
	ErrCodeLastRole   ErrorCode = "LAST_ROLE"
	ErrCodeSystemRole ErrorCode = "SYSTEM_ROLE"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
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
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
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

// NewSystemProtectedError covers mutations of the built-in system roles.
func NewSystemProtectedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeSystemProtected,
		Code:       ErrCodeSystemRole,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	// Read-path denials collapse to not-found so existence does not leak.
	ErrPageNotFound   = NewNotFoundError("Page not found or access denied", ErrCodePageNotFound)
	ErrFolderNotFound = NewNotFoundError("Folder not found or access denied", ErrCodeFolderNotFound)
	ErrRoleNotFound   = NewNotFoundError("Role not found", ErrCodeRoleNotFound)
	ErrUserNotFound   = NewNotFoundError("User not found", ErrCodeUserNotFound)

	ErrInsufficientLevel = NewForbiddenError("Not enough permissions for this object", ErrCodeInsufficientLevel)
	ErrAdminRequired     = NewForbiddenError("Admin access required", ErrCodeAdminRequired)

	ErrSystemRoleProtected = NewSystemProtectedError("Cannot modify system roles")

	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
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
