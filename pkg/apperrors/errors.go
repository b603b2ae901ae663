package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError - основная структура ошибки приложения
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Конструктор
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap - конструктор с цепочкой ошибок
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails добавляет детали к ошибке
func (e *AppError) WithDetails(details interface{}) *AppError {
	return &AppError{
		Code:     e.Code,
		Message:  e.Message,
		Details:  details,
		Err:      e.Err,
		HTTPCode: e.HTTPCode,
	}
}

// MarshalJSON скрывает Err и HTTPCode при сериализации
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is - обертка над стандартной функцией errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As - обертка над стандартной функцией errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Предопределенные ошибки
var (
	// Аутентификация
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid credentials", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
	ErrAccountInactive    = New(CodeAccountInactive, "Account is not active", http.StatusUnauthorized)

	// Иерархия ролей
	ErrInsufficientHierarchy = New(CodeInsufficientHierarchy, "Insufficient role hierarchy level", http.StatusForbidden)
	ErrRoleNotAssignable     = New(CodeForbidden, "You do not have permission to assign one or more of the specified roles", http.StatusForbidden)

	// Пользователи
	ErrUserNotFound          = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists    = New(CodeEmailAlreadyExists, "User with this email already exists", http.StatusConflict)
	ErrEmailAlreadyVerified  = New(CodeEmailAlreadyVerified, "Email is already verified", http.StatusBadRequest)
	ErrInvalidResetToken     = New(CodeInvalidToken, "Invalid or expired reset token", http.StatusBadRequest)
	ErrInvalidVerifyToken    = New(CodeInvalidToken, "Invalid verification token", http.StatusBadRequest)
	ErrWeakPassword          = New(CodeWeakPassword, "Password does not meet complexity requirements", http.StatusBadRequest)
	ErrRoleNotFound          = New(CodeRoleNotFound, "Role not found", http.StatusNotFound)

	// Валидация
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	// Медиа
	ErrMediaNotFound   = New(CodeMediaNotFound, "Media not found", http.StatusNotFound)
	ErrFileTooLarge    = New(CodeFileTooLarge, "File too large", http.StatusBadRequest)
	ErrInvalidFileType = New(CodeInvalidFileType, "File type is not allowed", http.StatusBadRequest)
	ErrMediaAccess     = New(CodeForbidden, "Access denied to this media", http.StatusForbidden)
)

// Функции-помощники для создания ошибок с деталями
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewConflictError(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}
