package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные и неизвестные ошибки
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Общие ошибки бизнес-логики
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"

	// Аутентификация и авторизация
	CodeUnauthorized          ErrorCode = "UNAUTHORIZED"
	CodeForbidden             ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials    ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken          ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired          ErrorCode = "TOKEN_EXPIRED"
	CodeAccountInactive       ErrorCode = "ACCOUNT_INACTIVE"
	CodeInsufficientHierarchy ErrorCode = "INSUFFICIENT_HIERARCHY"
)

// Доменные коды
const (
	CodeEmailAlreadyExists   ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeRoleNotFound         ErrorCode = "ROLE_NOT_FOUND"
	CodeEmailAlreadyVerified ErrorCode = "EMAIL_ALREADY_VERIFIED"
	CodeWeakPassword         ErrorCode = "WEAK_PASSWORD"
	CodeMediaNotFound        ErrorCode = "MEDIA_NOT_FOUND"
	CodeFileTooLarge         ErrorCode = "FILE_TOO_LARGE"
	CodeInvalidFileType      ErrorCode = "INVALID_FILE_TYPE"
)
