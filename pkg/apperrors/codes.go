package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "AUTH_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "AUTH_TOKEN_INVALID"
	ErrCodeTokenMalformed     = "AUTH_TOKEN_MALFORMED"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodePermissionDenied = "AUTHZ_PERMISSION_DENIED"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidInput     = "VALIDATION_INVALID_INPUT"
	ErrCodeInvalidSlug      = "VALIDATION_INVALID_SLUG"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
)

// Resource errors (RESOURCE_*)
const (
	ErrCodeNotFound          = "RESOURCE_NOT_FOUND"
	ErrCodeDuplicateSlug     = "RESOURCE_DUPLICATE_SLUG"
	ErrCodeDuplicateUsername = "RESOURCE_DUPLICATE_USERNAME"
	ErrCodeDuplicateEmail    = "RESOURCE_DUPLICATE_EMAIL"
	ErrCodeForbiddenDelete   = "RESOURCE_FORBIDDEN_DELETE"
)

// Rate limiting errors (RATE_*)
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// Upload errors (UPLOAD_*)
const (
	ErrCodePayloadTooLarge      = "UPLOAD_PAYLOAD_TOO_LARGE"
	ErrCodeUnsupportedMediaType = "UPLOAD_UNSUPPORTED_MEDIA_TYPE"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeDatabaseError      = "INTERNAL_DATABASE_ERROR"
	ErrCodeStorageError       = "INTERNAL_STORAGE_ERROR"
	ErrCodeUnexpectedError    = "INTERNAL_UNEXPECTED_ERROR"
	ErrCodeServiceUnavailable = "INTERNAL_SERVICE_UNAVAILABLE"
)
