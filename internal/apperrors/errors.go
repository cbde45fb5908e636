package apperrors

// Stable machine readable error codes
// Handlers use them to pick HTTP statuses, so values must not change between releases
const (
	CodeValidation     = "validation_failed"
	CodeAuthentication = "authentication_failed"
	CodeInternal       = "internal_error"
)

// Domain error with stable code and fixed caller visible message
// Authentication failures share one message no matter which check failed,
// so the API never works as an oracle for account existence
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	// Login input missing or blank, checked before any I/O
	ErrFieldsRequired = &Error{Code: CodeValidation, Message: "email and password are required"}

	// Single error for unknown email and wrong password alike
	ErrInvalidCredentials = &Error{Code: CodeAuthentication, Message: "invalid credentials"}

	// Single error for malformed, expired, badly signed or wrong kind tokens
	ErrInvalidToken = &Error{Code: CodeAuthentication, Message: "invalid token"}

	ErrInternal = &Error{Code: CodeInternal, Message: "internal server error"}

	// Returned by the user directory only; must be mapped to
	// ErrInvalidCredentials before it reaches any caller
	ErrUserNotFound      = &Error{Code: CodeAuthentication, Message: "user not found"}
	ErrUserAlreadyExists = &Error{Code: CodeValidation, Message: "user already exists"}
)
