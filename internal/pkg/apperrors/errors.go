package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not activated")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidActivation   = errors.New("invalid or expired activation token")
	ErrTermsNotAccepted    = errors.New("platform terms not accepted")
	ErrRefreshTokenInvalid = errors.New("invalid or expired refresh token")
)

// Registry errors
var (
	ErrSchoolNotFound  = errors.New("school not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrParentNotFound  = errors.New("parent not found")
	ErrTeacherNotFound = errors.New("teacher not found")
)

// Flag ledger errors
var (
	ErrFlagNotFound       = errors.New("flag not found")
	ErrFlagAlreadyCleared = errors.New("flag already cleared")
	ErrNotFlagCreator     = errors.New("only the flag creator may clear it")
)

// Workflow errors
var (
	ErrDuplicateStudent         = errors.New("possible duplicate student, admin review required")
	ErrReviewNotFound           = errors.New("duplicate review not found")
	ErrReviewAlreadyDecided     = errors.New("duplicate review already decided")
	ErrConsentNotFound          = errors.New("consent request not found or already processed")
	ErrConsentAlreadyPending    = errors.New("a pending consent request already exists for this student and school")
	ErrDisputeNotFound          = errors.New("dispute not found")
	ErrActiveDisputeExists      = errors.New("an active dispute already exists for this student")
	ErrIllegalDisputeTransition = errors.New("dispute is not in a state that allows this transition")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a permission denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}
