package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid login credentials")
	ErrEquipmentUnavailable = errors.New("equipment is not available")
	ErrInvalidDateRange     = errors.New("end date must be after start date")
	ErrBookingUnavailable   = errors.New("cannot process booking")
)

// ValidationError is a form-level rejection raised before any store call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError or a date-range rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrInvalidDateRange)
}
