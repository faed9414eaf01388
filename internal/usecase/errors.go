package usecase

import (
	"errors"

	"salon-booking/internal/infrastructure/marketplace"
)

var (
	ErrAuthRequired         = errors.New("authentication required")
	ErrSessionRequired      = errors.New("booking session is required")
	ErrVendorNotFound       = errors.New("vendor not found")
	ErrServiceNotFound      = errors.New("service not found in vendor catalogue")
	ErrProfessionalNotFound = errors.New("professional not found for vendor")
	ErrDraftEmpty           = errors.New("no service selected")
	ErrDraftConflict        = errors.New("draft was changed by another request")
	ErrDraftIncomplete      = errors.New("draft is incomplete")
	ErrInvalidSchedule      = errors.New("invalid schedule")
	ErrSubmissionInProgress = errors.New("order submission already in progress")
)

// ValidationError carries field messages for a rule that failed after request
// validation. It unwraps to its sentinel so callers can switch on errors.Is.
type ValidationError struct {
	Err    error
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error, fields map[string]string) *ValidationError {
	return &ValidationError{Err: err, Fields: fields}
}

// remoteError maps a marketplace 401 to ErrAuthRequired and a 404 to notFound
// when given. Any other error is returned untouched so the remote message
// reaches the client unmodified.
func remoteError(err error, notFound error) error {
	switch {
	case marketplace.IsUnauthorized(err):
		return ErrAuthRequired
	case notFound != nil && marketplace.IsNotFound(err):
		return notFound
	default:
		return err
	}
}
