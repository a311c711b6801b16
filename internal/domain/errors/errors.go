package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrValidation          = errors.New("validation failed")
	ErrForbidden           = errors.New("not allowed")
	ErrInvalidState        = errors.New("invalid order state")
	ErrPaymentVerification = errors.New("payment verification failed")

	// Side-effect failures. Logged by callers, never returned from primary operations.
	ErrInvoiceRender = errors.New("invoice render failed")
	ErrNotification  = errors.New("notification failed")
)
