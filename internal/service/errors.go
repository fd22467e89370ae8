package service

import "errors"

// Common service errors
var (
	// ErrInvalidInput is returned when a request fails shape validation. The
	// wrapped validation.Errors carries the per-field messages.
	ErrInvalidInput = errors.New("invalid input")

	// ErrClientNotFound is returned when a client is not found
	ErrClientNotFound = errors.New("client not found")

	// ErrSalesRepNotFound is returned when no sales rep has the given username
	ErrSalesRepNotFound = errors.New("sales rep not found")

	// ErrVendorNotFound is returned when a vendor is not found
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrPurchaseOrderNotFound is returned when a purchase order is not found
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrPrimaryJobNotInOrder is returned when the job chosen as primary
	// belongs to another purchase order
	ErrPrimaryJobNotInOrder = errors.New("primary job does not belong to the purchase order")

	// ErrPrimaryJobMove is returned when moving a job that is still the
	// primary job of its purchase order
	ErrPrimaryJobMove = errors.New("cannot move the primary job of a purchase order")

	// ErrPrimaryJobIndex is returned when the primary marker points outside
	// the submitted jobs
	ErrPrimaryJobIndex = errors.New("primary job index out of range")

	// ErrUserNotFound is returned when no user has the given username
	ErrUserNotFound = errors.New("user not found")

	// ErrSettingsNotFound is returned when nothing has been saved for a username
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrContactNotFound is returned when a client email or phone does not exist
	ErrContactNotFound = errors.New("contact not found")

	// ErrNoActiveAssignment is returned when a client has no current sales rep
	ErrNoActiveAssignment = errors.New("client has no active assignment")
)
