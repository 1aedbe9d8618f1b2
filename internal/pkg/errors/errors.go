package errors

import "errors"

// Custom application errors
var (
	ErrReservationNotFound = errors.New("reservation not found")                    // No reservation matches the given ID
	ErrAlreadyCancelled    = errors.New("reservation has been cancelled")           // Cancelled reservations never receive notifications
	ErrRecipientMissing    = errors.New("no recipient email found for reservation") // The joined user row has no usable email
	ErrDeliveryFailure     = errors.New("failed to deliver notification email")     // The notifier reported or raised a delivery failure
	ErrStoreUnavailable    = errors.New("reservation store operation failed")       // Query or update against the reservation store failed
	ErrScheduling          = errors.New("failed to schedule recurring job")         // Cron registration error
	ErrInternalServer      = errors.New("internal server error")                    // Generic internal error
)
