package notifier

import (
	"context"
	"time"
)

// ReminderPayload carries everything needed to build a reminder email.
type ReminderPayload struct {
	ReservationID string
	ToEmail       string
	UserName      string
	CourtName     string
	StartsAt      time.Time
}

// ConfirmationPayload carries everything needed to build a confirmation email.
type ConfirmationPayload struct {
	ReservationID string
	ToEmail       string
	UserName      string
	CourtName     string
	StartsAt      time.Time
	EndsAt        time.Time
	TotalPrice    float64
}

// Result reports the outcome of a send. Ordinary delivery failures are
// reported in-band via Delivered/Reason so callers never need exception-style
// control flow for expected failure modes.
type Result struct {
	Delivered bool
	MessageID string
	Reason    string
}

// Notifier defines the interface for the outbound email capability.
// A non-nil error means the transport itself failed unexpectedly; a rejected
// or undeliverable message comes back as Delivered=false with a Reason.
type Notifier interface {
	SendReminder(ctx context.Context, p ReminderPayload) (Result, error)
	SendConfirmation(ctx context.Context, p ConfirmationPayload) (Result, error)
}
