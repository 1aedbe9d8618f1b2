package service

import (
	"context"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/application/dto"
)

// CycleStats summarizes one reminder scan cycle. Sent counts reservations
// whose send and conditional commit both succeeded, not candidates found.
type CycleStats struct {
	Candidates int
	Sent       int
	Skipped    int
	Failed     int
}

// ReminderPolicy holds the timing constants for the reminder window.
type ReminderPolicy struct {
	LeadTime  time.Duration
	Tolerance time.Duration
}

// NotificationService defines the interface for notification dispatch logic.
type NotificationService interface {
	// RunScanCycle performs one reminder scan: query candidates inside the
	// window around now, send each one, and conditionally mark it reminded.
	// It only returns an error when the candidate query itself fails;
	// per-candidate failures are contained within the cycle.
	RunScanCycle(ctx context.Context, now time.Time) (CycleStats, error)
	// SendReminderNow dispatches a reminder for a single reservation,
	// applying the same eligibility rules as the scan cycle. A reservation
	// already reminded by a concurrent dispatch is a success-no-op.
	SendReminderNow(ctx context.Context, reservationID string) (dto.SendOutcome, error)
	// SendConfirmation sends the booking confirmation email and stamps
	// confirmation_sent_at. Called by the booking service after creating a
	// reservation.
	SendConfirmation(ctx context.Context, reservationID string) (dto.SendOutcome, error)
	// UpcomingReminders lists the reservations pending a reminder in the
	// window around now, for monitoring.
	UpcomingReminders(ctx context.Context, now time.Time) (*dto.UpcomingRemindersResponse, error)
}
