package repository

import (
	"context"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/domain/entity"
)

// ReservationRepository defines the interface for reservation data operations.
// The query and the conditional update together carry the at-most-once
// reminder contract: the query is evaluated server-side, and MarkReminderSent
// only applies while reminder_sent_at is still unset.
type ReservationRepository interface {
	// FindByID retrieves a reservation with its court and user resolved.
	FindByID(ctx context.Context, id string) (*entity.Reservation, error)
	// FindReminderCandidates retrieves reservations with starts_at in
	// [windowStart, windowEnd) that are neither cancelled nor already reminded.
	FindReminderCandidates(ctx context.Context, windowStart, windowEnd time.Time) ([]*entity.Reservation, error)
	// MarkReminderSent sets reminder_sent_at for the reservation only if it is
	// still unset, and returns the number of rows affected. Zero means a
	// concurrent dispatch already took credit.
	MarkReminderSent(ctx context.Context, id string, sentAt time.Time) (int64, error)
	// MarkConfirmationSent stamps confirmation_sent_at for the reservation.
	MarkConfirmationSent(ctx context.Context, id string, sentAt time.Time) error
}
