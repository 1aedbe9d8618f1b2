package dto

import (
	"time"

	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/domain/entity"
)

// SendOutcome reports what a single-reservation dispatch actually did.
// AlreadySent distinguishes the success-no-op path (a concurrent dispatch or
// an earlier call took credit) from a fresh send.
type SendOutcome struct {
	ReservationID string `json:"reservation_id"`
	Email         string `json:"email"`
	AlreadySent   bool   `json:"already_sent"`
}

// SendResponse is the DTO returned by the send-reminder and send-confirmation
// endpoints.
type SendResponse struct {
	Message       string `json:"message"`
	ReservationID string `json:"reservation_id"`
	Email         string `json:"email,omitempty"`
}

// ReminderCandidate is the DTO for a reservation pending a reminder, used by
// the monitoring endpoint.
type ReminderCandidate struct {
	ReservationID string    `json:"reservation_id"`
	CourtName     string    `json:"court_name"`
	Email         string    `json:"email"`
	StartsAt      time.Time `json:"starts_at"`
}

// UpcomingRemindersResponse lists the reservations currently inside the
// reminder window that have not been reminded yet.
type UpcomingRemindersResponse struct {
	WindowStart  time.Time           `json:"window_start"`
	WindowEnd    time.Time           `json:"window_end"`
	Count        int                 `json:"count"`
	Reservations []ReminderCandidate `json:"reservations"`
}

// SchedulerStatusResponse exposes the last scan cycle to operational tooling.
type SchedulerStatusResponse struct {
	LastRunAt  *time.Time `json:"last_run_at"`
	Candidates int        `json:"candidates"`
	Sent       int        `json:"sent"`
	Skipped    int        `json:"skipped"`
	Failed     int        `json:"failed"`
	Error      string     `json:"error,omitempty"`
}

// ToReminderCandidate converts an entity.Reservation to a ReminderCandidate DTO.
func ToReminderCandidate(r *entity.Reservation) ReminderCandidate {
	return ReminderCandidate{
		ReservationID: r.ID,
		CourtName:     r.CourtName(),
		Email:         r.RecipientEmail(),
		StartsAt:      r.StartsAt,
	}
}

// ToReminderCandidateList converts a slice of entity.Reservation to ReminderCandidate DTOs.
func ToReminderCandidateList(reservations []*entity.Reservation) []ReminderCandidate {
	list := make([]ReminderCandidate, len(reservations))
	for i, r := range reservations {
		list[i] = ToReminderCandidate(r)
	}
	return list
}
