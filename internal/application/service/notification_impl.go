package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/application/dto"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/domain/constant"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/domain/entity"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/domain/notifier"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/domain/repository"
	appErrors "github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/pkg/errors"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/pkg/logger"

	"gorm.io/gorm"
)

type notificationService struct {
	reservationRepo repository.ReservationRepository
	mailer          notifier.Notifier
	policy          ReminderPolicy
	log             logger.Logger
}

// NewNotificationService creates a new instance of NotificationService implementation.
func NewNotificationService(
	reservationRepo repository.ReservationRepository,
	mailer notifier.Notifier,
	policy ReminderPolicy,
	log logger.Logger,
) NotificationService {
	if policy.LeadTime <= 0 {
		policy.LeadTime = DefaultLeadTime
	}
	if policy.Tolerance <= 0 {
		policy.Tolerance = DefaultTolerance
	}
	return &notificationService{
		reservationRepo: reservationRepo,
		mailer:          mailer,
		policy:          policy,
		log:             log,
	}
}

// RunScanCycle performs one reminder scan cycle. The eligibility query is the
// only fatal step; everything after it is per-candidate and isolated.
func (s *notificationService) RunScanCycle(ctx context.Context, now time.Time) (CycleStats, error) {
	window := ComputeReminderWindow(now, s.policy.LeadTime, s.policy.Tolerance)
	stats := CycleStats{}

	candidates, err := s.reservationRepo.FindReminderCandidates(ctx, window.Start, window.End)
	if err != nil {
		s.log.Error(fmt.Sprintf("Reminder scan aborted: candidate query failed for window %s", window), err)
		return stats, fmt.Errorf("%w: %v", appErrors.ErrStoreUnavailable, err)
	}
	stats.Candidates = len(candidates)

	if len(candidates) == 0 {
		s.log.Info(fmt.Sprintf("No upcoming reservations found in window %s", window))
		return stats, nil
	}
	s.log.Info(fmt.Sprintf("Found %d upcoming reservations to remind in window %s", len(candidates), window))

	for _, reservation := range candidates {
		switch s.dispatchReminder(ctx, reservation, now) {
		case dispatchSent:
			stats.Sent++
		case dispatchSkipped:
			stats.Skipped++
		case dispatchFailed:
			stats.Failed++
		}
	}

	// Report actual successes, not candidates found.
	s.log.Info(fmt.Sprintf("Reminder scan complete. candidates=%d sent=%d skipped=%d failed=%d",
		stats.Candidates, stats.Sent, stats.Skipped, stats.Failed))
	return stats, nil
}

type dispatchResult int

const (
	dispatchSent dispatchResult = iota
	dispatchSkipped
	dispatchFailed
)

// dispatchReminder handles one candidate within a scan cycle. It never
// returns an error: every failure mode is logged and absorbed so one bad
// candidate cannot abort the batch.
func (s *notificationService) dispatchReminder(ctx context.Context, reservation *entity.Reservation, now time.Time) dispatchResult {
	email := reservation.RecipientEmail()
	if email == "" {
		s.log.Warn(fmt.Sprintf("No email found for reservation %s, skipping reminder", reservation.ID))
		return dispatchSkipped
	}

	result, err := s.mailer.SendReminder(ctx, buildReminderPayload(reservation))
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to send %s for reservation %s", constant.NotificationReminder, reservation.ID), err)
		return dispatchFailed
	}
	if !result.Delivered {
		s.log.Warn(fmt.Sprintf("Notifier rejected %s for reservation %s: %s", constant.NotificationReminder, reservation.ID, result.Reason))
		return dispatchFailed
	}

	affected, err := s.reservationRepo.MarkReminderSent(ctx, reservation.ID, now)
	if err != nil {
		// The email went out but the marker did not stick; the next cycle may
		// send again. Surfacing this loudly is all we can do without a
		// transactional outbox.
		s.log.Error(fmt.Sprintf("Reminder sent but failed to mark reservation %s as reminded", reservation.ID), err)
		return dispatchFailed
	}
	if affected == 0 {
		s.log.Info(fmt.Sprintf("Reservation %s was already marked reminded by a concurrent dispatch", reservation.ID))
		return dispatchSkipped
	}

	s.log.Info(fmt.Sprintf("Reminder sent for reservation %s (message %s)", reservation.ID, result.MessageID))
	return dispatchSent
}

// SendReminderNow dispatches a reminder for one reservation on demand.
func (s *notificationService) SendReminderNow(ctx context.Context, reservationID string) (dto.SendOutcome, error) {
	outcome := dto.SendOutcome{ReservationID: reservationID}

	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return outcome, err
	}

	if reservation.IsCancelled() {
		return outcome, appErrors.ErrAlreadyCancelled
	}
	if reservation.ReminderSent() {
		// The caller's intent is "make sure a reminder went out"; it already did.
		s.log.Info(fmt.Sprintf("Reservation %s already reminded at %v, nothing to do", reservationID, reservation.ReminderSentAt))
		outcome.Email = reservation.RecipientEmail()
		outcome.AlreadySent = true
		return outcome, nil
	}

	email := reservation.RecipientEmail()
	if email == "" {
		return outcome, appErrors.ErrRecipientMissing
	}
	outcome.Email = email

	result, err := s.mailer.SendReminder(ctx, buildReminderPayload(reservation))
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to send %s for reservation %s", constant.NotificationReminder, reservationID), err)
		return outcome, fmt.Errorf("%w: %v", appErrors.ErrDeliveryFailure, err)
	}
	if !result.Delivered {
		s.log.Warn(fmt.Sprintf("Notifier rejected %s for reservation %s: %s", constant.NotificationReminder, reservationID, result.Reason))
		return outcome, fmt.Errorf("%w: %s", appErrors.ErrDeliveryFailure, result.Reason)
	}

	affected, err := s.reservationRepo.MarkReminderSent(ctx, reservationID, time.Now().UTC())
	if err != nil {
		s.log.Error(fmt.Sprintf("Reminder sent but failed to mark reservation %s as reminded", reservationID), err)
		return outcome, fmt.Errorf("%w: %v", appErrors.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		// A concurrent dispatch committed first. Same terminal state, so this
		// call still succeeded.
		s.log.Info(fmt.Sprintf("Reservation %s was marked reminded by a concurrent dispatch", reservationID))
		outcome.AlreadySent = true
		return outcome, nil
	}

	s.log.Info(fmt.Sprintf("Reminder email sent for reservation %s (message %s)", reservationID, result.MessageID))
	return outcome, nil
}

// SendConfirmation sends the booking confirmation email. Unlike reminders
// there is no at-most-once contract here beyond send-once-per-call.
func (s *notificationService) SendConfirmation(ctx context.Context, reservationID string) (dto.SendOutcome, error) {
	outcome := dto.SendOutcome{ReservationID: reservationID}

	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return outcome, err
	}

	if reservation.IsCancelled() {
		return outcome, appErrors.ErrAlreadyCancelled
	}
	email := reservation.RecipientEmail()
	if email == "" {
		return outcome, appErrors.ErrRecipientMissing
	}
	outcome.Email = email

	result, err := s.mailer.SendConfirmation(ctx, notifier.ConfirmationPayload{
		ReservationID: reservation.ID,
		ToEmail:       email,
		UserName:      reservation.RecipientName(),
		CourtName:     reservation.CourtName(),
		StartsAt:      reservation.StartsAt,
		EndsAt:        reservation.EndsAt,
		TotalPrice:    reservation.TotalPrice,
	})
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to send %s for reservation %s", constant.NotificationConfirmation, reservationID), err)
		return outcome, fmt.Errorf("%w: %v", appErrors.ErrDeliveryFailure, err)
	}
	if !result.Delivered {
		s.log.Warn(fmt.Sprintf("Notifier rejected %s for reservation %s: %s", constant.NotificationConfirmation, reservationID, result.Reason))
		return outcome, fmt.Errorf("%w: %s", appErrors.ErrDeliveryFailure, result.Reason)
	}

	if err := s.reservationRepo.MarkConfirmationSent(ctx, reservationID, time.Now().UTC()); err != nil {
		s.log.Error(fmt.Sprintf("Confirmation sent but failed to stamp reservation %s", reservationID), err)
		return outcome, fmt.Errorf("%w: %v", appErrors.ErrStoreUnavailable, err)
	}

	s.log.Info(fmt.Sprintf("Confirmation email sent for reservation %s (message %s)", reservationID, result.MessageID))
	return outcome, nil
}

// UpcomingReminders lists pending candidates in the current window.
func (s *notificationService) UpcomingReminders(ctx context.Context, now time.Time) (*dto.UpcomingRemindersResponse, error) {
	window := ComputeReminderWindow(now, s.policy.LeadTime, s.policy.Tolerance)

	candidates, err := s.reservationRepo.FindReminderCandidates(ctx, window.Start, window.End)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list upcoming reminders for window %s", window), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStoreUnavailable, err)
	}

	return &dto.UpcomingRemindersResponse{
		WindowStart:  window.Start,
		WindowEnd:    window.End,
		Count:        len(candidates),
		Reservations: dto.ToReminderCandidateList(candidates),
	}, nil
}

func (s *notificationService) findReservation(ctx context.Context, reservationID string) (*entity.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrReservationNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to load reservation %s", reservationID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStoreUnavailable, err)
	}
	return reservation, nil
}

func buildReminderPayload(reservation *entity.Reservation) notifier.ReminderPayload {
	return notifier.ReminderPayload{
		ReservationID: reservation.ID,
		ToEmail:       reservation.RecipientEmail(),
		UserName:      reservation.RecipientName(),
		CourtName:     reservation.CourtName(),
		StartsAt:      reservation.StartsAt,
	}
}
