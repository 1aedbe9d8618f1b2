package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/application/dto"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/application/service"
	appErrors "github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/pkg/errors"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NotificationHandler exposes the notification dispatch operations over HTTP.
type NotificationHandler struct {
	notificationService service.NotificationService
	schedulerService    service.SchedulerService
	log                 logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(
	notificationService service.NotificationService,
	schedulerService service.SchedulerService,
	log logger.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		schedulerService:    schedulerService,
		log:                 log,
	}
}

// SendReminder handles POST /send-reminder/:id. It is normally driven by the
// scheduler, but operators can trigger it for a single reservation.
func (h *NotificationHandler) SendReminder(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, detail(err.Error()))
	}

	outcome, err := h.notificationService.SendReminderNow(c.Request().Context(), id)
	if err != nil {
		return h.mapServiceError(c, "reminder", id, err)
	}

	message := "Reminder email sent successfully"
	if outcome.AlreadySent {
		message = "Reminder was already sent"
	}
	return c.JSON(http.StatusOK, dto.SendResponse{
		Message:       message,
		ReservationID: outcome.ReservationID,
		Email:         outcome.Email,
	})
}

// SendConfirmation handles POST /send-confirmation/:id, called by the booking
// service after creating a reservation.
func (h *NotificationHandler) SendConfirmation(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, detail(err.Error()))
	}

	outcome, err := h.notificationService.SendConfirmation(c.Request().Context(), id)
	if err != nil {
		return h.mapServiceError(c, "confirmation", id, err)
	}

	return c.JSON(http.StatusOK, dto.SendResponse{
		Message:       "Confirmation email sent successfully",
		ReservationID: outcome.ReservationID,
		Email:         outcome.Email,
	})
}

// UpcomingReminders handles GET /upcoming-reminders, a monitoring endpoint
// showing what the next scan cycle would pick up.
func (h *NotificationHandler) UpcomingReminders(c echo.Context) error {
	resp, err := h.notificationService.UpcomingReminders(c.Request().Context(), time.Now().UTC())
	if err != nil {
		h.log.Error("Failed to list upcoming reminders", err)
		return c.JSON(http.StatusInternalServerError, detail("Failed to get upcoming reminders"))
	}
	return c.JSON(http.StatusOK, resp)
}

// SchedulerStatus handles GET /scheduler/status, exposing the last scan cycle.
func (h *NotificationHandler) SchedulerStatus(c echo.Context) error {
	resp := dto.SchedulerStatusResponse{}
	if report, ok := h.schedulerService.LastCycle(); ok {
		startedAt := report.StartedAt
		resp.LastRunAt = &startedAt
		resp.Candidates = report.Stats.Candidates
		resp.Sent = report.Stats.Sent
		resp.Skipped = report.Stats.Skipped
		resp.Failed = report.Stats.Failed
		resp.Error = report.Err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) mapServiceError(c echo.Context, kind, id string, err error) error {
	switch {
	case errors.Is(err, appErrors.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, detail(fmt.Sprintf("Reservation %s not found", id)))
	case errors.Is(err, appErrors.ErrAlreadyCancelled):
		return c.JSON(http.StatusBadRequest, detail(fmt.Sprintf("Cannot send %s for cancelled reservation", kind)))
	case errors.Is(err, appErrors.ErrRecipientMissing):
		return c.JSON(http.StatusBadRequest, detail("User email not found"))
	case errors.Is(err, appErrors.ErrDeliveryFailure):
		h.log.Error(fmt.Sprintf("Delivery failed for %s of reservation %s", kind, id), err)
		return c.JSON(http.StatusInternalServerError, detail(fmt.Sprintf("Failed to send %s email", kind)))
	default:
		h.log.Error(fmt.Sprintf("Unexpected error sending %s for reservation %s", kind, id), err)
		return c.JSON(http.StatusInternalServerError, detail(fmt.Sprintf("Failed to send %s email", kind)))
	}
}

func reservationID(c echo.Context) (string, error) {
	raw := c.Param("id")
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid UUID format: %s", raw)
	}
	return parsed.String(), nil
}

func detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}
