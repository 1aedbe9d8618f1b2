package email

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/domain/notifier"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/pkg/logger"

	"github.com/google/uuid"
)

// Client sends notification emails over plain SMTP. HTML rendering is left to
// a future template layer; the relays in use accept plain text fine.
type Client struct {
	addr     string
	from     string
	fromName string
	log      logger.Logger
}

var (
	clientInstance *Client
	once           sync.Once
)

// NewClient creates a new singleton instance of the SMTP email client.
// It reads SMTP_HOST, SMTP_PORT, FROM_EMAIL and FROM_NAME from the environment.
func NewClient(log logger.Logger) *Client {
	once.Do(func() {
		host := strings.TrimSpace(os.Getenv("SMTP_HOST"))
		port := strings.TrimSpace(os.Getenv("SMTP_PORT"))
		from := strings.TrimSpace(os.Getenv("FROM_EMAIL"))
		fromName := strings.TrimSpace(os.Getenv("FROM_NAME"))

		if host == "" {
			host = "localhost"
			log.Warn("SMTP_HOST environment variable not set, defaulting to 'localhost'")
		}
		if port == "" {
			port = "1025"
			log.Warn("SMTP_PORT environment variable not set, defaulting to '1025'")
		}
		if from == "" {
			from = "noreply@courtmate.com"
		}
		if fromName == "" {
			fromName = "CourtMate"
		}

		log.Info(fmt.Sprintf("SMTP email client configured for %s:%s (from %s)", host, port, from))
		clientInstance = &Client{
			addr:     fmt.Sprintf("%s:%s", host, port),
			from:     from,
			fromName: fromName,
			log:      log,
		}
	})
	return clientInstance
}

// SendReminder sends a reservation reminder email.
func (c *Client) SendReminder(ctx context.Context, p notifier.ReminderPayload) (notifier.Result, error) {
	subject := fmt.Sprintf("Reminder: your %s reservation starts soon", p.CourtName)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"This is a reminder that your reservation is coming up:\r\n\r\n"+
			"Court: %s\r\n"+
			"Starts: %s\r\n"+
			"Reservation: %s\r\n\r\n"+
			"See you on the court!\r\n%s\r\n",
		displayName(p.UserName), p.CourtName, formatDateTime(p.StartsAt), p.ReservationID, c.fromName,
	)
	return c.send(ctx, p.ToEmail, subject, body)
}

// SendConfirmation sends a reservation confirmation email.
func (c *Client) SendConfirmation(ctx context.Context, p notifier.ConfirmationPayload) (notifier.Result, error) {
	subject := fmt.Sprintf("Your %s reservation is confirmed", p.CourtName)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"Your reservation is confirmed:\r\n\r\n"+
			"Court: %s\r\n"+
			"Starts: %s\r\n"+
			"Ends: %s\r\n"+
			"Total: %.2f\r\n"+
			"Reservation: %s\r\n\r\n"+
			"See you on the court!\r\n%s\r\n",
		displayName(p.UserName), p.CourtName, formatDateTime(p.StartsAt), formatTime(p.EndsAt),
		p.TotalPrice, p.ReservationID, c.fromName,
	)
	return c.send(ctx, p.ToEmail, subject, body)
}

// send transmits one message. A rejection by the relay is an ordinary delivery
// failure reported in-band; only a missing recipient or a cancelled context is
// treated as a transport-level error.
func (c *Client) send(ctx context.Context, to, subject, body string) (notifier.Result, error) {
	if to == "" {
		return notifier.Result{}, fmt.Errorf("no recipient address provided")
	}
	if err := ctx.Err(); err != nil {
		return notifier.Result{}, err
	}

	messageID := uuid.NewString()
	msg := buildMessage(c.from, c.fromName, to, subject, messageID, body)

	if err := smtp.SendMail(c.addr, nil, c.from, []string{to}, []byte(msg)); err != nil {
		c.log.Warn(fmt.Sprintf("SMTP relay rejected message %s to %s: %v", messageID, to, err))
		return notifier.Result{Delivered: false, MessageID: messageID, Reason: err.Error()}, nil
	}

	c.log.Debug(fmt.Sprintf("Delivered message %s to %s", messageID, to))
	return notifier.Result{Delivered: true, MessageID: messageID}, nil
}

func buildMessage(from, fromName, to, subject, messageID, body string) string {
	// Minimal RFC 5322 message; enough for Mailpit and most SMTP relays.
	return fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMessage-ID: <%s@courtmate>\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		fromName,
		from,
		to,
		subject,
		messageID,
		body,
	)
}

// formatDateTime formats a timestamp for display in emails.
func formatDateTime(t time.Time) string {
	return t.Format("Monday, January 2, 2006 at 3:04 PM")
}

// formatTime formats a time of day for display in emails.
func formatTime(t time.Time) string {
	return t.Format("3:04 PM")
}

func displayName(name string) string {
	if name == "" {
		return "Valued Customer"
	}
	return name
}
