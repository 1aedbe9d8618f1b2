package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation represents a court booking. The booking service owns the row;
// this service only reads it and stamps the *_sent_at markers.
type Reservation struct {
	ID                 string     `gorm:"column:id;primaryKey"`
	CourtID            string     `gorm:"column:court_id;index"`
	UserID             string     `gorm:"column:user_id;index"`
	StartsAt           time.Time  `gorm:"column:starts_at;index"`
	EndsAt             time.Time  `gorm:"column:ends_at"`
	TotalPrice         float64    `gorm:"column:total_price"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CancelReason       *string    `gorm:"column:cancel_reason"`
	ConfirmationSentAt *time.Time `gorm:"column:confirmation_sent_at"`
	ReminderSentAt     *time.Time `gorm:"column:reminder_sent_at"`

	Court *Court `gorm:"foreignKey:CourtID"`
	User  *User  `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Reservation entity.
func (Reservation) TableName() string {
	return "reservations"
}

// BeforeCreate assigns a UUID when the booking flow did not provide one.
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// IsCancelled reports whether the reservation is void for notification purposes.
func (r *Reservation) IsCancelled() bool {
	return r.CancelledAt != nil
}

// ReminderSent reports whether a reminder was already committed for this reservation.
func (r *Reservation) ReminderSent() bool {
	return r.ReminderSentAt != nil
}

// RecipientEmail returns the joined user's email, or "" when unresolvable.
func (r *Reservation) RecipientEmail() string {
	if r.User == nil {
		return ""
	}
	return r.User.Email
}

// RecipientName returns the joined user's display name, or "" when unresolvable.
func (r *Reservation) RecipientName() string {
	if r.User == nil {
		return ""
	}
	return r.User.FullName
}

// CourtName returns the joined court's name, defaulting to "Court" like the
// booking confirmation emails do.
func (r *Reservation) CourtName() string {
	if r.Court == nil || r.Court.Name == "" {
		return "Court"
	}
	return r.Court.Name
}
