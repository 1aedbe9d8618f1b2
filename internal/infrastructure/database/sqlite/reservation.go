package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/domain/entity"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/domain/repository"

	"gorm.io/gorm"
)

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *gorm.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

// FindByID retrieves a reservation with its court and user resolved.
func (r *reservationRepository) FindByID(ctx context.Context, id string) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := r.db.WithContext(ctx).
		Preload("Court").
		Preload("User").
		First(&reservation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find reservation %s: %w", id, err)
	}
	return &reservation, nil
}

// FindReminderCandidates retrieves reservations with starts_at in
// [windowStart, windowEnd) that are neither cancelled nor already reminded.
// The predicate runs in the store so irrelevant rows are never loaded.
func (r *reservationRepository) FindReminderCandidates(ctx context.Context, windowStart, windowEnd time.Time) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	err := r.db.WithContext(ctx).
		Preload("Court").
		Preload("User").
		Where("starts_at >= ? AND starts_at < ? AND cancelled_at IS NULL AND reminder_sent_at IS NULL", windowStart, windowEnd).
		Order("starts_at asc").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to query reminder candidates in [%v, %v): %w", windowStart, windowEnd, err)
	}
	return reservations, nil
}

// MarkReminderSent performs the conditional state transition. The
// reminder_sent_at IS NULL predicate makes the update a compare-and-set:
// exactly one of any number of racing dispatchers observes RowsAffected == 1.
func (r *reservationRepository) MarkReminderSent(ctx context.Context, id string, sentAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Reservation{}).
		Where("id = ? AND reminder_sent_at IS NULL", id).
		Update("reminder_sent_at", sentAt)
	if result.Error != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to mark reservation %s as reminded: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

// MarkConfirmationSent stamps confirmation_sent_at for the reservation.
func (r *reservationRepository) MarkConfirmationSent(ctx context.Context, id string, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Reservation{}).
		Where("id = ?", id).
		Update("confirmation_sent_at", sentAt)
	if result.Error != nil {
		return fmt.Errorf("🔴 ERROR: failed to mark reservation %s as confirmed: %w", id, result.Error)
	}
	return nil
}
