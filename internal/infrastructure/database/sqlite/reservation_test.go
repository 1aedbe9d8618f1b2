package sqlite

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/domain/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// One named in-memory database per test: shared cache keeps the pool's
	// connections on the same database, the name keeps tests isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func seedReservation(t *testing.T, db *gorm.DB, startsAt time.Time, cancelled bool) *entity.Reservation {
	t.Helper()
	user := &entity.User{Email: "alex@example.com", FullName: "Alex Martin"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	court := &entity.Court{Name: "Center Court", PricePerHour: 20}
	if err := db.Create(court).Error; err != nil {
		t.Fatalf("failed to create court: %v", err)
	}
	reservation := &entity.Reservation{
		CourtID:    court.ID,
		UserID:     user.ID,
		StartsAt:   startsAt,
		EndsAt:     startsAt.Add(time.Hour),
		TotalPrice: 20,
		CreatedAt:  time.Now().UTC(),
	}
	if cancelled {
		cancelledAt := time.Now().UTC()
		reservation.CancelledAt = &cancelledAt
	}
	if err := db.Create(reservation).Error; err != nil {
		t.Fatalf("failed to create reservation: %v", err)
	}
	return reservation
}

func TestFindReminderCandidates_Predicate(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)

	windowStart := time.Date(2026, 5, 12, 15, 50, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 5, 12, 16, 10, 0, 0, time.UTC)

	inside := seedReservation(t, db, windowStart.Add(5*time.Minute), false)
	seedReservation(t, db, windowStart.Add(5*time.Minute), true) // cancelled
	seedReservation(t, db, windowEnd, false)                     // on the exclusive upper bound
	seedReservation(t, db, windowStart.Add(-time.Minute), false) // before the window

	candidates, err := repo.FindReminderCandidates(context.Background(), windowStart, windowEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected exactly 1 candidate, got %d", len(candidates))
	}
	if candidates[0].ID != inside.ID {
		t.Fatalf("expected candidate %s, got %s", inside.ID, candidates[0].ID)
	}
	if candidates[0].RecipientEmail() != "alex@example.com" {
		t.Fatalf("expected user to be resolved, got %q", candidates[0].RecipientEmail())
	}
	if candidates[0].CourtName() != "Center Court" {
		t.Fatalf("expected court to be resolved, got %q", candidates[0].CourtName())
	}
}

func TestFindReminderCandidates_ExcludesAlreadyReminded(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)

	windowStart := time.Date(2026, 5, 12, 15, 50, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 5, 12, 16, 10, 0, 0, time.UTC)
	reservation := seedReservation(t, db, windowStart.Add(5*time.Minute), false)

	if _, err := repo.MarkReminderSent(context.Background(), reservation.ID, time.Now().UTC()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	candidates, err := repo.FindReminderCandidates(context.Background(), windowStart, windowEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("reminded reservation must not be a candidate, got %d", len(candidates))
	}
}

func TestMarkReminderSent_SecondUpdateAffectsZeroRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)

	reservation := seedReservation(t, db, time.Now().UTC().Add(2*time.Hour), false)

	affected, err := repo.MarkReminderSent(context.Background(), reservation.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("first update should affect 1 row, got %d", affected)
	}

	affected, err = repo.MarkReminderSent(context.Background(), reservation.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("second update must affect 0 rows, got %d", affected)
	}

	loaded, err := repo.FindByID(context.Background(), reservation.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.ReminderSentAt == nil {
		t.Fatalf("expected reminder_sent_at to be set")
	}
}

func TestFindByID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)

	_, err := repo.FindByID(context.Background(), "ffffffff-ffff-ffff-ffff-ffffffffffff")
	if err == nil {
		t.Fatalf("expected an error for a missing reservation")
	}
}

func TestMarkConfirmationSent(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)

	reservation := seedReservation(t, db, time.Now().UTC().Add(24*time.Hour), false)

	if err := repo.MarkConfirmationSent(context.Background(), reservation.ID, time.Now().UTC()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := repo.FindByID(context.Background(), reservation.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.ConfirmationSentAt == nil {
		t.Fatalf("expected confirmation_sent_at to be stamped")
	}
}
