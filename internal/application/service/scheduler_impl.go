package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	appErrors "github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/pkg/errors"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// scanTimeout bounds a single scan cycle. A cycle still running when the next
// one fires is harmless, since the conditional update decides who gets credit,
// but it should not hang forever on a stuck notifier.
const scanTimeout = 5 * time.Minute

// RecurringScheduler is the scheduling port the service needs from the cron
// infrastructure. Kept narrow so tests can drive the scan without real timers.
type RecurringScheduler interface {
	AddJob(spec string, cmd func()) (cron.EntryID, error)
	RemoveJob(id cron.EntryID)
	Stop()
}

type schedulerService struct {
	cronScheduler   RecurringScheduler
	notificationSvc NotificationService
	interval        time.Duration
	log             logger.Logger

	mu        sync.Mutex // Protects entryID, started and lastCycle
	entryID   cron.EntryID
	started   bool
	lastCycle *CycleReport
}

// NewSchedulerService creates a new instance of SchedulerService implementation.
func NewSchedulerService(
	cronScheduler RecurringScheduler,
	notificationSvc NotificationService,
	interval time.Duration,
	log logger.Logger,
) SchedulerService {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	return &schedulerService{
		cronScheduler:   cronScheduler,
		notificationSvc: notificationSvc,
		interval:        interval,
		log:             log,
	}
}

// Start registers the recurring reminder scan job.
func (s *schedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		s.log.Warn("Reminder scan job already started, ignoring Start()")
		return nil
	}

	spec := fmt.Sprintf("@every %s", s.interval)
	entryID, err := s.cronScheduler.AddJob(spec, s.runScan)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	s.entryID = entryID
	s.started = true
	s.log.Info(fmt.Sprintf("Reminder scan scheduled every %s (Job ID: %d)", s.interval, entryID))
	return nil
}

// runScan is the recurring job body. Errors never escape; the next cycle is
// the retry for anything transient.
func (s *schedulerService) runScan() {
	startedAt := time.Now().UTC()
	s.log.Info("Checking for upcoming reservations...")

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	stats, err := s.notificationSvc.RunScanCycle(ctx, startedAt)

	report := CycleReport{
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Stats:      stats,
	}
	if err != nil {
		report.Err = err.Error()
		s.log.Error("Reminder scan cycle failed", err)
	}

	s.mu.Lock()
	s.lastCycle = &report
	s.mu.Unlock()
}

// Stop removes the scan job and stops the underlying scheduler.
func (s *schedulerService) Stop() {
	s.mu.Lock()
	if s.started {
		s.cronScheduler.RemoveJob(s.entryID)
		s.started = false
	}
	s.mu.Unlock()

	s.cronScheduler.Stop()
	s.log.Info("Reminder scheduler stopped.")
}

// LastCycle returns the most recent cycle report.
func (s *schedulerService) LastCycle() (CycleReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastCycle == nil {
		return CycleReport{}, false
	}
	return *s.lastCycle, true
}
