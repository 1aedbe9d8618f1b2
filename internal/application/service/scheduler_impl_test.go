package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/application/dto"

	"github.com/robfig/cron/v3"
)

// fakeCron captures registered jobs so tests can fire them without timers.
type fakeCron struct {
	specs   []string
	jobs    []func()
	removed []cron.EntryID
	stopped bool
	addErr  error
}

func (f *fakeCron) AddJob(spec string, cmd func()) (cron.EntryID, error) {
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.specs = append(f.specs, spec)
	f.jobs = append(f.jobs, cmd)
	return cron.EntryID(len(f.jobs)), nil
}

func (f *fakeCron) RemoveJob(id cron.EntryID) {
	f.removed = append(f.removed, id)
}

func (f *fakeCron) Stop() {
	f.stopped = true
}

// stubNotificationService returns canned scan results.
type stubNotificationService struct {
	stats CycleStats
	err   error
	runs  int
}

func (s *stubNotificationService) RunScanCycle(ctx context.Context, now time.Time) (CycleStats, error) {
	s.runs++
	return s.stats, s.err
}

func (s *stubNotificationService) SendReminderNow(ctx context.Context, reservationID string) (dto.SendOutcome, error) {
	return dto.SendOutcome{}, nil
}

func (s *stubNotificationService) SendConfirmation(ctx context.Context, reservationID string) (dto.SendOutcome, error) {
	return dto.SendOutcome{}, nil
}

func (s *stubNotificationService) UpcomingReminders(ctx context.Context, now time.Time) (*dto.UpcomingRemindersResponse, error) {
	return &dto.UpcomingRemindersResponse{}, nil
}

func TestSchedulerService_StartRegistersRecurringScan(t *testing.T) {
	fake := &fakeCron{}
	svc := NewSchedulerService(fake, &stubNotificationService{}, 10*time.Minute, noopLogger{})

	if err := svc.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.specs) != 1 {
		t.Fatalf("expected one registered job, got %d", len(fake.specs))
	}
	if !strings.HasPrefix(fake.specs[0], "@every ") {
		t.Fatalf("expected an @every spec, got %q", fake.specs[0])
	}

	// A second Start must not register a duplicate job.
	if err := svc.Start(); err != nil {
		t.Fatalf("unexpected error on repeated Start: %v", err)
	}
	if len(fake.specs) != 1 {
		t.Fatalf("repeated Start registered a duplicate job")
	}
}

func TestSchedulerService_RecordsLastCycle(t *testing.T) {
	fake := &fakeCron{}
	stub := &stubNotificationService{stats: CycleStats{Candidates: 3, Sent: 2, Failed: 1}}
	svc := NewSchedulerService(fake, stub, 10*time.Minute, noopLogger{})

	if _, ok := svc.LastCycle(); ok {
		t.Fatalf("no cycle should be reported before the first run")
	}

	if err := svc.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fake.jobs[0]()

	report, ok := svc.LastCycle()
	if !ok {
		t.Fatalf("expected a cycle report after the job ran")
	}
	if report.Stats.Sent != 2 || report.Stats.Candidates != 3 || report.Stats.Failed != 1 {
		t.Fatalf("unexpected stats in report: %+v", report.Stats)
	}
	if report.Err != "" {
		t.Fatalf("expected no error in report, got %q", report.Err)
	}
	if stub.runs != 1 {
		t.Fatalf("expected exactly one scan, got %d", stub.runs)
	}
}

func TestSchedulerService_RecordsScanError(t *testing.T) {
	fake := &fakeCron{}
	stub := &stubNotificationService{err: errors.New("store unreachable")}
	svc := NewSchedulerService(fake, stub, 10*time.Minute, noopLogger{})

	if err := svc.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fake.jobs[0]()

	report, ok := svc.LastCycle()
	if !ok {
		t.Fatalf("expected a cycle report after the failed run")
	}
	if !strings.Contains(report.Err, "store unreachable") {
		t.Fatalf("expected the scan error in the report, got %q", report.Err)
	}
}

func TestSchedulerService_StopRemovesJobAndStopsCron(t *testing.T) {
	fake := &fakeCron{}
	svc := NewSchedulerService(fake, &stubNotificationService{}, 10*time.Minute, noopLogger{})

	if err := svc.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.Stop()

	if len(fake.removed) != 1 {
		t.Fatalf("expected the scan job to be removed, removed=%v", fake.removed)
	}
	if !fake.stopped {
		t.Fatalf("expected the cron engine to be stopped")
	}
}
