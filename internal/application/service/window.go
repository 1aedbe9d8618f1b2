package service

import (
	"fmt"
	"time"
)

// Default reminder policy: remind 2 hours before the start, scanning every
// 10 minutes with a ±10 minute tolerance. The tolerance must be at least half
// the scan interval, otherwise back-to-back windows leave a gap and a
// reservation starting exactly on a scan boundary is never picked up.
const (
	DefaultLeadTime     = 2 * time.Hour
	DefaultTolerance    = 10 * time.Minute
	DefaultScanInterval = 10 * time.Minute
)

// Window is the half-open interval [Start, End) of starts_at values currently
// due for a reminder.
type Window struct {
	Start time.Time
	End   time.Time
}

// ComputeReminderWindow returns the eligibility window for a scan running at
// now: reservations starting leadTime from now, widened by tolerance on both
// sides.
func ComputeReminderWindow(now time.Time, leadTime, tolerance time.Duration) Window {
	target := now.Add(leadTime)
	return Window{
		Start: target.Add(-tolerance),
		End:   target.Add(tolerance),
	}
}

// Contains reports whether t falls inside the window. The upper bound is
// exclusive so consecutive windows never claim the same instant twice.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}
