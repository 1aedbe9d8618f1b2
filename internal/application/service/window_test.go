package service

import (
	"testing"
	"time"
)

func TestComputeReminderWindow_DefaultPolicy(t *testing.T) {
	now := time.Date(2026, 5, 12, 14, 0, 0, 0, time.UTC)

	w := ComputeReminderWindow(now, DefaultLeadTime, DefaultTolerance)

	wantStart := now.Add(1*time.Hour + 50*time.Minute)
	wantEnd := now.Add(2*time.Hour + 10*time.Minute)
	if !w.Start.Equal(wantStart) {
		t.Fatalf("expected window start %s, got %s", wantStart, w.Start)
	}
	if !w.End.Equal(wantEnd) {
		t.Fatalf("expected window end %s, got %s", wantEnd, w.End)
	}
}

func TestWindow_ContainsHalfOpenBounds(t *testing.T) {
	now := time.Date(2026, 5, 12, 14, 0, 0, 0, time.UTC)
	w := ComputeReminderWindow(now, DefaultLeadTime, DefaultTolerance)

	if !w.Contains(w.Start) {
		t.Fatalf("expected lower bound %s to be included", w.Start)
	}
	if w.Contains(w.End) {
		t.Fatalf("expected upper bound %s to be excluded", w.End)
	}
	if !w.Contains(w.End.Add(-time.Second)) {
		t.Fatalf("expected instant just before upper bound to be included")
	}
	if w.Contains(w.Start.Add(-time.Second)) {
		t.Fatalf("expected instant just before lower bound to be excluded")
	}
}

func TestComputeReminderWindow_ConsecutiveScansLeaveNoGap(t *testing.T) {
	now := time.Date(2026, 5, 12, 14, 0, 0, 0, time.UTC)

	first := ComputeReminderWindow(now, DefaultLeadTime, DefaultTolerance)
	second := ComputeReminderWindow(now.Add(DefaultScanInterval), DefaultLeadTime, DefaultTolerance)

	if second.Start.After(first.End) {
		t.Fatalf("gap between consecutive windows: first ends %s, second starts %s", first.End, second.Start)
	}

	// Every start instant between the two windows belongs to exactly one of them.
	for offset := time.Duration(0); offset < 40*time.Minute; offset += time.Minute {
		instant := first.Start.Add(offset)
		if instant.Before(second.End) && !first.Contains(instant) && !second.Contains(instant) {
			t.Fatalf("instant %s covered by neither window", instant)
		}
	}
}
