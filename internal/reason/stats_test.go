package reason

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestStats_Snapshot(t *testing.T) {
	s := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400} {
		s.Record(ms)
	}

	snap := s.Snapshot()
	if snap.Count != 4 {
		t.Errorf("expected count 4, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 400 {
		t.Errorf("expected min 100 max 400, got %d/%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 250 {
		t.Errorf("expected avg 250, got %v", snap.AvgMs)
	}
	if snap.P50Ms != 250 {
		t.Errorf("expected p50 250, got %v", snap.P50Ms)
	}
}

func TestStats_EmptySnapshot(t *testing.T) {
	s := NewStats(time.Hour)
	if snap := s.Snapshot(); snap.Count != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestStats_NegativeDurationClamped(t *testing.T) {
	s := NewStats(time.Hour)
	s.Record(-50)
	if snap := s.Snapshot(); snap.MinMs != 0 {
		t.Errorf("expected negative duration clamped to 0, got %d", snap.MinMs)
	}
}

func TestPercentile(t *testing.T) {
	values := []int64{10, 20, 30, 40, 50}
	if got := percentile(values, 0); got != 10 {
		t.Errorf("p0: expected 10, got %v", got)
	}
	if got := percentile(values, 100); got != 50 {
		t.Errorf("p100: expected 50, got %v", got)
	}
	if got := percentile(values, 50); got != 30 {
		t.Errorf("p50: expected 30, got %v", got)
	}
}

func TestIsRetryable(t *testing.T) {
	err := &RetryableError{StatusCode: 429, Message: "slow down"}
	if !IsRetryable(err) {
		t.Errorf("expected 429 to be retryable")
	}
	if !IsRetryable(fmt.Errorf("call failed: %w", err)) {
		t.Errorf("expected wrapped retryable error to be detected")
	}
	if IsRetryable(errors.New("bad request")) {
		t.Errorf("expected plain error to be non-retryable")
	}
}

func TestBackoff(t *testing.T) {
	for attempt := 0; attempt < 3; attempt++ {
		d := Backoff(attempt)
		base := time.Duration(1<<uint(attempt)) * time.Second
		if d < base || d > base+base/2 {
			t.Errorf("attempt %d: backoff %v outside [%v, %v]", attempt, d, base, base+base/2)
		}
	}
	// Base is capped at 30s regardless of attempt.
	if d := Backoff(10); d > 45*time.Second {
		t.Errorf("expected capped backoff, got %v", d)
	}
}
