package services

import (
	"testing"
	"time"

	"main/model"
)

func TestRemainingSecondsFixedCutoff(t *testing.T) {
	entry := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	policy := WorkdayPolicy{Cutoff: "17:00", DefaultDuration: 8 * time.Hour}

	t.Run("before cutoff", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 16, 59, 0, 0, time.UTC)
		remaining := RemainingSeconds(entry, policy, now)
		if remaining != 60 {
			t.Errorf("expected 60 seconds remaining, got %d", remaining)
		}
	})

	t.Run("at cutoff", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
		if remaining := RemainingSeconds(entry, policy, now); remaining != 0 {
			t.Errorf("expected 0 at the cutoff, got %d", remaining)
		}
		if !Expired(entry, policy, now) {
			t.Error("zero remaining should count as expired")
		}
	})

	t.Run("past cutoff goes negative", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 17, 1, 0, 0, time.UTC)
		remaining := RemainingSeconds(entry, policy, now)
		if remaining != -60 {
			t.Errorf("expected -60 past the cutoff, got %d", remaining)
		}
	})
}

func TestRemainingSecondsOvernightCutoff(t *testing.T) {
	// Entry at 22:00 with a 02:00 cutoff means 02:00 the next day.
	entry := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	policy := WorkdayPolicy{Cutoff: "02:00", DefaultDuration: 8 * time.Hour}

	t.Run("still inside the shift", func(t *testing.T) {
		now := time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC)
		remaining := RemainingSeconds(entry, policy, now)
		if remaining != 3600 {
			t.Errorf("expected 3600 seconds remaining, got %d", remaining)
		}
	})

	t.Run("wrap applies once only", func(t *testing.T) {
		// Two days later the session is very expired, never
		// recomputed onto a later day.
		now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
		if remaining := RemainingSeconds(entry, policy, now); remaining >= 0 {
			t.Errorf("expected a negative budget, got %d", remaining)
		}
	})
}

func TestRemainingSecondsDefaultDuration(t *testing.T) {
	entry := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	policy := WorkdayPolicy{DefaultDuration: 8 * time.Hour}

	now := time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)
	remaining := RemainingSeconds(entry, policy, now)
	if remaining != 3600 {
		t.Errorf("expected 3600 seconds left of the 8h budget, got %d", remaining)
	}
}

func TestRemainingSecondsInvalidCutoffFallsBack(t *testing.T) {
	entry := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	policy := WorkdayPolicy{Cutoff: "25:99", DefaultDuration: 8 * time.Hour}

	now := entry.Add(7 * time.Hour)
	remaining := RemainingSeconds(entry, policy, now)
	if remaining != 3600 {
		t.Errorf("invalid cutoff should fall back to the default duration, got %d", remaining)
	}
}

func TestPolicyFor(t *testing.T) {
	user := &model.User{UserID: "u1", WorkdayCutoff: "18:30"}
	policy := PolicyFor(user, 8*time.Hour)
	if policy.Cutoff != "18:30" {
		t.Errorf("expected the subject's cutoff, got %q", policy.Cutoff)
	}
	if policy.DefaultDuration != 8*time.Hour {
		t.Errorf("expected the default duration to carry over, got %s", policy.DefaultDuration)
	}
}
