package services

import (
	"log"
	"math"
	"time"

	"main/model"
)

// WorkdayPolicy is the per-subject rule deciding when a zone session
// must end: a fixed "HH:MM" cutoff if set, otherwise a fixed duration
// counted from entry.
type WorkdayPolicy struct {
	Cutoff          string
	DefaultDuration time.Duration
}

// PolicyFor derives the workday policy for a subject.
func PolicyFor(user *model.User, defaultDuration time.Duration) WorkdayPolicy {
	return WorkdayPolicy{
		Cutoff:          user.WorkdayCutoff,
		DefaultDuration: defaultDuration,
	}
}

// RemainingSeconds returns how many seconds of workday budget are left
// at now for a session entered at entry. The result may be negative;
// callers clamp for display but use the signed value to detect expiry.
//
// A cutoff whose time of day is earlier than the entry's time of day
// is taken to mean the next day (overnight shift). The wrap applies
// once only: a session far past its cutoff is simply very expired, it
// is never recomputed onto a later day.
func RemainingSeconds(entry time.Time, policy WorkdayPolicy, now time.Time) int64 {
	limit := entry.Add(policy.DefaultDuration)

	if policy.Cutoff != "" {
		parsed, err := time.Parse("15:04", policy.Cutoff)
		if err != nil {
			log.Printf("workday: invalid cutoff %q, falling back to default duration", policy.Cutoff)
		} else {
			limit = time.Date(
				entry.Year(), entry.Month(), entry.Day(),
				parsed.Hour(), parsed.Minute(), 0, 0,
				entry.Location(),
			)
			if limit.Before(entry) {
				limit = limit.Add(24 * time.Hour)
			}
		}
	}

	return int64(math.Floor(limit.Sub(now).Seconds()))
}

// Expired reports whether the budget has run out.
func Expired(entry time.Time, policy WorkdayPolicy, now time.Time) bool {
	return RemainingSeconds(entry, policy, now) <= 0
}
