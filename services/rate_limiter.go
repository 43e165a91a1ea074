package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"main/utils"
)

// LoginJail applies the tiered ban policy to authentication failures,
// keyed by client address. All state lives in the TTL cache; nothing
// is persisted.
//
// Escalation: maxAttempts failures inside the attempt window earn a
// light ban and a strike; maxStrikes strikes inside the strike window
// earn a severe ban.
type LoginJail struct {
	store CacheStore
	cfg   JailConfig
}

type JailConfig struct {
	MaxAttempts   int
	AttemptWindow time.Duration
	LightBan      time.Duration
	MaxStrikes    int
	StrikeWindow  time.Duration
	SevereBan     time.Duration
}

// JailConfigFromEnv reads thresholds from the environment, keeping the
// source policy as defaults: 5 attempts / 5 min window / 5 min light
// ban / 3 strikes per hour / 24 h severe ban.
func JailConfigFromEnv() JailConfig {
	return JailConfig{
		MaxAttempts:   utils.GetEnvAsInt("JAIL_MAX_ATTEMPTS", 5),
		AttemptWindow: utils.GetEnvAsDuration("JAIL_ATTEMPT_WINDOW", 5*time.Minute),
		LightBan:      utils.GetEnvAsDuration("JAIL_LIGHT_BAN", 5*time.Minute),
		MaxStrikes:    utils.GetEnvAsInt("JAIL_MAX_STRIKES", 3),
		StrikeWindow:  utils.GetEnvAsDuration("JAIL_STRIKE_WINDOW", time.Hour),
		SevereBan:     utils.GetEnvAsDuration("JAIL_SEVERE_BAN", 24*time.Hour),
	}
}

func NewLoginJail(store CacheStore, cfg JailConfig) *LoginJail {
	return &LoginJail{store: store, cfg: cfg}
}

func attemptsKey(ip string) string  { return fmt.Sprintf("jail:attempts:%s", ip) }
func strikesKey(ip string) string   { return fmt.Sprintf("jail:strikes:%s", ip) }
func lightBanKey(ip string) string  { return fmt.Sprintf("jail:ban:light:%s", ip) }
func severeBanKey(ip string) string { return fmt.Sprintf("jail:ban:severe:%s", ip) }

// Check reports whether the client may proceed with login. Denial
// messages stay generic on purpose.
func (j *LoginJail) Check(ctx context.Context, clientIP string) (bool, string, error) {
	if clientIP == "" {
		// Let the request through but leave a trace.
		log.Printf("login jail: could not determine client address")
		return true, "", nil
	}

	banned, err := j.store.HasFlag(ctx, severeBanKey(clientIP))
	if err != nil {
		return false, "", err
	}
	if banned {
		return false, "Address temporarily blocked due to suspicious activity.", nil
	}

	banned, err = j.store.HasFlag(ctx, lightBanKey(clientIP))
	if err != nil {
		return false, "", err
	}
	if banned {
		return false, "Too many attempts. Try again in a few minutes.", nil
	}

	return true, "", nil
}

// RecordFailure registers a genuine authentication failure (unknown
// identifier). A recognized-but-inactive account is a business state,
// not an attack signal, and must not be recorded here.
func (j *LoginJail) RecordFailure(ctx context.Context, clientIP string) error {
	if clientIP == "" {
		log.Printf("login jail: failed attempt without identifiable address")
		return nil
	}

	attempts, err := j.store.Increment(ctx, attemptsKey(clientIP), j.cfg.AttemptWindow)
	if err != nil {
		return fmt.Errorf("failed to count login attempt: %w", err)
	}
	log.Printf("login failed from %s. Attempt %d/%d", clientIP, attempts, j.cfg.MaxAttempts)

	if attempts < int64(j.cfg.MaxAttempts) {
		return nil
	}

	// Threshold reached: light ban, counter reset, strike recorded.
	if err := j.store.SetFlag(ctx, lightBanKey(clientIP), j.cfg.LightBan); err != nil {
		return fmt.Errorf("failed to apply light ban: %w", err)
	}
	utils.BansApplied.WithLabelValues("light").Inc()

	if err := j.store.Delete(ctx, attemptsKey(clientIP)); err != nil {
		log.Printf("login jail: failed to reset attempt counter for %s: %v", clientIP, err)
	}

	strikes, err := j.store.Increment(ctx, strikesKey(clientIP), j.cfg.StrikeWindow)
	if err != nil {
		return fmt.Errorf("failed to count strike: %w", err)
	}
	log.Printf("address %s sent to light ban. Strike %d/%d", clientIP, strikes, j.cfg.MaxStrikes)

	if strikes >= int64(j.cfg.MaxStrikes) {
		if err := j.store.SetFlag(ctx, severeBanKey(clientIP), j.cfg.SevereBan); err != nil {
			return fmt.Errorf("failed to apply severe ban: %w", err)
		}
		utils.BansApplied.WithLabelValues("severe").Inc()
		log.Printf("address %s blocked for %s (possible brute force)", clientIP, j.cfg.SevereBan)
	}

	return nil
}
