package middleware

import (
	"context"
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// Request guards for the zone workflow, composed per route in order:
// auth -> expiry -> entry/action. Each returns an explicit deny with a
// redirect hint instead of silently passing through.

// Paths used in redirect hints.
const (
	EntryPath  = "/api/zone/open"
	StatusPath = "/api/zone/status"
)

// EntryGuard rejects subjects that already hold a non-closed session,
// preventing duplicate opens.
func EntryGuard(sessions services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.Forbidden(c, "No resolvable identity")
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		session, err := sessions.FindActiveBySubject(ctx, user.UserID)
		if err != nil {
			utils.InternalError(c, "Failed to check current session")
			c.Abort()
			return
		}
		if session != nil {
			utils.Forbidden(c, "You are already inside a zone", gin.H{
				"redirect_url": StatusPath,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ActionGuard requires a session in PENDING_CHECKLIST or ACTIVE state
// and injects it into the context for the handler.
func ActionGuard(sessions services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.Forbidden(c, "No resolvable identity")
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		session, err := sessions.FindActiveBySubject(ctx, user.UserID)
		if err != nil {
			utils.InternalError(c, "Failed to check current session")
			c.Abort()
			return
		}
		if session == nil {
			utils.Forbidden(c, "No active zone session", gin.H{
				"redirect_url": EntryPath,
			})
			c.Abort()
			return
		}

		c.Set(ContextSession, session)
		c.Next()
	}
}

// ExpiryGuard enforces the workday budget. When the budget is gone it
// force-closes the session first and only then denies the request:
// the next request's entry guard must already see a closed session, so
// the subject is let back into the entry flow instead of looping.
func ExpiryGuard(zone *services.ZoneService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.Forbidden(c, "No resolvable identity")
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		session, err := zone.Sessions.FindActiveBySubject(ctx, user.UserID)
		if err != nil {
			utils.InternalError(c, "Failed to check current session")
			c.Abort()
			return
		}
		if session == nil {
			// Nothing to expire; the action guard decides next.
			c.Next()
			return
		}

		remaining := zone.RemainingSeconds(session, user, time.Now())
		if remaining > 0 {
			c.Next()
			return
		}

		if _, err := zone.ForceCloseOnExpiry(ctx, session); err != nil {
			utils.InternalError(c, "Failed to close expired session")
			c.Abort()
			return
		}

		utils.Forbidden(c, services.ErrTimeExpired.Error(), gin.H{
			"redirect_url": EntryPath,
		})
		c.Abort()
	}
}
