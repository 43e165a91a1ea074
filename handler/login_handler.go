package handler

import (
	"log"

	"main/dto"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// LoginHandler authenticates by document number alone. Identity here
// is possession of a registered document; the kiosk flow has no
// passwords. The jail is consulted before anything else so banned
// addresses cannot probe the directory.
func LoginHandler(c *gin.Context, users services.UserStore, jail *services.LoginJail) {
	ctx := c.Request.Context()
	clientIP := c.ClientIP()

	allowed, denial, err := jail.Check(ctx, clientIP)
	if err != nil {
		utils.TrackError("auth", "jail_check_failed")
		utils.InternalError(c, "Failed to verify request")
		return
	}
	if !allowed {
		utils.AuthAttempts.WithLabelValues("throttled").Inc()
		utils.TooManyRequests(c, denial)
		return
	}

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("auth", "invalid_request")
		utils.BadRequest(c, "Invalid request")
		return
	}

	dbTimer := utils.TrackDBOperation("find", "users")
	user, err := users.FindByDocument(ctx, req.DocumentNumber)
	dbTimer.ObserveDuration()
	if err != nil {
		utils.TrackError("auth", "user_lookup")
		utils.InternalError(c, "Failed to verify identity")
		return
	}

	if user == nil {
		// Unknown identifier is the only outcome that feeds the jail.
		if err := jail.RecordFailure(ctx, clientIP); err != nil {
			log.Printf("login jail: failed to record failure for %s: %v", clientIP, err)
		}
		utils.AuthAttempts.WithLabelValues("unknown").Inc()
		utils.NotFound(c, "The document is not registered")
		return
	}

	if !user.IsActive {
		// A recognized but deactivated account is not an attack
		// signal; no failure is recorded.
		utils.AuthAttempts.WithLabelValues("inactive").Inc()
		utils.Forbidden(c, "Account is no longer active")
		return
	}

	token, err := services.GenerateToken(user.UserID, user.Role)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.AuthAttempts.WithLabelValues("success").Inc()
	utils.Success(c, "Login successful", dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}
