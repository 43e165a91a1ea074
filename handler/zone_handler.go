package handler

import (
	"log"
	"time"

	"main/dto"
	"main/middleware"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// OpenZoneHandler creates the subject's session. The entry guard has
// already rejected subjects that are inside a zone.
func OpenZoneHandler(c *gin.Context, zone *services.ZoneService) {
	user := middleware.CurrentUser(c)

	var req dto.OpenZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	// The entry flow is QR-driven from a handheld; desktop entries
	// are legitimate but worth a trace.
	if !utils.IsMobileAgent(c.Request.UserAgent()) {
		log.Printf("zone entry from non-mobile agent for user %s", user.UserID)
	}

	session, err := zone.Open(c.Request.Context(), user, services.OpenZoneInput{
		SponsorDocument: req.SponsorDocument,
		LocationCode:    req.LocationCode,
		Modality:        req.Modality,
		DeviceInfo:      utils.DeviceSummary(c.Request.UserAgent()),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Zone entry registered"
	if session.State == model.StatePendingChecklist {
		message = "Zone entry registered. Declare your equipment to continue"
	}
	utils.Created(c, message, dto.ToZoneSessionResponse(session))
}

// ZoneStatusHandler reports the current session and its remaining
// workday budget. It never force-closes; display only.
func ZoneStatusHandler(c *gin.Context, zone *services.ZoneService) {
	user := middleware.CurrentUser(c)

	session, err := zone.Sessions.FindActiveBySubject(c.Request.Context(), user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to look up current session")
		return
	}
	if session == nil {
		utils.Success(c, "No active zone session", gin.H{
			"inside":       false,
			"redirect_url": middleware.EntryPath,
		})
		return
	}

	payload := gin.H{
		"inside":  true,
		"session": dto.ToZoneStatusResponse(session, zone.RemainingSeconds(session, user, time.Now())),
	}
	if location, err := zone.Locations.FindByID(c.Request.Context(), session.LocationID); err == nil && location != nil {
		payload["location"] = dto.ToLocationResponse(location)
	}
	utils.Success(c, "Zone session status", payload)
}

// ResolveLocationHandler turns a scanned QR code into the zone it
// labels, so the entry screen can confirm before opening.
func ResolveLocationHandler(c *gin.Context, locations services.LocationStore) {
	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "The code parameter is required")
		return
	}

	location, err := locations.FindByQRCode(c.Request.Context(), code)
	if err != nil {
		utils.InternalError(c, "Failed to resolve zone code")
		return
	}
	if location == nil {
		utils.NotFound(c, "The code does not match a valid zone")
		return
	}

	utils.Success(c, "Zone resolved", dto.ToLocationResponse(location))
}

// ListDocumentsHandler returns the subject's archived entry/exit
// records, newest first.
func ListDocumentsHandler(c *gin.Context, documents *repository.DocumentsRepo) {
	user := middleware.CurrentUser(c)

	docs, err := documents.ListByUser(c.Request.Context(), user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to list records")
		return
	}

	utils.Success(c, "Entry and exit records", docs)
}

// CloseZoneHandler ends the session voluntarily. The action guard put
// the session in context; the expiry guard already ran.
func CloseZoneHandler(c *gin.Context, zone *services.ZoneService) {
	session := middleware.CurrentZoneSession(c)

	closed, err := zone.Close(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Zone exit registered", dto.ToZoneSessionResponse(closed))
}
