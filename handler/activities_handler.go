package handler

import (
	"main/dto"
	"main/middleware"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// ListActivitiesHandler returns the session's activities, newest
// first.
func ListActivitiesHandler(c *gin.Context, activities *services.ActivityService) {
	session := middleware.CurrentZoneSession(c)

	list, err := activities.List(c.Request.Context(), session)
	if err != nil {
		utils.InternalError(c, "Failed to list activities")
		return
	}

	utils.Success(c, "Activities", dto.ToActivityResponses(list))
}

// StartActivityHandler opens a new activity on the session.
func StartActivityHandler(c *gin.Context, activities *services.ActivityService) {
	session := middleware.CurrentZoneSession(c)

	var req dto.StartActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	activity, err := activities.Start(c.Request.Context(), session, req.Title, req.OpeningNote, req.OpeningPhoto)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Activity started", dto.ToActivityResponse(activity))
}

// FinishActivityHandler closes an open activity with its completion
// evidence.
func FinishActivityHandler(c *gin.Context, activities *services.ActivityService) {
	session := middleware.CurrentZoneSession(c)
	activityID := c.Param("id")

	var req dto.FinishActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	activity, err := activities.Finish(c.Request.Context(), session, activityID, req.ClosingNote, req.ClosingPhoto)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Activity finished", dto.ToActivityResponse(activity))
}

// CancelActivityHandler abandons an open activity.
func CancelActivityHandler(c *gin.Context, activities *services.ActivityService) {
	session := middleware.CurrentZoneSession(c)
	activityID := c.Param("id")

	activity, err := activities.Cancel(c.Request.Context(), session, activityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Activity cancelled", dto.ToActivityResponse(activity))
}
