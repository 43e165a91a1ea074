package handler

import (
	"main/dto"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// AdminListVisitorsHandler returns the visitor roster.
func AdminListVisitorsHandler(c *gin.Context, users *repository.UsersRepo) {
	visitors, err := users.ListVisitors(c.Request.Context())
	if err != nil {
		utils.InternalError(c, "Failed to list visitors")
		return
	}

	responses := make([]dto.UserResponse, len(visitors))
	for i, visitor := range visitors {
		responses[i] = dto.ToUserResponse(visitor)
	}
	utils.Success(c, "Visitors", responses)
}

// AdminListSessionsHandler lists sessions for the back office. With a
// subject_id query it returns that subject's history, newest first;
// without one, every currently open session.
func AdminListSessionsHandler(c *gin.Context, sessions services.SessionStore) {
	ctx := c.Request.Context()

	if subjectID := c.Query("subject_id"); subjectID != "" {
		list, err := sessions.ListBySubject(ctx, subjectID)
		if err != nil {
			utils.InternalError(c, "Failed to list sessions")
			return
		}
		utils.Success(c, "Subject sessions", dto.ToAdminSessionResponses(list))
		return
	}

	list, err := sessions.ListActive(ctx)
	if err != nil {
		utils.InternalError(c, "Failed to list sessions")
		return
	}
	utils.Success(c, "Open sessions", dto.ToAdminSessionResponses(list))
}

// AdminReactivateSessionHandler reopens a closed session with a fresh
// workday cutoff, the administrative exception flow for visits that
// must re-enter after a forced closure.
func AdminReactivateSessionHandler(c *gin.Context, zone *services.ZoneService) {
	sessionID := c.Param("id")

	var req dto.ReactivateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: workday_cutoff must be HH:MM")
		return
	}

	session, err := zone.Reactivate(c.Request.Context(), sessionID, req.WorkdayCutoff)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Session reactivated", dto.ToAdminSessionResponse(session))
}
