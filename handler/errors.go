package handler

import (
	"errors"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the services error taxonomy onto HTTP
// statuses. Anything outside the taxonomy is a 500 with a generic
// message; the wrapped detail goes to the log, not the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrConflict):
		utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPrecondition):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrThrottled):
		utils.TooManyRequests(c, err.Error())
	case errors.Is(err, services.ErrTimeExpired):
		utils.Forbidden(c, services.ErrTimeExpired.Error())
	default:
		utils.TrackError("http", "unhandled_service_error")
		utils.InternalError(c, "Something went wrong")
	}
}
