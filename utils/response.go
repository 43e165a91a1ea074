package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Payload   interface{} `json:"payload"`
	Timestamp string      `json:"timestamp"`
}

func envelope(success bool, message string, payload interface{}) *Response {
	return &Response{
		Success:   success,
		Message:   message,
		Payload:   payload,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// Success responses

func Success(c *gin.Context, message string, payload interface{}) {
	c.JSON(http.StatusOK, envelope(true, message, payload))
}

func Created(c *gin.Context, message string, payload interface{}) {
	c.JSON(http.StatusCreated, envelope(true, message, payload))
}

// Error responses

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope(false, message, nil))
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, envelope(false, message, nil))
}

func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, envelope(false, message, nil))
}

func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, envelope(false, message, nil))
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, envelope(false, message, nil))
}

// Forbidden optionally carries a payload so guards can attach a
// redirect hint next to the denial.
func Forbidden(c *gin.Context, message string, payload ...interface{}) {
	var data interface{}
	if len(payload) > 0 {
		data = payload[0]
	}
	c.JSON(http.StatusForbidden, envelope(false, message, data))
}

func TooManyRequests(c *gin.Context, message string) {
	c.JSON(http.StatusTooManyRequests, envelope(false, message, nil))
}
