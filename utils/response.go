package utils

import (
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key under which the request-logging
// middleware stores the request ID.
const RequestIDKey = "requestID"

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response, carrying the request ID when
// the request passed through the logging middleware so clients can quote it.
func JSONError(c *gin.Context, status int, err error, message string) {
	body := gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	}
	if requestID := c.GetString(RequestIDKey); requestID != "" {
		body["request_id"] = requestID
	}
	c.JSON(status, body)
}
