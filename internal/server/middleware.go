package server

import (
	"time"

	"gigboard/utils"

	"github.com/gin-gonic/gin"
)

// RequestIDHeader carries the per-request ID back to the client. An inbound
// value is honored so a frontend can correlate its own traces.
const RequestIDHeader = "X-Request-ID"

// RequestLoggerMiddleware tags every request with an ID and logs it with
// timing once the handler chain finishes. The ID lands in the response
// header and in error envelopes via utils.JSONError.
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	requestID := c.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = utils.GenerateID()
	}
	c.Set(utils.RequestIDKey, requestID)
	c.Writer.Header().Set(RequestIDHeader, requestID)

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"request_id": requestID,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
	})
}
