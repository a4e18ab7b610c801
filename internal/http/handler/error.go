package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/termfolio/internal/http/middleware"
)

// errorPayload is the standard error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError aborts with a standard JSON error. message must be safe to show.
func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorPayload{
		RequestID: middleware.GetRequestID(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

func notFound(c *gin.Context) {
	writeError(c, http.StatusNotFound, "NOT_FOUND", "resource not found")
}

func methodNotAllowed(c *gin.Context) {
	writeError(c, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}
