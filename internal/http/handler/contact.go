package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/termfolio/internal/contact"
)

// contact relays a form submission by email. The body mirrors the terminal
// contact flow: {"name": ..., "message": ...}.
func (h *Handler) contact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and message are required"})
		return
	}

	sender := h.cfg.Sender
	if sender == nil {
		h.log.Warn("contact form used without a mail sender")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	if err := sender.Send(c.Request.Context(), msg); err != nil {
		if errors.Is(err, contact.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and message are required"})
			return
		}
		h.log.WithError(err).Error("sending contact email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
