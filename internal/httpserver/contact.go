package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/service/contact"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (h *handlers) submitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	_, err := h.deps.ContactSvc.Submit(c.Request.Context(), contact.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	switch {
	case errors.Is(err, contact.ErrMissingFields):
		writeError(c, http.StatusBadRequest, "Email and message are required")
	case errors.Is(err, contact.ErrInvalidEmail):
		writeError(c, http.StatusBadRequest, "Email is invalid")
	case err != nil:
		h.logger.Printf("contact handler: submit: %v", err)
		writeError(c, http.StatusInternalServerError, "Failed to send message")
	default:
		c.JSON(http.StatusAccepted, gin.H{"success": true})
	}
}
