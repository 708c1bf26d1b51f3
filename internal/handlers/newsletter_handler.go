// internal/handlers/newsletter_handler.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/xpbeats/xpbeats-backend/internal/services"
	"github.com/xpbeats/xpbeats-backend/internal/utils"
)

type NewsletterHandler struct {
	newsletterService *services.NewsletterService
}

func NewNewsletterHandler(newsletterService *services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=255"`
}

// Subscribe handles POST /v1/newsletter/subscribe. An already active
// address gets 409 so the storefront can show "already subscribed".
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	sub, err := h.newsletterService.Subscribe(req.Email, req.Name, "website")
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			utils.ConflictResponse(c, "This email is already subscribed")
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"email": sub.Email})
}

type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Unsubscribe handles POST /v1/newsletter/unsubscribe.
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	if err := h.newsletterService.Unsubscribe(req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"unsubscribed": true})
}
