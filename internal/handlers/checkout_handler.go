// internal/handlers/checkout_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/xpbeats/xpbeats-backend/internal/services"
	"github.com/xpbeats/xpbeats-backend/internal/utils"
)

type CheckoutHandler struct {
	orderService *services.OrderService
}

func NewCheckoutHandler(orderService *services.OrderService) *CheckoutHandler {
	return &CheckoutHandler{orderService: orderService}
}

type CreateCheckoutRequest struct {
	Items        []services.CartItemInput `json:"items" validate:"required,min=1,dive"`
	CustomerName string                   `json:"customer_name" validate:"max=255"`
}

// CreateSession handles POST /v1/checkout/session. The submitted cart
// carries only beat ids and tiers; totals come from the live catalog.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	email, _ := utils.GetUserEmailFromContext(c)

	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	result, err := h.orderService.CreateOrder(userID, email, req.CustomerName, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}
