// internal/handlers/order_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/xpbeats/xpbeats-backend/internal/services"
	"github.com/xpbeats/xpbeats-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetMyOrders handles GET /v1/orders: the caller's completed purchases with
// freshly presigned download links.
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orders, err := h.orderService.GetUserOrders(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.orderService.SignItemURLs(orders)
	utils.SuccessResponse(c, orders)
}
