// internal/handlers/admin_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xpbeats/xpbeats-backend/internal/services"
	"github.com/xpbeats/xpbeats-backend/internal/utils"
)

// AdminHandler serves the management API. Role enforcement lives in the
// AdminRequired middleware, not here.
type AdminHandler struct {
	catalogService    *services.CatalogService
	adminService      *services.AdminService
	newsletterService *services.NewsletterService
}

func NewAdminHandler(
	catalogService *services.CatalogService,
	adminService *services.AdminService,
	newsletterService *services.NewsletterService,
) *AdminHandler {
	return &AdminHandler{
		catalogService:    catalogService,
		adminService:      adminService,
		newsletterService: newsletterService,
	}
}

// CreateBeat handles POST /v1/admin/beats.
func (h *AdminHandler) CreateBeat(c *gin.Context) {
	var req services.CreateBeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	beat, err := h.catalogService.CreateBeat(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, beat)
}

// UpdateBeat handles PUT /v1/admin/beats/:id.
func (h *AdminHandler) UpdateBeat(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid beat ID", nil)
		return
	}

	var req services.UpdateBeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	beat, err := h.catalogService.UpdateBeat(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, beat)
}

// DeleteBeat handles DELETE /v1/admin/beats/:id. The beat is deactivated,
// not removed, so completed orders keep their references.
func (h *AdminHandler) DeleteBeat(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid beat ID", nil)
		return
	}

	if err := h.catalogService.DeactivateBeat(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deactivated": true})
}

// DashboardStats handles GET /v1/admin/dashboard/stats.
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// ListOrders handles GET /v1/admin/orders.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	params := utils.GetListParams(c)

	orders, total, err := h.adminService.ListOrders(params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SetListHeaders(c, total, params)
	utils.SuccessResponseWithMeta(c, orders, gin.H{
		"total":  total,
		"limit":  params.Limit,
		"offset": params.Offset,
	})
}

// ListSubscribers handles GET /v1/admin/subscribers.
func (h *AdminHandler) ListSubscribers(c *gin.Context) {
	params := utils.GetListParams(c)

	subs, total, err := h.newsletterService.ListSubscribers(params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SetListHeaders(c, total, params)
	utils.SuccessResponseWithMeta(c, subs, gin.H{
		"total":  total,
		"limit":  params.Limit,
		"offset": params.Offset,
	})
}
