// internal/handlers/catalog_handler.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xpbeats/xpbeats-backend/internal/services"
	"github.com/xpbeats/xpbeats-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	storageService *services.StorageService
}

func NewCatalogHandler(catalogService *services.CatalogService, storageService *services.StorageService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		storageService: storageService,
	}
}

// ListBeats handles GET /v1/beats with the catalog filters on the query
// string. Absent numeric filters stay nil so the service skips them.
func (h *CatalogHandler) ListBeats(c *gin.Context) {
	params := utils.GetListParams(c)

	filter := services.BeatFilter{
		Search: c.Query("search"),
		Genre:  c.Query("genre"),
		Key:    c.Query("key"),
		Mood:   c.Query("mood"),
		SortBy: params.SortBy,
		Limit:  params.Limit,
		Offset: params.Offset,
	}

	if v := c.Query("bpm_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.BPMMin = &n
		}
	}
	if v := c.Query("bpm_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.BPMMax = &n
		}
	}
	if v := c.Query("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMin = &f
		}
	}
	if v := c.Query("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMax = &f
		}
	}

	beats, total, err := h.catalogService.ListBeats(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SetListHeaders(c, total, params)
	utils.SuccessResponseWithMeta(c, beats, gin.H{
		"total":  total,
		"limit":  params.Limit,
		"offset": params.Offset,
	})
}

// GetBeat handles GET /v1/beats/:id. The path segment is a beat id or,
// failing uuid parse, a slug, so storefront detail pages can use either.
func (h *CatalogHandler) GetBeat(c *gin.Context) {
	idOrSlug := c.Param("id")

	if id, err := uuid.Parse(idOrSlug); err == nil {
		beat, err := h.catalogService.GetBeat(id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.SuccessResponse(c, beat)
		return
	}

	beat, err := h.catalogService.GetBeatBySlug(idOrSlug)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, beat)
}

// IncrementPlay handles POST /v1/beats/:id/play.
func (h *CatalogHandler) IncrementPlay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid beat ID", nil)
		return
	}

	plays, err := h.catalogService.IncrementPlayCount(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"plays": plays})
}

type FreeDownloadRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// FreeDownload handles POST /v1/beats/:id/download-free. Only beats marked
// free qualify; the optional email joins the newsletter list.
func (h *CatalogHandler) FreeDownload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid beat ID", nil)
		return
	}

	var req FreeDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Invalid request format", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	rawURL, err := h.catalogService.FreeDownload(id, req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"download_url": h.storageService.SignedDownloadURL(rawURL),
	})
}
