// internal/handlers/helpers.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xpbeats/xpbeats-backend/internal/services"
	"github.com/xpbeats/xpbeats-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP responses.
// Unknown errors become a generic 500 so internals never leak to clients.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Resource")
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c, "Invalid credentials")
	case errors.Is(err, services.ErrUpstreamFailure):
		utils.ErrorResponse(c, 502, "UPSTREAM_ERROR", "Payment provider is unavailable", nil)
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// currentUserID reads the authenticated user's id set by the auth
// middleware. The bool is false on unauthenticated requests.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	idStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
