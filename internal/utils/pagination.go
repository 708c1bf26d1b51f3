// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ListParams struct {
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	SortBy string `json:"sort_by"`
}

// GetListParams parses limit/offset list parameters off the query string,
// clamping the limit to [1,100].
func GetListParams(c *gin.Context) ListParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	sortBy := c.DefaultQuery("sortBy", "newest")

	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	return ListParams{
		Limit:  limit,
		Offset: offset,
		SortBy: sortBy,
	}
}

func ApplyLimitOffset(db *gorm.DB, params ListParams) *gorm.DB {
	return db.Offset(params.Offset).Limit(params.Limit)
}

func SetListHeaders(c *gin.Context, total int64, params ListParams) {
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.Header("X-Limit", strconv.Itoa(params.Limit))
	c.Header("X-Offset", strconv.Itoa(params.Offset))
}
