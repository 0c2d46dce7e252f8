package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/models"
)

// listParams are the shared query parameters of collection endpoints.
type listParams struct {
	Page   int
	Limit  int
	Search string
	All    bool
}

func parseListParams(c *gin.Context) listParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return listParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		All:    c.Query("all") == "true",
	}
}

// listMeta builds the meta block for a list response. Fetch-all responses get
// a degenerate single-page meta covering the whole collection.
func (p listParams) listMeta(totalCount, returned int) models.ListMeta {
	if p.All {
		return models.SinglePageMeta(returned)
	}
	return models.NewListMeta(p.Page, p.Limit, totalCount)
}
