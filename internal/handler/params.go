package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

// listParams reads the common list query parameters. Unparseable numbers
// fall back to defaults; sort and order are validated downstream against
// each entity's allow-list.
func listParams(c *gin.Context) models.ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return models.ListParams{
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
		PageSize:  pageSize,
	}
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}
