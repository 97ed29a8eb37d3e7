package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultPageLimit = 10

type listParams struct {
	Limit  int
	Skip   int
	Search string
}

// parseListParams reads limit, skip and search from the query string.
// Invalid or negative values fall back to the defaults.
func parseListParams(c *gin.Context) listParams {
	limit := defaultPageLimit
	if parsed, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && parsed > 0 {
		limit = parsed
	}

	skip := 0
	if parsed, err := strconv.Atoi(strings.TrimSpace(c.Query("skip"))); err == nil && parsed >= 0 {
		skip = parsed
	}

	return listParams{
		Limit:  limit,
		Skip:   skip,
		Search: c.Query("search"),
	}
}
