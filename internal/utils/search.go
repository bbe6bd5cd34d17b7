// internal/utils/search.go
package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type SearchParams struct {
	Term  string `json:"term"`
	Limit int    `json:"limit"`
}

// GetSearchParams reads term and limit from the query string. A missing or
// malformed limit is left at 0 so the catalog applies its default.
func GetSearchParams(c *gin.Context) SearchParams {
	term := c.Query("term")
	if term == "" {
		term = c.Query("search")
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 0 {
		limit = 0
	}

	return SearchParams{
		Term:  strings.TrimSpace(term),
		Limit: limit,
	}
}

func SetResultCountHeader(c *gin.Context, count int) {
	c.Header("X-Total-Count", strconv.Itoa(count))
}
