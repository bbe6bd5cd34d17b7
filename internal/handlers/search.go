// internal/handlers/search.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/cartlink/internal/services"
	"github.com/javajoker/cartlink/internal/utils"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// GET /coupons/search
func (h *SearchHandler) SearchCoupons(c *gin.Context) {
	params := utils.GetSearchParams(c)

	coupons, err := h.searchService.Coupons(c.Request.Context(), params.Term, params.Limit)
	if err != nil {
		respondError(c, err, "coupon")
		return
	}

	utils.SetResultCountHeader(c, len(coupons))
	utils.SuccessResponse(c, coupons)
}

// GET /pages/search
func (h *SearchHandler) SearchPages(c *gin.Context) {
	params := utils.GetSearchParams(c)

	pages, err := h.searchService.Pages(c.Request.Context(), params.Term, params.Limit)
	if err != nil {
		respondError(c, err, "page")
		return
	}

	utils.SetResultCountHeader(c, len(pages))
	utils.SuccessResponse(c, pages)
}
