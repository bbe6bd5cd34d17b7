// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/cartlink/internal/i18n"
	"github.com/javajoker/cartlink/internal/services"
	"github.com/javajoker/cartlink/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /products/search
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	params := utils.GetSearchParams(c)

	records, err := h.productService.Search(c.Request.Context(), params.Term, params.Limit)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	utils.SetResultCountHeader(c, len(records))
	utils.SuccessResponse(c, records)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	record, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, record)
}

// GET /products/:id/variations
func (h *ProductHandler) GetVariations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	variations, err := h.productService.Variations(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	utils.SetResultCountHeader(c, len(variations))
	utils.SuccessResponse(c, variations)
}

// POST /products/:id/variations/filter
func (h *ProductHandler) FilterVariations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.FilterVariationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	variations, err := h.productService.FilterVariations(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	utils.SetResultCountHeader(c, len(variations))
	utils.SuccessResponse(c, variations)
}

// GET /products/:id/validation
func (h *ProductHandler) GetValidation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	data, err := h.productService.Validation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, data)
}

// GET /product-types
func (h *ProductHandler) GetProductTypes(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"types": h.productService.Types(),
	})
}
