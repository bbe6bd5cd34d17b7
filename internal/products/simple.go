// internal/products/simple.go
package products

import (
	"github.com/javajoker/cartlink/internal/models"
)

type SimpleHandler struct {
	baseHandler
}

func NewSimpleHandler(deps Dependencies) *SimpleHandler {
	return &SimpleHandler{baseHandler: newBaseHandler(models.ProductTypeSimple, deps)}
}

func (h *SimpleHandler) GetProductData(p *models.Product) models.ProductRecord {
	if !h.CanHandle(p) {
		return models.ProductRecord{}
	}
	return h.record(p)
}

func (h *SimpleHandler) GetSearchResults(p *models.Product) []models.ProductRecord {
	if !h.CanHandle(p) {
		return []models.ProductRecord{}
	}
	return []models.ProductRecord{h.GetProductData(p)}
}
