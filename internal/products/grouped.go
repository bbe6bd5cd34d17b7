// internal/products/grouped.go
package products

import (
	"github.com/javajoker/cartlink/internal/models"
	"github.com/javajoker/cartlink/internal/validation"
)

// GroupedHandler normalizes grouped products. Validity only depends on the
// product having children; the children are not run through the registry.
type GroupedHandler struct {
	baseHandler
}

func NewGroupedHandler(deps Dependencies) *GroupedHandler {
	return &GroupedHandler{baseHandler: newBaseHandler(models.ProductTypeGrouped, deps)}
}

func (h *GroupedHandler) GetProductData(p *models.Product) models.ProductRecord {
	if !h.CanHandle(p) {
		return models.ProductRecord{}
	}
	return childProductRecord(&h.baseHandler, p)
}

func (h *GroupedHandler) GetSearchResults(p *models.Product) []models.ProductRecord {
	if !h.CanHandle(p) {
		return []models.ProductRecord{}
	}
	return []models.ProductRecord{h.GetProductData(p)}
}

func (h *GroupedHandler) IsValidForLinks(p *models.Product) bool {
	return h.CanHandle(p) && len(p.Children) > 0
}

func (h *GroupedHandler) GetValidationErrors(p *models.Product) []validation.Entry {
	return h.GetValidationData(p).Errors
}

func (h *GroupedHandler) GetValidationData(p *models.Product) ValidationData {
	data := ValidationData{Errors: []validation.Entry{}, Warnings: []validation.Entry{}}
	if !h.CanHandle(p) {
		return data
	}
	if len(p.Children) == 0 {
		data.Errors = append(data.Errors, validation.Message("Grouped product has no child products."))
		return data
	}
	data.IsValid = true
	return data
}

// BundleHandler is an addon handler for bundle products. Bundles share the
// grouped record shape; the link builder numbers their child quantities.
type BundleHandler struct {
	GroupedHandler
}

func NewBundleHandler(deps Dependencies) *BundleHandler {
	return &BundleHandler{GroupedHandler{baseHandler: newBaseHandler(models.ProductTypeBundle, deps)}}
}

// RegisterBundleHandler is a registration hook for stores running the
// bundles addon.
func RegisterBundleHandler(m *Manager) {
	m.RegisterHandler(NewBundleHandler(m.Dependencies()))
}

func childProductRecord(h *baseHandler, p *models.Product) models.ProductRecord {
	rec := h.record(p)
	rec.Children = make([]models.ProductRecord, 0, len(p.Children))
	for i := range p.Children {
		child := &p.Children[i]
		rec.Children = append(rec.Children, models.ProductRecord{
			ID:    child.ID,
			Name:  child.Name,
			SKU:   child.SKU,
			Price: h.deps.Prices.Format(child.ActivePrice()),
			Image: child.ImageURL,
			Type:  child.Type,
			Slug:  child.Slug,
		})
	}

	rec.AddToCartURL, rec.DefaultQuantities = h.deps.Links.GroupedAddToCartURL(rec)
	return rec
}
