// internal/products/handler.go
package products

import (
	"github.com/javajoker/cartlink/internal/linkbuilder"
	"github.com/javajoker/cartlink/internal/models"
	"github.com/javajoker/cartlink/internal/validation"
)

// Handler knows how to classify, normalize and validate one product type.
// Handlers never modify the products they are given.
type Handler interface {
	ProductType() models.ProductType
	CanHandle(p *models.Product) bool
	GetProductData(p *models.Product) models.ProductRecord
	GetSearchResults(p *models.Product) []models.ProductRecord
	IsValidForLinks(p *models.Product) bool
	GetValidationErrors(p *models.Product) []validation.Entry
	GetValidationData(p *models.Product) ValidationData
}

// VariationLister is implemented by handlers of products that carry
// variations.
type VariationLister interface {
	GetVariations(p *models.Product) []models.ProductRecord
	GetFilteredVariations(p *models.Product, selected map[string]string) []models.ProductRecord
	VariationRecord(parent, variation *models.Product) models.ProductRecord
	ValidateVariation(parent, variation *models.Product) ValidationData
}

// ValidationData is the registry result split for display.
type ValidationData struct {
	IsValid  bool               `json:"is_valid"`
	Errors   []validation.Entry `json:"errors"`
	Warnings []validation.Entry `json:"warnings"`
}

// Dependencies are the collaborators shared by every handler.
type Dependencies struct {
	Registry      *validation.Registry
	Prices        *PriceFormatter
	Links         *linkbuilder.Builder
	Subscriptions SubscriptionProvider
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Registry == nil {
		d.Registry = validation.NewRegistry()
		d.Registry.InitializeDefaults()
	}
	if d.Prices == nil {
		d.Prices = DefaultPriceFormatter()
	}
	if d.Links == nil {
		d.Links = linkbuilder.New("", "")
	}
	return d
}

type baseHandler struct {
	productType models.ProductType
	deps        Dependencies
}

func newBaseHandler(productType models.ProductType, deps Dependencies) baseHandler {
	return baseHandler{productType: productType, deps: deps.withDefaults()}
}

func (h *baseHandler) ProductType() models.ProductType {
	return h.productType
}

func (h *baseHandler) CanHandle(p *models.Product) bool {
	return p != nil && p.Type == h.productType
}

func (h *baseHandler) IsValidForLinks(p *models.Product) bool {
	if !h.CanHandle(p) {
		return false
	}
	return h.deps.Registry.IsValidForLinks(p)
}

func (h *baseHandler) GetValidationErrors(p *models.Product) []validation.Entry {
	if !h.CanHandle(p) {
		return nil
	}
	return h.deps.Registry.GetValidationErrors(p)
}

func (h *baseHandler) GetValidationData(p *models.Product) ValidationData {
	if !h.CanHandle(p) {
		return ValidationData{Errors: []validation.Entry{}, Warnings: []validation.Entry{}}
	}
	return splitResult(h.deps.Registry.Validate(p))
}

// record fills the fields every product type shares.
func (h *baseHandler) record(p *models.Product) models.ProductRecord {
	rec := models.ProductRecord{
		ID:               p.ID,
		Name:             p.Name,
		SKU:              p.SKU,
		Price:            h.deps.Prices.Format(p.ActivePrice()),
		Image:            p.ImageURL,
		Type:             p.Type,
		Slug:             p.Slug,
		SoldIndividually: p.SoldIndividually,
	}
	if p.ParentID != nil {
		rec.ParentID = *p.ParentID
	}
	if p.Parent != nil {
		rec.ParentName = p.Parent.Name
		rec.ParentSlug = p.Parent.Slug
	}
	return rec
}

func splitResult(result validation.Result) ValidationData {
	data := ValidationData{
		IsValid:  result.IsValid,
		Errors:   []validation.Entry{},
		Warnings: []validation.Entry{},
	}
	for _, entry := range result.Errors {
		if entry.IsWarning() {
			data.Warnings = append(data.Warnings, entry)
		} else {
			data.Errors = append(data.Errors, entry)
		}
	}
	return data
}
