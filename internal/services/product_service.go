// internal/services/product_service.go
package services

import (
	"context"
	"fmt"

	"github.com/javajoker/cartlink/internal/catalog"
	"github.com/javajoker/cartlink/internal/models"
	"github.com/javajoker/cartlink/internal/products"
)

const reasonUnsupportedType = "Unsupported product type."

type ProductService struct {
	catalog catalog.ProductLookup
	manager *products.Manager
}

type FilterVariationsRequest struct {
	Attributes map[string]string `json:"attributes"`
}

func NewProductService(lookup catalog.ProductLookup, manager *products.Manager) *ProductService {
	return &ProductService{
		catalog: lookup,
		manager: manager,
	}
}

// Search returns normalized records for every matching product. Products no
// handler supports are left out.
func (s *ProductService) Search(ctx context.Context, term string, limit int) ([]models.ProductRecord, error) {
	found, err := s.catalog.SearchProducts(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	records := []models.ProductRecord{}
	for _, p := range found {
		records = append(records, s.manager.GetSearchResults(p)...)
	}
	return records, nil
}

// Get normalizes one product. Variations are normalized through their
// parent; unsupported products come back disabled.
func (s *ProductService) Get(ctx context.Context, id uint) (models.ProductRecord, error) {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return models.ProductRecord{}, fmt.Errorf("failed to get product: %w", err)
	}
	return s.record(p), nil
}

func (s *ProductService) Variations(ctx context.Context, id uint) ([]models.ProductRecord, error) {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return s.manager.GetVariations(p), nil
}

func (s *ProductService) FilterVariations(ctx context.Context, id uint, req *FilterVariationsRequest) ([]models.ProductRecord, error) {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	var selected map[string]string
	if req != nil {
		selected = req.Attributes
	}
	return s.manager.GetFilteredVariations(p, selected), nil
}

// Validation reports link eligibility. A variation is checked against its
// parent's variation rules.
func (s *ProductService) Validation(ctx context.Context, id uint) (products.ValidationData, error) {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return products.ValidationData{}, fmt.Errorf("failed to get product: %w", err)
	}

	if isVariation(p) {
		if data, ok := s.manager.ValidateVariation(p.Parent, p); ok {
			return data, nil
		}
	}
	return s.manager.GetValidationData(p), nil
}

func (s *ProductService) Types() []models.ProductType {
	return s.manager.RegisteredTypes()
}

func (s *ProductService) record(p *models.Product) models.ProductRecord {
	if isVariation(p) {
		if rec, ok := s.manager.VariationRecord(p.Parent, p); ok {
			return rec
		}
	}

	rec := s.manager.GetProductData(p)
	if rec.IsEmpty() {
		rec = models.ProductRecord{
			ID:             p.ID,
			Name:           p.Name,
			SKU:            p.SKU,
			Type:           p.Type,
			Slug:           p.Slug,
			Disabled:       true,
			DisabledReason: reasonUnsupportedType,
		}
	}
	return rec
}

func isVariation(p *models.Product) bool {
	return p.Type == models.ProductTypeVariation && p.Parent != nil
}
