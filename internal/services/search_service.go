// internal/services/search_service.go
package services

import (
	"context"
	"fmt"

	"github.com/javajoker/cartlink/internal/catalog"
	"github.com/javajoker/cartlink/internal/models"
)

// SearchService looks up the coupons and redirect pages offered by the link
// wizard.
type SearchService struct {
	coupons catalog.CouponLookup
	pages   catalog.PageLookup
}

func NewSearchService(coupons catalog.CouponLookup, pages catalog.PageLookup) *SearchService {
	return &SearchService{coupons: coupons, pages: pages}
}

func (s *SearchService) Coupons(ctx context.Context, term string, limit int) ([]models.CouponSummary, error) {
	found, err := s.coupons.SearchCoupons(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search coupons: %w", err)
	}

	summaries := make([]models.CouponSummary, 0, len(found))
	for i := range found {
		summaries = append(summaries, found[i].Summary())
	}
	return summaries, nil
}

func (s *SearchService) Pages(ctx context.Context, term string, limit int) ([]models.PageSummary, error) {
	found, err := s.pages.SearchPages(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search pages: %w", err)
	}

	summaries := make([]models.PageSummary, 0, len(found))
	for i := range found {
		summaries = append(summaries, found[i].Summary())
	}
	return summaries, nil
}
