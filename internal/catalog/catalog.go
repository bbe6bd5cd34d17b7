// internal/catalog/catalog.go
package catalog

import (
	"context"
	"errors"

	"github.com/javajoker/cartlink/internal/models"
)

var ErrNotFound = errors.New("not found")

// ProductLookup returns hydrated product handles: variations, grouped
// children, parent attributes with taxonomy labels and terms, and the parent
// of a variation are all loaded.
type ProductLookup interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	SearchProducts(ctx context.Context, term string, limit int) ([]*models.Product, error)
}

type CouponLookup interface {
	SearchCoupons(ctx context.Context, term string, limit int) ([]models.Coupon, error)
}

type PageLookup interface {
	SearchPages(ctx context.Context, term string, limit int) ([]models.Page, error)
	GetPage(ctx context.Context, id uint) (*models.Page, error)
}

type Catalog interface {
	ProductLookup
	CouponLookup
	PageLookup
}

// Limits bounds search result sizes.
type Limits struct {
	Default int
	Max     int
}

func DefaultLimits() Limits {
	return Limits{Default: 20, Max: 100}
}

// Clamp applies the default to non-positive limits and caps at Max.
func (l Limits) Clamp(limit int) int {
	if l.Default <= 0 {
		l.Default = DefaultLimits().Default
	}
	if limit <= 0 {
		limit = l.Default
	}
	if l.Max > 0 && limit > l.Max {
		limit = l.Max
	}
	return limit
}
