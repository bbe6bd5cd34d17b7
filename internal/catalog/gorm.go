// internal/catalog/gorm.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/javajoker/cartlink/internal/models"
)

// GormCatalog reads the catalog from the shop database.
type GormCatalog struct {
	db     *gorm.DB
	limits Limits
}

func NewGormCatalog(db *gorm.DB, limits Limits) *GormCatalog {
	return &GormCatalog{db: db, limits: limits}
}

func byMenuOrder(db *gorm.DB) *gorm.DB {
	return db.Order("menu_order ASC, id ASC")
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

func (c *GormCatalog) productQuery(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx).
		Preload("Attributes", byPosition).
		Preload("Variations", byMenuOrder).
		Preload("Children", byMenuOrder).
		Preload("Parent").
		Preload("Parent.Attributes", byPosition)
}

func (c *GormCatalog) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := c.productQuery(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}

	if err := c.hydrateAttributes(ctx, []*models.Product{&product}); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *GormCatalog) SearchProducts(ctx context.Context, term string, limit int) ([]*models.Product, error) {
	query := c.productQuery(ctx).
		Where("type <> ?", models.ProductTypeVariation).
		Where("status = ?", models.ProductStatusPublish)

	if term = strings.TrimSpace(term); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		if id, err := strconv.ParseUint(term, 10, 64); err == nil {
			query = query.Where("(LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR id = ?)", like, like, id)
		} else {
			query = query.Where("(LOWER(name) LIKE ? OR LOWER(sku) LIKE ?)", like, like)
		}
	}

	var found []models.Product
	if err := query.Order("name ASC, id ASC").Limit(c.limits.Clamp(limit)).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	out := make([]*models.Product, len(found))
	for i := range found {
		out[i] = &found[i]
	}
	if err := c.hydrateAttributes(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GormCatalog) SearchCoupons(ctx context.Context, term string, limit int) ([]models.Coupon, error) {
	query := c.db.WithContext(ctx).Where("status = ?", models.ProductStatusPublish)
	if term = strings.TrimSpace(term); term != "" {
		query = query.Where("LOWER(code) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	var coupons []models.Coupon
	if err := query.Order("code ASC").Limit(c.limits.Clamp(limit)).Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to search coupons: %w", err)
	}
	return coupons, nil
}

func (c *GormCatalog) SearchPages(ctx context.Context, term string, limit int) ([]models.Page, error) {
	query := c.db.WithContext(ctx).Where("status = ?", models.ProductStatusPublish)
	if term = strings.TrimSpace(term); term != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	var pages []models.Page
	if err := query.Order("title ASC").Limit(c.limits.Clamp(limit)).Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("failed to search pages: %w", err)
	}
	return pages, nil
}

func (c *GormCatalog) GetPage(ctx context.Context, id uint) (*models.Page, error) {
	var page models.Page
	if err := c.db.WithContext(ctx).First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("page %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load page %d: %w", id, err)
	}
	return &page, nil
}

// hydrateAttributes fills taxonomy labels and assigned terms on the
// attributes of the products and their parents.
func (c *GormCatalog) hydrateAttributes(ctx context.Context, products []*models.Product) error {
	var attrs []*models.ProductAttribute
	for _, p := range products {
		for i := range p.Attributes {
			attrs = append(attrs, &p.Attributes[i])
		}
		if p.Parent != nil {
			for i := range p.Parent.Attributes {
				attrs = append(attrs, &p.Parent.Attributes[i])
			}
		}
	}

	names := map[string]bool{}
	var bare, taxonomies []string
	for _, attr := range attrs {
		if !attr.IsTaxonomy() {
			continue
		}
		key := models.NormalizeAttributeName(attr.Name)
		if !names[key] {
			names[key] = true
			taxonomies = append(taxonomies, key)
			bare = append(bare, models.StripTaxonomyPrefix(key))
		}
	}
	if len(taxonomies) == 0 {
		return nil
	}

	var defs []models.AttributeTaxonomy
	if err := c.db.WithContext(ctx).Where("name IN ?", bare).Find(&defs).Error; err != nil {
		return fmt.Errorf("failed to load attribute taxonomies: %w", err)
	}
	var terms []models.AttributeTerm
	if err := c.db.WithContext(ctx).Where("taxonomy IN ?", taxonomies).Order("id ASC").Find(&terms).Error; err != nil {
		return fmt.Errorf("failed to load attribute terms: %w", err)
	}

	applyTaxonomies(attrs, defs, terms)
	return nil
}

// applyTaxonomies sets each taxonomy attribute's label and its assigned
// terms, in the order of the attribute's options.
func applyTaxonomies(attrs []*models.ProductAttribute, defs []models.AttributeTaxonomy, terms []models.AttributeTerm) {
	labels := make(map[string]string, len(defs))
	for _, def := range defs {
		labels[def.Taxonomy()] = def.Label
	}

	bySlug := make(map[string]map[string]models.AttributeTerm)
	for _, term := range terms {
		key := models.NormalizeAttributeName(term.Taxonomy)
		if bySlug[key] == nil {
			bySlug[key] = make(map[string]models.AttributeTerm)
		}
		bySlug[key][strings.ToLower(term.Slug)] = term
	}

	for _, attr := range attrs {
		if !attr.IsTaxonomy() {
			continue
		}
		key := models.NormalizeAttributeName(attr.Name)
		attr.Label = labels[key]
		attr.Terms = nil
		for _, option := range attr.Options {
			if term, ok := bySlug[key][strings.ToLower(option)]; ok {
				attr.Terms = append(attr.Terms, term)
			}
		}
	}
}
