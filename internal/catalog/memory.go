// internal/catalog/memory.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/javajoker/cartlink/internal/models"
)

// MemoryCatalog is an in-process catalog used by the CLI and in tests. It is
// filled before use and read-only afterwards.
type MemoryCatalog struct {
	limits     Limits
	products   map[uint]models.Product
	children   map[uint][]uint
	taxonomies []models.AttributeTaxonomy
	terms      []models.AttributeTerm
	coupons    []models.Coupon
	pages      []models.Page
}

func NewMemoryCatalog(limits Limits) *MemoryCatalog {
	return &MemoryCatalog{
		limits:   limits,
		products: make(map[uint]models.Product),
		children: make(map[uint][]uint),
	}
}

// Fixture is the JSON document LoadJSON reads.
type Fixture struct {
	Taxonomies []models.AttributeTaxonomy `json:"taxonomies"`
	Terms      []models.AttributeTerm     `json:"terms"`
	Products   []FixtureProduct           `json:"products"`
	Coupons    []models.Coupon            `json:"coupons"`
	Pages      []models.Page              `json:"pages"`
}

// FixtureProduct is a flat product row. Variations reference their parent
// through parent_id; grouped products list their children by id.
type FixtureProduct struct {
	models.Product
	ChildIDs []uint `json:"child_ids,omitempty"`
}

func LoadFile(path string, limits Limits) (*MemoryCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog fixture: %w", err)
	}
	defer f.Close()

	return LoadJSON(f, limits)
}

func LoadJSON(r io.Reader, limits Limits) (*MemoryCatalog, error) {
	var fixture Fixture
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return nil, fmt.Errorf("failed to decode catalog fixture: %w", err)
	}

	c := NewMemoryCatalog(limits)
	c.AddTaxonomies(fixture.Taxonomies...)
	c.AddTerms(fixture.Terms...)
	for _, fp := range fixture.Products {
		c.AddProduct(fp.Product, fp.ChildIDs...)
	}
	c.AddCoupons(fixture.Coupons...)
	c.AddPages(fixture.Pages...)
	return c, nil
}

// AddProduct stores a flat product row. Relationship fields on p are
// ignored; they are rebuilt on lookup.
func (c *MemoryCatalog) AddProduct(p models.Product, childIDs ...uint) {
	if p.Status == "" {
		p.Status = models.ProductStatusPublish
	}
	if p.StockStatus == "" {
		p.StockStatus = models.StockStatusInStock
	}
	p.Attributes = append([]models.ProductAttribute(nil), p.Attributes...)
	for i := range p.Attributes {
		p.Attributes[i].ProductID = p.ID
	}
	p.Parent = nil
	p.Variations = nil
	p.Children = nil

	c.products[p.ID] = p
	if len(childIDs) > 0 {
		c.children[p.ID] = append([]uint(nil), childIDs...)
	}
}

func (c *MemoryCatalog) AddTaxonomies(defs ...models.AttributeTaxonomy) {
	c.taxonomies = append(c.taxonomies, defs...)
}

func (c *MemoryCatalog) AddTerms(terms ...models.AttributeTerm) {
	c.terms = append(c.terms, terms...)
}

func (c *MemoryCatalog) AddCoupons(coupons ...models.Coupon) {
	for _, coupon := range coupons {
		if coupon.Status == "" {
			coupon.Status = models.ProductStatusPublish
		}
		c.coupons = append(c.coupons, coupon)
	}
}

func (c *MemoryCatalog) AddPages(pages ...models.Page) {
	for _, page := range pages {
		if page.Status == "" {
			page.Status = models.ProductStatusPublish
		}
		if page.Type == "" {
			page.Type = "page"
		}
		c.pages = append(c.pages, page)
	}
}

func (c *MemoryCatalog) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	if _, ok := c.products[id]; !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return c.hydrate(id, true), nil
}

func (c *MemoryCatalog) SearchProducts(ctx context.Context, term string, limit int) ([]*models.Product, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	id, idErr := strconv.ParseUint(term, 10, 64)

	var matches []models.Product
	for _, p := range c.products {
		if p.Type == models.ProductTypeVariation || p.Status != models.ProductStatusPublish {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.SKU), term) &&
			(idErr != nil || uint64(p.ID) != id) {
			continue
		}
		matches = append(matches, p)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Name != matches[j].Name {
			return matches[i].Name < matches[j].Name
		}
		return matches[i].ID < matches[j].ID
	})

	limit = c.limits.Clamp(limit)
	out := make([]*models.Product, 0, limit)
	for _, p := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, c.hydrate(p.ID, true))
	}
	return out, nil
}

func (c *MemoryCatalog) SearchCoupons(ctx context.Context, term string, limit int) ([]models.Coupon, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []models.Coupon{}
	for _, coupon := range c.coupons {
		if coupon.Status != models.ProductStatusPublish {
			continue
		}
		if term == "" || strings.Contains(strings.ToLower(coupon.Code), term) {
			out = append(out, coupon)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return truncate(out, c.limits.Clamp(limit)), nil
}

func (c *MemoryCatalog) SearchPages(ctx context.Context, term string, limit int) ([]models.Page, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []models.Page{}
	for _, page := range c.pages {
		if page.Status != models.ProductStatusPublish {
			continue
		}
		if term == "" || strings.Contains(strings.ToLower(page.Title), term) {
			out = append(out, page)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return truncate(out, c.limits.Clamp(limit)), nil
}

func (c *MemoryCatalog) GetPage(ctx context.Context, id uint) (*models.Page, error) {
	for _, page := range c.pages {
		if page.ID == id {
			p := page
			return &p, nil
		}
	}
	return nil, fmt.Errorf("page %d: %w", id, ErrNotFound)
}

// hydrate copies the stored row and rebuilds its relationships. Parents are
// loaded one level deep.
func (c *MemoryCatalog) hydrate(id uint, withParent bool) *models.Product {
	p := c.products[id]
	p.Attributes = c.attributes(p.Attributes)

	var variations []models.Product
	for _, candidate := range c.products {
		if candidate.ParentID != nil && *candidate.ParentID == id && candidate.Type == models.ProductTypeVariation {
			candidate.Attributes = nil
			variations = append(variations, candidate)
		}
	}
	sort.Slice(variations, func(i, j int) bool {
		if variations[i].MenuOrder != variations[j].MenuOrder {
			return variations[i].MenuOrder < variations[j].MenuOrder
		}
		return variations[i].ID < variations[j].ID
	})
	p.Variations = variations

	for _, childID := range c.children[id] {
		if child, ok := c.products[childID]; ok {
			child.Attributes = c.attributes(child.Attributes)
			p.Children = append(p.Children, child)
		}
	}

	if withParent && p.ParentID != nil {
		if _, ok := c.products[*p.ParentID]; ok {
			p.Parent = c.hydrate(*p.ParentID, false)
		}
	}
	return &p
}

func (c *MemoryCatalog) attributes(stored []models.ProductAttribute) []models.ProductAttribute {
	if len(stored) == 0 {
		return nil
	}

	out := make([]models.ProductAttribute, len(stored))
	copy(out, stored)
	ptrs := make([]*models.ProductAttribute, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	applyTaxonomies(ptrs, c.taxonomies, c.terms)
	return out
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
