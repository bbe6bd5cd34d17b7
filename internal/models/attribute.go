// internal/models/attribute.go
package models

import (
	"strings"

	"github.com/lib/pq"
)

// taxonomyPrefix marks attributes backed by a global attribute taxonomy.
const taxonomyPrefix = "pa_"

// ProductAttribute is an attribute dimension declared on a parent product.
// For taxonomy attributes Options holds the assigned term slugs, for custom
// attributes it holds the raw option strings.
type ProductAttribute struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProductID uint           `json:"product_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"size:200;not null"`
	Position  int            `json:"position" gorm:"default:0"`
	Visible   bool           `json:"visible"`
	Variation bool           `json:"variation"`
	Options   pq.StringArray `json:"options" gorm:"type:text[]"`

	// Filled by the catalog for taxonomy attributes.
	Label string          `json:"label,omitempty" gorm:"-"`
	Terms []AttributeTerm `json:"terms,omitempty" gorm:"-"`
}

// IsTaxonomy reports whether the attribute is backed by a global taxonomy.
func (a *ProductAttribute) IsTaxonomy() bool {
	return strings.HasPrefix(NormalizeAttributeName(a.Name), taxonomyPrefix)
}

// Term returns the assigned term with the given slug.
func (a *ProductAttribute) Term(slug string) (AttributeTerm, bool) {
	for _, t := range a.Terms {
		if strings.EqualFold(t.Slug, slug) {
			return t, true
		}
	}
	return AttributeTerm{}, false
}

// AttributeTaxonomy is a global attribute such as pa_color.
type AttributeTaxonomy struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:200;uniqueIndex;not null"`
	Label string `json:"label" gorm:"size:200"`
}

// Taxonomy returns the prefixed taxonomy key, e.g. "pa_color".
func (t AttributeTaxonomy) Taxonomy() string {
	return taxonomyPrefix + t.Name
}

// AttributeTerm is a term inside an attribute taxonomy.
type AttributeTerm struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Taxonomy string `json:"taxonomy" gorm:"size:200;index;not null"`
	Name     string `json:"name" gorm:"size:200;not null"`
	Slug     string `json:"slug" gorm:"size:200;not null"`
}

// NormalizeAttributeName strips the "attribute_" prefix used by variation
// meta keys and lowercases the result.
func NormalizeAttributeName(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "attribute_"))
}

// AttributeKey is the comparison key for attribute names: normalized, with
// spaces folded to dashes the way variation meta keys are written.
func AttributeKey(name string) string {
	return strings.Join(strings.Fields(NormalizeAttributeName(name)), "-")
}

// StripTaxonomyPrefix turns "pa_color" into "color".
func StripTaxonomyPrefix(name string) string {
	return strings.TrimPrefix(NormalizeAttributeName(name), taxonomyPrefix)
}
