// internal/attributes/attributes.go

// Package attributes resolves display labels and values for product
// attribute dimensions and detects variations left with "Any" dimensions.
package attributes

import (
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/javajoker/cartlink/internal/models"
)

// fallbackLabels is used for taxonomy attributes whose taxonomy has no label.
var fallbackLabels = map[string]string{
	"color":    "Color",
	"size":     "Size",
	"material": "Material",
	"style":    "Style",
	"brand":    "Brand",
	"pattern":  "Pattern",
	"fit":      "Fit",
	"length":   "Length",
	"width":    "Width",
	"height":   "Height",
	"weight":   "Weight",
	"type":     "Type",
	"category": "Category",
	"tag":      "Tag",
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// TitleCase turns a slug such as "dark-blue" or "gift_wrap" into "Dark Blue".
func TitleCase(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	return titleCaser.String(strings.Join(strings.Fields(s), " "))
}

// Slugify is the slug used for custom attribute options.
func Slugify(s string) string {
	return slug.Make(s)
}

// Label resolves the display label of the attribute called name on parent.
func Label(parent *models.Product, name string) string {
	attr, found := findAttribute(parent, name)

	if isTaxonomyName(name) {
		if found && attr.Label != "" {
			return attr.Label
		}
		bare := models.StripTaxonomyPrefix(name)
		if label, ok := fallbackLabels[bare]; ok {
			return label
		}
		return TitleCase(bare)
	}

	if found && attr.Name != "" {
		return attr.Name
	}
	return TitleCase(models.NormalizeAttributeName(name))
}

// Value resolves a variation's attribute value to its display form: the term
// name for taxonomy attributes, title case otherwise.
func Value(parent *models.Product, name, value string) string {
	if value == "" {
		return ""
	}
	if attr, ok := findAttribute(parent, name); ok && attr.IsTaxonomy() {
		if term, ok := attr.Term(value); ok {
			return term.Name
		}
	}
	return TitleCase(value)
}

// VariationName builds "Parent - Color: Red, Size: M", leaving out
// dimensions without a value.
func VariationName(parent, variation *models.Product) string {
	parts := make([]string, 0, len(variation.VariationValues))
	for _, av := range variation.VariationValues {
		if av.Value == "" {
			continue
		}
		parts = append(parts, Label(parent, av.Name)+": "+Value(parent, av.Name, av.Value))
	}

	name := ""
	if parent != nil {
		name = parent.Name
	}
	if name == "" {
		name = variation.Name
	}
	if len(parts) == 0 {
		return name
	}
	return name + " - " + strings.Join(parts, ", ")
}

// HasAnyAttributes reports whether a variation leaves at least one attribute
// dimension unset. A variation with no dimensions at all counts as unset.
func HasAnyAttributes(variation *models.Product) bool {
	if variation == nil {
		return false
	}
	if len(variation.VariationValues) == 0 {
		return true
	}
	for _, av := range variation.VariationValues {
		if strings.TrimSpace(av.Value) == "" {
			return true
		}
	}
	return false
}

// MissingDimensions lists the labels of the dimensions a variation leaves as
// "Any". Variation attributes declared on the parent but absent from the
// variation are included.
func MissingDimensions(parent, variation *models.Product) []string {
	var missing []string
	seen := make(map[string]bool)

	for _, av := range variation.VariationValues {
		seen[models.AttributeKey(av.Name)] = true
		if strings.TrimSpace(av.Value) == "" {
			missing = append(missing, Label(parent, av.Name))
		}
	}

	if parent != nil {
		for i := range parent.Attributes {
			attr := &parent.Attributes[i]
			if !attr.Variation || seen[models.AttributeKey(attr.Name)] {
				continue
			}
			missing = append(missing, Label(parent, attr.Name))
		}
	}

	return missing
}

// IsFullyConfigured reports whether every dimension of the variation is set,
// including dimensions declared on the parent.
func IsFullyConfigured(parent, variation *models.Product) bool {
	return !HasAnyAttributes(variation) && len(MissingDimensions(parent, variation)) == 0
}

func findAttribute(parent *models.Product, name string) (*models.ProductAttribute, bool) {
	if parent == nil {
		return nil, false
	}
	return parent.Attribute(name)
}

func isTaxonomyName(name string) bool {
	return strings.HasPrefix(models.NormalizeAttributeName(name), "pa_")
}
