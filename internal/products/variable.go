// internal/products/variable.go
package products

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/javajoker/cartlink/internal/attributes"
	"github.com/javajoker/cartlink/internal/models"
	"github.com/javajoker/cartlink/internal/validation"
)

const (
	reasonAnyAttributes  = "This variation has attributes set to \"Any\". Set a value for every attribute to use it in links."
	reasonNoValidVariant = "None of this product's variations can be added to a link."
)

// VariableHandler normalizes variable products. Its records always describe
// the parent; variations are listed through GetVariations.
type VariableHandler struct {
	baseHandler
}

func NewVariableHandler(deps Dependencies) *VariableHandler {
	return newVariableHandler(models.ProductTypeVariable, deps)
}

// NewVariableSubscriptionHandler classifies variable subscriptions with the
// variable product rules.
func NewVariableSubscriptionHandler(deps Dependencies) *VariableHandler {
	return newVariableHandler(models.ProductTypeVariableSubscription, deps)
}

func newVariableHandler(productType models.ProductType, deps Dependencies) *VariableHandler {
	return &VariableHandler{baseHandler: newBaseHandler(productType, deps)}
}

func (h *VariableHandler) GetProductData(p *models.Product) models.ProductRecord {
	if !h.CanHandle(p) {
		return models.ProductRecord{}
	}

	rec := h.record(p)
	rec.HasVariations = true
	rec.AttributeDimensions = h.attributeDimensions(p)

	var prices []float64
	selectable := 0
	for i := range p.Variations {
		v := &p.Variations[i]
		if !v.IsPublished() {
			continue
		}
		rec.VariationCount++
		prices = append(prices, v.ActivePrice())
		if h.selectable(p, v) {
			selectable++
		}
	}

	if len(prices) > 0 {
		min, max := prices[0], prices[0]
		for _, price := range prices[1:] {
			if price < min {
				min = price
			}
			if price > max {
				max = price
			}
		}
		rec.Price = h.deps.Prices.Range(min, max)
	}

	if selectable == 0 {
		rec.Disabled = true
		rec.DisabledReason = reasonNoValidVariant
		rec.EditURL = h.deps.Links.EditProductURL(p.ID)
	}
	return rec
}

func (h *VariableHandler) GetSearchResults(p *models.Product) []models.ProductRecord {
	if !h.CanHandle(p) {
		return []models.ProductRecord{}
	}
	return []models.ProductRecord{h.GetProductData(p)}
}

// GetVariations lists the selectable variations plus the ones left with
// "Any" attributes, which come back disabled with an edit link.
func (h *VariableHandler) GetVariations(p *models.Product) []models.ProductRecord {
	out := []models.ProductRecord{}
	if !h.CanHandle(p) {
		return out
	}

	for i := range p.Variations {
		v := &p.Variations[i]
		if !v.IsPublished() {
			continue
		}

		if !attributes.IsFullyConfigured(p, v) {
			rec := h.VariationRecord(p, v)
			rec.Disabled = true
			rec.DisabledReason = reasonAnyAttributes
			rec.MissingAttrs = attributes.MissingDimensions(p, v)
			rec.EditURL = h.deps.Links.EditProductURL(p.ID)
			out = append(out, rec)
			continue
		}

		if v.IsPurchasable() && v.IsInStock() {
			out = append(out, h.VariationRecord(p, v))
		}
	}
	return out
}

// GetFilteredVariations returns the purchasable, in-stock variations whose
// values match every constraint in selected. Keys are attribute names with
// or without the "pa_" prefix; values compare case-insensitively against the
// stored slug or its display name. Empty values do not constrain.
func (h *VariableHandler) GetFilteredVariations(p *models.Product, selected map[string]string) []models.ProductRecord {
	out := []models.ProductRecord{}
	if !h.CanHandle(p) {
		return out
	}

	for i := range p.Variations {
		v := &p.Variations[i]
		if !v.IsPurchasable() || !v.IsInStock() {
			continue
		}
		if matchesSelection(p, v, selected) {
			out = append(out, h.VariationRecord(p, v))
		}
	}
	return out
}

// VariationRecord normalizes one variation of parent.
func (h *VariableHandler) VariationRecord(parent, v *models.Product) models.ProductRecord {
	rec := h.record(v)
	rec.Type = models.ProductTypeVariation
	rec.Name = attributes.VariationName(parent, v)
	rec.ParentID = parent.ID
	rec.ParentName = parent.Name
	rec.ParentSlug = parent.Slug
	rec.Attributes = v.VariationValues
	rec.SoldIndividually = v.SoldIndividually || parent.SoldIndividually
	if rec.SKU == "" {
		rec.SKU = parent.SKU
	}
	if rec.Image == "" {
		rec.Image = parent.ImageURL
	}
	return rec
}

// ValidateVariation reports whether one variation of parent can go into a
// link. It applies the same checks GetVariations uses to decide what is
// selectable.
func (h *VariableHandler) ValidateVariation(parent, v *models.Product) ValidationData {
	data := ValidationData{Errors: []validation.Entry{}, Warnings: []validation.Entry{}}
	if !h.CanHandle(parent) || v == nil {
		data.Errors = append(data.Errors, validation.Message("Invalid product"))
		return data
	}

	if !v.IsPurchasable() {
		data.Errors = append(data.Errors, validation.Message("Variation is not purchasable."))
	}
	if !v.IsInStock() {
		data.Errors = append(data.Errors, validation.Message("Variation is out of stock."))
	}
	if !attributes.IsFullyConfigured(parent, v) {
		missing := attributes.MissingDimensions(parent, v)
		data.Errors = append(data.Errors, validation.Entry{
			Type:          validation.EntryTypeError,
			RuleID:        validation.RuleVariableAnyAttributes,
			Message:       fmt.Sprintf("Variation has unset attributes (%s).", strings.Join(missing, ", ")),
			VariationID:   v.ID,
			VariationName: attributes.VariationName(parent, v),
			Attributes:    v.VariationValues,
		})
	}
	if v.SoldIndividually || parent.SoldIndividually {
		data.Warnings = append(data.Warnings, validation.Entry{
			Type:    validation.EntryTypeInfo,
			RuleID:  validation.RuleSoldIndividually,
			Message: "Variation is sold individually. Quantity is limited to 1.",
		})
	}

	data.IsValid = len(data.Errors) == 0
	return data
}

func (h *VariableHandler) selectable(parent, v *models.Product) bool {
	return v.IsPurchasable() && v.IsInStock() && attributes.IsFullyConfigured(parent, v)
}

func (h *VariableHandler) attributeDimensions(p *models.Product) []models.AttributeDimension {
	dims := make([]models.AttributeDimension, 0, len(p.Attributes))
	for i := range p.Attributes {
		attr := &p.Attributes[i]
		dim := models.AttributeDimension{
			Name:       models.AttributeKey(attr.Name),
			Label:      attributes.Label(p, attr.Name),
			IsTaxonomy: attr.IsTaxonomy(),
			Options:    []models.AttributeOption{},
		}

		switch {
		case attr.IsTaxonomy() && len(attr.Terms) > 0:
			for _, term := range attr.Terms {
				dim.Options = append(dim.Options, models.AttributeOption{
					ID:   strconv.FormatUint(uint64(term.ID), 10),
					Name: term.Name,
					Slug: term.Slug,
				})
			}
		case attr.IsTaxonomy():
			for _, option := range attr.Options {
				dim.Options = append(dim.Options, models.AttributeOption{
					ID:   option,
					Name: attributes.TitleCase(option),
					Slug: option,
				})
			}
		default:
			for _, option := range attr.Options {
				slug := attributes.Slugify(option)
				dim.Options = append(dim.Options, models.AttributeOption{
					ID:   slug,
					Name: option,
					Slug: slug,
				})
			}
		}

		dims = append(dims, dim)
	}
	return dims
}

func matchesSelection(parent, v *models.Product, selected map[string]string) bool {
	for name, want := range selected {
		want = strings.TrimSpace(want)
		if want == "" {
			continue
		}

		key, got, ok := variationValue(v, name)
		if !ok {
			return false
		}
		if strings.EqualFold(got, want) || strings.EqualFold(attributes.Value(parent, key, got), want) {
			continue
		}
		if strings.EqualFold(attributes.Slugify(got), attributes.Slugify(want)) {
			continue
		}
		return false
	}
	return true
}

// variationValue looks name up as given and with the taxonomy prefix added.
func variationValue(v *models.Product, name string) (string, string, bool) {
	if got, ok := v.VariationValues.Get(name); ok {
		return name, got, true
	}
	prefixed := "pa_" + models.StripTaxonomyPrefix(name)
	if got, ok := v.VariationValues.Get(prefixed); ok {
		return prefixed, got, true
	}
	return "", "", false
}
