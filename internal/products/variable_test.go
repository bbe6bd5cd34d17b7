// internal/products/variable_test.go
package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/cartlink/internal/models"
)

func ids(records []models.ProductRecord) []uint {
	out := make([]uint, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestVariableProductData(t *testing.T) {
	h := NewVariableHandler(testDeps())
	rec := h.GetProductData(hoodie())

	assert.Equal(t, uint(30), rec.ID)
	assert.Equal(t, models.ProductTypeVariable, rec.Type)
	assert.True(t, rec.HasVariations)
	assert.Equal(t, 4, rec.VariationCount)
	assert.Equal(t, "$20.00 - $25.00", rec.Price)
	assert.False(t, rec.Disabled)
	assert.Empty(t, rec.EditURL)

	require.Len(t, rec.AttributeDimensions, 2)
	color := rec.AttributeDimensions[0]
	assert.Equal(t, "pa_color", color.Name)
	assert.Equal(t, "Color", color.Label)
	assert.True(t, color.IsTaxonomy)
	assert.Equal(t, []models.AttributeOption{
		{ID: "11", Name: "Red", Slug: "red"},
		{ID: "12", Name: "Blue", Slug: "blue"},
	}, color.Options)
	assert.Equal(t, "Size", rec.AttributeDimensions[1].Label)
}

func TestCustomAttributeDimensions(t *testing.T) {
	p := hoodie()
	p.Attributes = append(p.Attributes, models.ProductAttribute{
		ID: 3, ProductID: 30, Name: "Gift Wrap", Options: []string{"Paper Bag", "Box"},
	})

	rec := NewVariableHandler(testDeps()).GetProductData(p)
	require.Len(t, rec.AttributeDimensions, 3)
	custom := rec.AttributeDimensions[2]
	assert.Equal(t, "gift-wrap", custom.Name)
	assert.Equal(t, "Gift Wrap", custom.Label)
	assert.False(t, custom.IsTaxonomy)
	assert.Equal(t, []models.AttributeOption{
		{ID: "paper-bag", Name: "Paper Bag", Slug: "paper-bag"},
		{ID: "box", Name: "Box", Slug: "box"},
	}, custom.Options)
}

func TestGetVariationsSurfacesAnyVariationsDisabled(t *testing.T) {
	h := NewVariableHandler(testDeps())
	variations := h.GetVariations(hoodie())

	assert.Equal(t, []uint{31, 32, 34}, ids(variations))

	selectable := variations[0]
	assert.False(t, selectable.Disabled)
	assert.Equal(t, models.ProductTypeVariation, selectable.Type)
	assert.Equal(t, "Hoodie - Color: Red, Size: M", selectable.Name)
	assert.Equal(t, "HOOD", selectable.SKU)
	assert.Equal(t, "https://cdn.example.com/hoodie.jpg", selectable.Image)
	assert.Equal(t, uint(30), selectable.ParentID)
	assert.Equal(t, "hoodie", selectable.ParentSlug)
	assert.Equal(t, "$20.00", selectable.Price)

	anyVariation := variations[1]
	assert.True(t, anyVariation.Disabled)
	assert.Equal(t, "Hoodie - Color: Blue", anyVariation.Name)
	assert.Equal(t, []string{"Size"}, anyVariation.MissingAttrs)
	assert.NotEmpty(t, anyVariation.DisabledReason)
	assert.Equal(t, testOrigin+"/wp-admin/post.php?post=30&action=edit", anyVariation.EditURL)

	assert.True(t, variations[2].SoldIndividually)
}

func TestGetFilteredVariations(t *testing.T) {
	h := NewVariableHandler(testDeps())
	p := hoodie()

	tests := []struct {
		name     string
		selected map[string]string
		want     []uint
	}{
		{"no constraints", nil, []uint{31, 32, 34}},
		{"case-insensitive slug", map[string]string{"pa_color": "RED"}, []uint{31}},
		{"unprefixed name", map[string]string{"color": "blue", "size": "m"}, []uint{34}},
		{"display name", map[string]string{"attribute_pa_color": "Blue"}, []uint{32, 34}},
		{"size only", map[string]string{"pa_size": "m"}, []uint{31, 34}},
		{"empty value ignored", map[string]string{"pa_size": ""}, []uint{31, 32, 34}},
		{"no match", map[string]string{"pa_color": "green"}, []uint{}},
		{"unknown dimension", map[string]string{"pa_material": "cotton"}, []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(h.GetFilteredVariations(p, tt.selected)))
		})
	}
}

func TestVariableParentDisabledWithoutSelectableVariation(t *testing.T) {
	p := hoodie()
	p.Variations = []models.Product{variation(41, 10, "attribute_pa_color", "", "attribute_pa_size", "")}

	rec := NewVariableHandler(testDeps()).GetProductData(p)
	assert.True(t, rec.Disabled)
	assert.NotEmpty(t, rec.DisabledReason)
	assert.Equal(t, testOrigin+"/wp-admin/post.php?post=30&action=edit", rec.EditURL)
}

func TestVariableSubscriptionUsesVariableRules(t *testing.T) {
	m := testManager()
	p := hoodie()
	p.Type = models.ProductTypeVariableSubscription

	h, ok := m.HandlerForProduct(p)
	require.True(t, ok)
	assert.IsType(t, &VariableHandler{}, h)

	rec := m.GetProductData(p)
	assert.True(t, rec.HasVariations)
	assert.Equal(t, models.ProductTypeVariableSubscription, rec.Type)
	assert.Len(t, m.GetVariations(p), 3)

	assert.False(t, m.IsValidForLinks(p))
	data := m.GetValidationData(p)
	assert.False(t, data.IsValid)
	require.Len(t, data.Errors, 1)
	assert.Equal(t, uint(32), data.Errors[0].VariationID)
}

func TestManagerVariationRecord(t *testing.T) {
	m := testManager()
	p := hoodie()

	rec, ok := m.VariationRecord(p, &p.Variations[0])
	require.True(t, ok)
	assert.Equal(t, uint(31), rec.ID)
	assert.Equal(t, "hoodie", rec.ParentSlug)

	_, ok = m.VariationRecord(mug(), &p.Variations[0])
	assert.False(t, ok)
}

func TestValidateVariation(t *testing.T) {
	m := testManager()
	p := hoodie()

	data, ok := m.ValidateVariation(p, &p.Variations[0])
	require.True(t, ok)
	assert.True(t, data.IsValid)
	assert.Empty(t, data.Warnings)

	data, _ = m.ValidateVariation(p, &p.Variations[1])
	assert.False(t, data.IsValid)
	require.Len(t, data.Errors, 1)
	assert.Equal(t, uint(32), data.Errors[0].VariationID)
	assert.Contains(t, data.Errors[0].Message, "Size")

	data, _ = m.ValidateVariation(p, &p.Variations[2])
	assert.False(t, data.IsValid)
	assert.Equal(t, "Variation is out of stock.", data.Errors[0].Message)

	data, _ = m.ValidateVariation(p, &p.Variations[3])
	assert.True(t, data.IsValid)
	require.Len(t, data.Warnings, 1)

	_, ok = m.ValidateVariation(mug(), &p.Variations[0])
	assert.False(t, ok)
}
