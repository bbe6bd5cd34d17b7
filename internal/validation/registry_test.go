// internal/validation/registry_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/cartlink/internal/models"
)

func simpleProduct() *models.Product {
	return &models.Product{
		BaseModel:   models.BaseModel{ID: 18},
		Name:        "Mug",
		Type:        models.ProductTypeSimple,
		Status:      models.ProductStatusPublish,
		Purchasable: true,
		StockStatus: models.StockStatusInStock,
	}
}

func messages(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

func TestValidateAggregatesInPriorityOrder(t *testing.T) {
	r := NewRegistry()

	require.True(t, r.Register(Rule{
		ID:           "always_invalid",
		ProductTypes: []models.ProductType{models.ProductTypeSimple},
		Priority:     20,
		Callback: func(p *models.Product, ruleID string) *Result {
			return Invalid(Message("E1"))
		},
	}))
	require.True(t, r.Register(Rule{
		ID:           "always_valid",
		ProductTypes: []models.ProductType{models.ProductTypeSimple},
		Priority:     10,
		Callback: func(p *models.Product, ruleID string) *Result {
			return Valid()
		},
	}))

	result := r.Validate(simpleProduct())
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"E1"}, messages(result.Errors))
	assert.Equal(t, "always_invalid", result.Errors[0].RuleID)

	ids := []string{}
	for _, rule := range r.RulesFor(models.ProductTypeSimple) {
		ids = append(ids, rule.ID)
	}
	assert.Equal(t, []string{"always_valid", "always_invalid"}, ids)
}

func TestRegisterRejectsMalformedRules(t *testing.T) {
	r := NewRegistry()
	callback := Check(func(p *models.Product) bool { return true })

	assert.False(t, r.Register(Rule{ID: "", ProductTypes: []models.ProductType{models.ProductTypeSimple}, Callback: callback}))
	assert.False(t, r.Register(Rule{ID: "no_types", Callback: callback}))
	assert.False(t, r.Register(Rule{ID: "no_callback", ProductTypes: []models.ProductType{models.ProductTypeSimple}}))

	assert.Empty(t, r.RulesFor(models.ProductTypeSimple))
	assert.Empty(t, r.Rules())
}

func TestRegisterOverwritesByID(t *testing.T) {
	r := NewRegistry()
	types := []models.ProductType{models.ProductTypeSimple}

	require.True(t, r.Register(Rule{ID: "a", ProductTypes: types, Priority: 5, Callback: Check(func(*models.Product) bool { return true })}))
	require.True(t, r.Register(Rule{ID: "b", ProductTypes: types, Priority: 5, Callback: Check(func(*models.Product) bool { return true })}))
	require.True(t, r.Register(Rule{ID: "a", ProductTypes: types, Priority: 5, Callback: Check(func(*models.Product) bool { return false })}))

	rules := r.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "a", rules[0].ID)
	assert.Equal(t, "b", rules[1].ID)
	assert.False(t, r.IsValidForLinks(simpleProduct()))
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	r.InitializeDefaults()

	assert.True(t, r.Unregister(RuleSimplePurchasable))
	assert.False(t, r.Unregister(RuleSimplePurchasable))

	for _, rule := range r.RulesFor(models.ProductTypeSimple) {
		assert.NotEqual(t, RuleSimplePurchasable, rule.ID)
	}
}

func TestCheckSynthesizesMessage(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.Register(Rule{
		ID:           "needs_sku",
		ProductTypes: []models.ProductType{models.ProductTypeSimple},
		Callback:     Check(func(p *models.Product) bool { return p.SKU != "" }),
	}))

	result := r.Validate(simpleProduct())
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "needs_sku")

	p := simpleProduct()
	p.SKU = "MUG-1"
	assert.True(t, r.Validate(p).IsValid)
	assert.Empty(t, r.Validate(p).Errors)
}

func TestValidateRejectsUnknownHandle(t *testing.T) {
	r := NewRegistry()
	r.InitializeDefaults()

	result := r.Validate(nil)
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 1)

	result = r.Validate(&models.Product{})
	assert.False(t, result.IsValid)
}

func TestResultFilterCanForceValid(t *testing.T) {
	forceValid := func(p *models.Product, result Result) Result {
		if p.ID == 18 {
			return Result{IsValid: true, Errors: []Entry{}}
		}
		return result
	}
	r := NewRegistry(forceValid)
	r.InitializeDefaults()

	p := simpleProduct()
	p.StockStatus = models.StockStatusOutOfStock
	assert.True(t, r.IsValidForLinks(p))

	p.ID = 19
	assert.False(t, r.IsValidForLinks(p))
}

func TestSimplePurchasableReportsBothProblems(t *testing.T) {
	r := NewRegistry()
	r.InitializeDefaults()

	p := simpleProduct()
	assert.True(t, r.IsValidForLinks(p))

	p.Purchasable = false
	p.StockStatus = models.StockStatusOutOfStock
	result := r.Validate(p)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Product is not purchasable.", "Product is out of stock."}, messages(result.Errors))
}

func TestSoldIndividuallyOnlyAddsNote(t *testing.T) {
	r := NewRegistry()
	r.InitializeDefaults()

	p := simpleProduct()
	p.SoldIndividually = true
	result := r.Validate(p)
	assert.True(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, EntryTypeInfo, result.Errors[0].Type)
	assert.True(t, result.Errors[0].IsWarning())
}

func TestVariableAnyAttributesRule(t *testing.T) {
	r := NewRegistry()
	r.InitializeDefaults()

	parent := &models.Product{
		BaseModel: models.BaseModel{ID: 30},
		Name:      "Hoodie",
		Type:      models.ProductTypeVariable,
		Variations: []models.Product{
			{
				BaseModel:       models.BaseModel{ID: 31},
				Type:            models.ProductTypeVariation,
				VariationValues: models.AttributeValues{{Name: "pa_color", Value: "red"}, {Name: "pa_size", Value: "m"}},
			},
			{
				BaseModel:       models.BaseModel{ID: 32},
				Type:            models.ProductTypeVariation,
				VariationValues: models.AttributeValues{{Name: "pa_color", Value: "blue"}, {Name: "pa_size", Value: ""}},
			},
			{
				BaseModel:       models.BaseModel{ID: 33},
				Type:            models.ProductTypeVariation,
				Status:          models.ProductStatusPrivate,
				VariationValues: models.AttributeValues{{Name: "pa_color", Value: ""}, {Name: "pa_size", Value: ""}},
			},
		},
	}

	result := r.Validate(parent)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, uint(32), result.Errors[0].VariationID)
	assert.Equal(t, "Hoodie - Color: Blue", result.Errors[0].VariationName)
	assert.Contains(t, result.Errors[0].Message, "Size")

	parent.Type = models.ProductTypeVariableSubscription
	result = r.Validate(parent)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, uint(32), result.Errors[0].VariationID)

	parent.Variations = parent.Variations[:1]
	assert.True(t, r.IsValidForLinks(parent))
}
