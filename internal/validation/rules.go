// internal/validation/rules.go
package validation

import (
	"fmt"
	"strings"

	"github.com/javajoker/cartlink/internal/attributes"
	"github.com/javajoker/cartlink/internal/models"
)

const (
	RuleVariableAnyAttributes = "variable_product_any_attributes"
	RuleSimplePurchasable     = "simple_product_purchasable"
	RuleSoldIndividually      = "product_sold_individually"
)

func DefaultRules() []Rule {
	return []Rule{
		{
			ID: RuleVariableAnyAttributes,
			ProductTypes: []models.ProductType{
				models.ProductTypeVariable,
				models.ProductTypeVariableSubscription,
			},
			Priority:    10,
			Callback:    variableAnyAttributes,
			Description: "Variable products cannot have variations with 'Any' attributes",
		},
		{
			ID:           RuleSimplePurchasable,
			ProductTypes: []models.ProductType{models.ProductTypeSimple},
			Priority:     10,
			Callback:     simplePurchasable,
			Description:  "Simple products must be purchasable and in stock",
		},
		{
			ID: RuleSoldIndividually,
			ProductTypes: []models.ProductType{
				models.ProductTypeSimple,
				models.ProductTypeVariable,
				models.ProductTypeSubscription,
				models.ProductTypeVariableSubscription,
			},
			Priority:    20,
			Callback:    soldIndividually,
			Description: "Flags products limited to one per order",
		},
	}
}

func variableAnyAttributes(p *models.Product, _ string) *Result {
	var entries []Entry
	for i := range p.Variations {
		variation := &p.Variations[i]
		if !variation.IsPublished() || !attributes.HasAnyAttributes(variation) {
			continue
		}

		missing := attributes.MissingDimensions(p, variation)
		name := attributes.VariationName(p, variation)
		entries = append(entries, Entry{
			Type:          EntryTypeError,
			Message:       fmt.Sprintf("Variation %q has unset attributes (%s). Set a value for every attribute to use it in links.", name, strings.Join(missing, ", ")),
			VariationID:   variation.ID,
			VariationName: name,
			Attributes:    variation.VariationValues,
		})
	}

	if len(entries) > 0 {
		return Invalid(entries...)
	}
	return nil
}

// The two checks are independent; both messages may be reported.
func simplePurchasable(p *models.Product, _ string) *Result {
	var entries []Entry
	if !p.IsPurchasable() {
		entries = append(entries, Message("Product is not purchasable."))
	}
	if !p.IsInStock() {
		entries = append(entries, Message("Product is out of stock."))
	}

	if len(entries) > 0 {
		return Invalid(entries...)
	}
	return nil
}

func soldIndividually(p *models.Product, _ string) *Result {
	if p.SoldIndividually {
		return Valid(Entry{
			Type:    EntryTypeInfo,
			Message: "Product is sold individually. Quantity is limited to 1.",
		})
	}

	if p.Type == models.ProductTypeVariable || p.Type == models.ProductTypeVariableSubscription {
		for i := range p.Variations {
			if p.Variations[i].SoldIndividually {
				return Valid(Entry{
					Type:    EntryTypeInfo,
					Message: "Some variations are sold individually. Their quantity is limited to 1.",
				})
			}
		}
	}
	return nil
}
