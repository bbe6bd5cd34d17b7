// internal/products/fixtures_test.go
package products

import (
	"github.com/javajoker/cartlink/internal/linkbuilder"
	"github.com/javajoker/cartlink/internal/models"
	"github.com/javajoker/cartlink/internal/validation"
)

const testOrigin = "https://shop.example.com"

func testDeps() Dependencies {
	registry := validation.NewRegistry()
	registry.InitializeDefaults()
	prices := DefaultPriceFormatter()
	return Dependencies{
		Registry:      registry,
		Prices:        prices,
		Links:         linkbuilder.New(testOrigin, ""),
		Subscriptions: NewMetaSubscriptionProvider(prices),
	}
}

func testManager(hooks ...RegistrationHook) *Manager {
	m := NewManager(testDeps(), hooks...)
	m.InitializeDefaults()
	return m
}

func uintPtr(v uint) *uint {
	return &v
}

func mug() *models.Product {
	return &models.Product{
		BaseModel:    models.BaseModel{ID: 18},
		Name:         "Mug",
		Slug:         "mug",
		SKU:          "MUG-1",
		Type:         models.ProductTypeSimple,
		Status:       models.ProductStatusPublish,
		RegularPrice: 12.5,
		StockStatus:  models.StockStatusInStock,
		Purchasable:  true,
	}
}

func variation(id uint, price float64, values ...string) models.Product {
	v := models.Product{
		BaseModel:    models.BaseModel{ID: id},
		Type:         models.ProductTypeVariation,
		Status:       models.ProductStatusPublish,
		RegularPrice: price,
		StockStatus:  models.StockStatusInStock,
		Purchasable:  true,
		ParentID:     uintPtr(30),
	}
	for i := 0; i+1 < len(values); i += 2 {
		v.VariationValues = append(v.VariationValues, models.AttributeValue{Name: values[i], Value: values[i+1]})
	}
	return v
}

// hoodie has one selectable red/M variation, one with size left as "Any",
// one out of stock and one sold individually.
func hoodie() *models.Product {
	outOfStock := variation(33, 20, "attribute_pa_color", "red", "attribute_pa_size", "s")
	outOfStock.StockStatus = models.StockStatusOutOfStock

	single := variation(34, 25, "attribute_pa_color", "blue", "attribute_pa_size", "m")
	single.SoldIndividually = true

	return &models.Product{
		BaseModel:    models.BaseModel{ID: 30},
		Name:         "Hoodie",
		Slug:         "hoodie",
		SKU:          "HOOD",
		Type:         models.ProductTypeVariable,
		Status:       models.ProductStatusPublish,
		ImageURL:     "https://cdn.example.com/hoodie.jpg",
		StockStatus:  models.StockStatusInStock,
		Purchasable:  true,
		RegularPrice: 20,
		Attributes: []models.ProductAttribute{
			{
				ID: 1, ProductID: 30, Name: "pa_color", Variation: true, Label: "Color",
				Terms: []models.AttributeTerm{
					{ID: 11, Taxonomy: "pa_color", Name: "Red", Slug: "red"},
					{ID: 12, Taxonomy: "pa_color", Name: "Blue", Slug: "blue"},
				},
			},
			{
				ID: 2, ProductID: 30, Name: "pa_size", Variation: true,
				Terms: []models.AttributeTerm{
					{ID: 21, Taxonomy: "pa_size", Name: "S", Slug: "s"},
					{ID: 22, Taxonomy: "pa_size", Name: "M", Slug: "m"},
				},
			},
		},
		Variations: []models.Product{
			variation(31, 20, "attribute_pa_color", "red", "attribute_pa_size", "m"),
			variation(32, 22, "attribute_pa_color", "blue", "attribute_pa_size", ""),
			outOfStock,
			single,
		},
	}
}

func teaSet() *models.Product {
	return &models.Product{
		BaseModel:   models.BaseModel{ID: 100},
		Name:        "Tea Set",
		Slug:        "tea-set",
		Type:        models.ProductTypeGrouped,
		Status:      models.ProductStatusPublish,
		StockStatus: models.StockStatusInStock,
		Children: []models.Product{
			{BaseModel: models.BaseModel{ID: 101}, Name: "Cup", SKU: "CUP", Type: models.ProductTypeSimple, RegularPrice: 4},
			{BaseModel: models.BaseModel{ID: 102}, Name: "Saucer", SKU: "SAU", Type: models.ProductTypeSimple, RegularPrice: 3},
		},
	}
}

func magazine() *models.Product {
	return &models.Product{
		BaseModel:    models.BaseModel{ID: 50},
		Name:         "Magazine",
		Slug:         "magazine",
		Type:         models.ProductTypeSubscription,
		Status:       models.ProductStatusPublish,
		RegularPrice: 9.99,
		StockStatus:  models.StockStatusInStock,
		Purchasable:  true,
		Subscription: models.JSONB{
			"period":       "month",
			"interval":     float64(2),
			"length":       float64(12),
			"trial_length": float64(1),
			"trial_period": "week",
			"sign_up_fee":  "5",
		},
	}
}
