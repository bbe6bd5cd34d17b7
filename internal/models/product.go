// internal/models/product.go
package models

// Product is a catalog record as stored by the shop. Handles returned by the
// catalog are hydrated: Variations, Children, Attributes and Parent are loaded.
type Product struct {
	BaseModel
	Name             string          `json:"name" gorm:"size:255;not null"`
	Slug             string          `json:"slug" gorm:"size:255;index"`
	SKU              string          `json:"sku" gorm:"size:100;index"`
	Type             ProductType     `json:"type" gorm:"type:varchar(40);not null;index"`
	Status           ProductStatus   `json:"status" gorm:"type:varchar(20);default:'publish';index"`
	RegularPrice     float64         `json:"regular_price" gorm:"type:decimal(12,2);default:0"`
	SalePrice        *float64        `json:"sale_price,omitempty" gorm:"type:decimal(12,2)"`
	ImageURL         string          `json:"image_url,omitempty" gorm:"size:1024"`
	StockStatus      StockStatus     `json:"stock_status" gorm:"type:varchar(20);default:'instock'"`
	StockQuantity    *int            `json:"stock_quantity,omitempty"`
	Purchasable      bool            `json:"purchasable" gorm:"not null"`
	SoldIndividually bool            `json:"sold_individually" gorm:"default:false"`
	MenuOrder        int             `json:"menu_order" gorm:"default:0"`
	ParentID         *uint           `json:"parent_id,omitempty" gorm:"index"`
	VariationValues  AttributeValues `json:"variation_attributes,omitempty" gorm:"type:jsonb"`
	Subscription     JSONB           `json:"subscription,omitempty" gorm:"type:jsonb"`

	// Relationships
	Parent     *Product           `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Variations []Product          `json:"variations,omitempty" gorm:"foreignKey:ParentID"`
	Children   []Product          `json:"children,omitempty" gorm:"many2many:grouped_children;joinForeignKey:GroupedID;joinReferences:ChildID"`
	Attributes []ProductAttribute `json:"attributes,omitempty" gorm:"foreignKey:ProductID"`
}

// ActivePrice is the sale price when one is set, otherwise the regular price.
func (p *Product) ActivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.RegularPrice
}

func (p *Product) IsInStock() bool {
	return p.StockStatus != StockStatusOutOfStock
}

func (p *Product) IsPublished() bool {
	return p.Status == "" || p.Status == ProductStatusPublish
}

// IsPurchasable requires a published record flagged purchasable.
func (p *Product) IsPurchasable() bool {
	return p.Purchasable && p.IsPublished()
}

// Attribute finds a parent attribute by name, ignoring the "attribute_"
// prefix and case.
func (p *Product) Attribute(name string) (*ProductAttribute, bool) {
	key := AttributeKey(name)
	for i := range p.Attributes {
		if AttributeKey(p.Attributes[i].Name) == key {
			return &p.Attributes[i], true
		}
	}
	return nil, false
}
