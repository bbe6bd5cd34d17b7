// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// AttributeValue is one attribute dimension of a variation. An empty Value
// means the dimension is left as "Any".
type AttributeValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AttributeValues keeps attribute dimensions in catalog order.
type AttributeValues []AttributeValue

func (a AttributeValues) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *AttributeValues) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("unsupported type for AttributeValues")
	}

	return json.Unmarshal(bytes, a)
}

// Get returns the value stored for name, comparing names without the
// "attribute_" prefix.
func (a AttributeValues) Get(name string) (string, bool) {
	key := AttributeKey(name)
	for _, av := range a {
		if AttributeKey(av.Name) == key {
			return av.Value, true
		}
	}
	return "", false
}

// Enums
type ProductType string

const (
	ProductTypeSimple               ProductType = "simple"
	ProductTypeVariable             ProductType = "variable"
	ProductTypeVariation            ProductType = "variation"
	ProductTypeSubscription         ProductType = "subscription"
	ProductTypeVariableSubscription ProductType = "variable-subscription"
	ProductTypeGrouped              ProductType = "grouped"
	ProductTypeBundle               ProductType = "bundle"
	ProductTypeComposite            ProductType = "composite"
)

type ProductStatus string

const (
	ProductStatusDraft   ProductStatus = "draft"
	ProductStatusPublish ProductStatus = "publish"
	ProductStatusPrivate ProductStatus = "private"
)

type StockStatus string

const (
	StockStatusInStock     StockStatus = "instock"
	StockStatusOutOfStock  StockStatus = "outofstock"
	StockStatusOnBackorder StockStatus = "onbackorder"
)

type DiscountType string

const (
	DiscountTypePercent       DiscountType = "percent"
	DiscountTypeFixedCart     DiscountType = "fixed_cart"
	DiscountTypeFixedProduct  DiscountType = "fixed_product"
	DiscountTypeSignUpFee     DiscountType = "sign_up_fee"
	DiscountTypeRecurringFee  DiscountType = "recurring_fee"
	DiscountTypeRecurringPcnt DiscountType = "recurring_percent"
)

type UserRole string

const (
	UserRoleShopManager   UserRole = "shop_manager"
	UserRoleAdministrator UserRole = "administrator"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)
