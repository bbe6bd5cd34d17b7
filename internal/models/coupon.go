// internal/models/coupon.go
package models

import (
	"time"

	"github.com/lib/pq"
)

type Coupon struct {
	BaseModel
	Code          string         `json:"code" gorm:"size:100;uniqueIndex;not null"`
	DiscountType  DiscountType   `json:"discount_type" gorm:"type:varchar(30);default:'fixed_cart'"`
	Amount        float64        `json:"amount" gorm:"type:decimal(12,2);default:0"`
	Description   string         `json:"description" gorm:"type:text"`
	DateExpires   *time.Time     `json:"date_expires,omitempty"`
	MinimumAmount float64        `json:"minimum_amount" gorm:"type:decimal(12,2);default:0"`
	UsageLimit    *int           `json:"usage_limit,omitempty"`
	ProductIDs    pq.Int64Array  `json:"product_ids,omitempty" gorm:"type:bigint[]"`
	EmailLimits   pq.StringArray `json:"email_restrictions,omitempty" gorm:"type:text[]"`
	Status        ProductStatus  `json:"status" gorm:"type:varchar(20);default:'publish'"`
}

// CouponSummary is the search result shape handed to the link wizard.
type CouponSummary struct {
	ID            uint         `json:"id"`
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discount_type"`
	Amount        float64      `json:"amount"`
	Description   string       `json:"description"`
	DateExpires   *time.Time   `json:"date_expires"`
	MinimumAmount float64      `json:"minimum_amount"`
	UsageLimit    *int         `json:"usage_limit"`
}

func (c *Coupon) Summary() CouponSummary {
	return CouponSummary{
		ID:            c.ID,
		Code:          c.Code,
		DiscountType:  c.DiscountType,
		Amount:        c.Amount,
		Description:   c.Description,
		DateExpires:   c.DateExpires,
		MinimumAmount: c.MinimumAmount,
		UsageLimit:    c.UsageLimit,
	}
}
