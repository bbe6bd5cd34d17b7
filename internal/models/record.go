// internal/models/record.go
package models

// ProductRecord is the normalized view of a catalog item produced by a
// product type handler. It is what the link wizard displays and what link
// selections carry.
type ProductRecord struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	SKU              string          `json:"sku"`
	Price            string          `json:"price"`
	Image            string          `json:"image,omitempty"`
	Type             ProductType     `json:"type"`
	Slug             string          `json:"slug"`
	ParentID         uint            `json:"parent_id,omitempty"`
	ParentName       string          `json:"parent_name,omitempty"`
	ParentSlug       string          `json:"parent_slug,omitempty"`
	Attributes       AttributeValues `json:"attributes,omitempty"`
	SoldIndividually bool            `json:"sold_individually"`
	Children         []ProductRecord `json:"children,omitempty"`
	Disabled         bool            `json:"disabled"`
	DisabledReason   string          `json:"disabled_reason,omitempty"`
	MissingAttrs     []string        `json:"missing_attributes,omitempty"`
	EditURL          string          `json:"edit_url,omitempty"`

	// Variable products
	HasVariations       bool                 `json:"has_variations,omitempty"`
	VariationCount      int                  `json:"variation_count,omitempty"`
	AttributeDimensions []AttributeDimension `json:"attribute_dimensions,omitempty"`

	// Grouped products
	DefaultQuantities map[uint]int `json:"default_quantities,omitempty"`
	AddToCartURL      string       `json:"add_to_cart_url,omitempty"`

	// Subscriptions
	Subscription *SubscriptionData `json:"subscription,omitempty"`
}

// IsEmpty reports whether the record is the neutral value returned for
// products no handler supports.
func (r ProductRecord) IsEmpty() bool {
	return r.ID == 0 && r.Type == ""
}

// AttributeDimension lists the choices for one attribute of a variable
// product so the wizard can build filter controls.
type AttributeDimension struct {
	Name       string            `json:"name"`
	Label      string            `json:"label"`
	IsTaxonomy bool              `json:"is_taxonomy"`
	Options    []AttributeOption `json:"options"`
}

type AttributeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SubscriptionData is the billing schedule attached to subscription records.
// All fields are empty when no subscription provider is configured.
type SubscriptionData struct {
	Period      string  `json:"period,omitempty"`
	Interval    int     `json:"interval,omitempty"`
	Length      int     `json:"length,omitempty"`
	TrialLength int     `json:"trial_length,omitempty"`
	TrialPeriod string  `json:"trial_period,omitempty"`
	SignUpFee   float64 `json:"sign_up_fee,omitempty"`
	PriceString string  `json:"price_string,omitempty"`
}
