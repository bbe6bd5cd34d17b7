// internal/linkbuilder/builder.go

// Package linkbuilder encodes product selections into add-to-cart and
// checkout-link URLs. Everything here is a pure function of its input.
package linkbuilder

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/javajoker/cartlink/internal/models"
)

type LinkType string

const (
	LinkTypeAddToCart LinkType = "add-to-cart"
	LinkTypeCheckout  LinkType = "checkout"
)

type Encoding string

const (
	EncodingDecoded Encoding = "decoded"
	EncodingEncoded Encoding = "encoded"
)

type RedirectType string

const (
	RedirectNone     RedirectType = "none"
	RedirectCart     RedirectType = "cart"
	RedirectCheckout RedirectType = "checkout"
	RedirectProduct  RedirectType = "product"
	RedirectPage     RedirectType = "page"
)

const (
	checkoutLinkPath = "/checkout-link/"

	placeholderAddToCart = "?add-to-cart=PRODUCT_ID&quantity=1"
	placeholderCheckout  = "?products=PRODUCT_ID:QUANTITY"
)

// Redirect chooses where an add-to-cart link lands. PageURL is the canonical
// URL of the target page when Type is RedirectPage.
type Redirect struct {
	Type    RedirectType `json:"type"`
	PageURL string       `json:"page_url,omitempty"`
}

// Selection is a product picked for the link. ChildQuantities applies to
// grouped and bundle products and is keyed by child product id.
type Selection struct {
	Product         models.ProductRecord `json:"product"`
	Quantity        int                  `json:"quantity"`
	ChildQuantities map[uint]int         `json:"child_quantities,omitempty"`
}

// EffectiveQuantity applies the default of 1 and the sold-individually clamp.
func (s Selection) EffectiveQuantity() int {
	if s.Product.SoldIndividually || s.Quantity < 1 {
		return 1
	}
	return s.Quantity
}

type LinkSpec struct {
	LinkType   LinkType    `json:"link_type"`
	Selections []Selection `json:"selections"`
	Coupon     string      `json:"coupon,omitempty"`
	Redirect   Redirect    `json:"redirect"`
	Encoding   Encoding    `json:"encoding"`
}

type Builder struct {
	origin   string
	adminURL string
}

// New returns a builder for the shop at origin. adminURL defaults to
// origin + "/wp-admin" when empty.
func New(origin, adminURL string) *Builder {
	origin = strings.TrimRight(origin, "/")
	if adminURL == "" {
		adminURL = origin + "/wp-admin"
	}
	return &Builder{
		origin:   origin,
		adminURL: strings.TrimRight(adminURL, "/"),
	}
}

func (b *Builder) Origin() string {
	return b.origin
}

// Build renders the link. It returns an empty string when the link spec has no
// usable selections.
func (b *Builder) Build(spec LinkSpec) string {
	selections := usable(spec.Selections)
	if len(selections) == 0 {
		return ""
	}

	if spec.LinkType == LinkTypeCheckout {
		return b.buildCheckout(selections, spec.Coupon, spec.Encoding)
	}
	return b.buildAddToCart(selections, spec.Redirect)
}

// Preview renders the link, or a fixed template showing the link structure
// when nothing has been selected yet.
func (b *Builder) Preview(spec LinkSpec) string {
	if len(usable(spec.Selections)) > 0 {
		return b.Build(spec)
	}
	return b.Placeholder(spec.LinkType, spec.Redirect)
}

func (b *Builder) Placeholder(linkType LinkType, redirect Redirect) string {
	if linkType == LinkTypeCheckout {
		return b.origin + checkoutLinkPath + placeholderCheckout
	}
	return b.origin + b.redirectPath(nil, redirect) + placeholderAddToCart
}

// RedirectPath returns the path an add-to-cart link for spec lands on.
func (b *Builder) RedirectPath(spec LinkSpec) string {
	return b.redirectPath(usable(spec.Selections), spec.Redirect)
}

// GroupedAddToCartURL builds the add-to-cart link for a grouped product with
// every child at quantity 1 and returns the quantities used.
func (b *Builder) GroupedAddToCartURL(grouped models.ProductRecord) (string, map[uint]int) {
	defaults := make(map[uint]int, len(grouped.Children))
	for _, child := range grouped.Children {
		defaults[child.ID] = 1
	}

	link := b.Build(LinkSpec{
		LinkType: LinkTypeAddToCart,
		Selections: []Selection{
			{Product: grouped, Quantity: 1, ChildQuantities: defaults},
		},
	})
	return link, defaults
}

// EditProductURL points at the product's edit screen in the shop admin.
func (b *Builder) EditProductURL(productID uint) string {
	return fmt.Sprintf("%s/post.php?post=%d&action=edit", b.adminURL, productID)
}

func (b *Builder) buildAddToCart(selections []Selection, redirect Redirect) string {
	var params []string
	for _, sel := range selections {
		id := strconv.FormatUint(uint64(sel.Product.ID), 10)
		params = append(params, "add-to-cart="+id)

		switch sel.Product.Type {
		case models.ProductTypeGrouped:
			for _, cq := range childQuantities(sel) {
				params = append(params, fmt.Sprintf("quantity[%d]=%d", cq.id, cq.quantity))
			}
		case models.ProductTypeBundle:
			for k, cq := range childQuantities(sel) {
				params = append(params, fmt.Sprintf("bundle_quantity_%d=%d", k+1, cq.quantity))
			}
			params = append(params, "quantity=1")
		default:
			if q := sel.EffectiveQuantity(); q > 1 {
				params = append(params, "quantity="+strconv.Itoa(q))
			}
		}
	}

	return b.origin + b.redirectPath(selections, redirect) + "?" + strings.Join(params, "&")
}

func (b *Builder) buildCheckout(selections []Selection, coupon string, encoding Encoding) string {
	items := make([]string, 0, len(selections))
	for _, sel := range selections {
		items = append(items, fmt.Sprintf("%d:%d", sel.Product.ID, sel.EffectiveQuantity()))
	}

	products := strings.Join(items, ",")
	if encoding == EncodingEncoded {
		products = strings.NewReplacer(":", "%3A", ",", "%2C").Replace(products)
	}

	link := b.origin + checkoutLinkPath + "?products=" + products
	if coupon = strings.TrimSpace(coupon); coupon != "" {
		link += "&coupon=" + url.QueryEscape(coupon)
	}
	return link
}

func (b *Builder) redirectPath(selections []Selection, redirect Redirect) string {
	switch redirect.Type {
	case RedirectCart:
		return "/cart/"
	case RedirectCheckout:
		return "/checkout/"
	case RedirectProduct:
		if len(selections) == 0 {
			return "/"
		}
		first := selections[0].Product
		slug, id := first.Slug, first.ID
		if first.Type == models.ProductTypeVariation && first.ParentID != 0 {
			slug, id = first.ParentSlug, first.ParentID
		}
		if slug != "" {
			return "/product/" + slug + "/"
		}
		return fmt.Sprintf("/product/%d/", id)
	case RedirectPage:
		if slug := lastPathSegment(redirect.PageURL); slug != "" {
			return "/" + slug + "/"
		}
		return "/"
	default:
		return "/"
	}
}

type childQuantity struct {
	id       uint
	quantity int
}

// childQuantities lists children with a positive quantity in the product's
// own child order. Ids that are not children are ignored.
func childQuantities(sel Selection) []childQuantity {
	var out []childQuantity
	for _, child := range sel.Product.Children {
		if q := sel.ChildQuantities[child.ID]; q > 0 {
			out = append(out, childQuantity{id: child.ID, quantity: q})
		}
	}
	return out
}

func usable(selections []Selection) []Selection {
	out := make([]Selection, 0, len(selections))
	for _, sel := range selections {
		if sel.Product.ID != 0 {
			out = append(out, sel)
		}
	}
	return out
}

func lastPathSegment(raw string) string {
	if raw == "" {
		return ""
	}
	path := raw
	if u, err := url.Parse(raw); err == nil {
		path = u.Path
	}

	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(segments[i]); s != "" {
			return s
		}
	}
	return ""
}

// ParseLinkType maps user input onto a link type, defaulting to add-to-cart.
func ParseLinkType(s string) LinkType {
	if LinkType(strings.ToLower(strings.TrimSpace(s))) == LinkTypeCheckout {
		return LinkTypeCheckout
	}
	return LinkTypeAddToCart
}

// ParseRedirectType maps user input onto a redirect, falling back to none for
// unknown values.
func ParseRedirectType(s string) RedirectType {
	switch t := RedirectType(strings.ToLower(strings.TrimSpace(s))); t {
	case RedirectCart, RedirectCheckout, RedirectProduct, RedirectPage:
		return t
	default:
		return RedirectNone
	}
}

func ParseEncoding(s string) Encoding {
	if Encoding(strings.ToLower(strings.TrimSpace(s))) == EncodingEncoded {
		return EncodingEncoded
	}
	return EncodingDecoded
}
