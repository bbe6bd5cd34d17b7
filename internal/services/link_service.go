// internal/services/link_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javajoker/cartlink/internal/catalog"
	"github.com/javajoker/cartlink/internal/linkbuilder"
	"github.com/javajoker/cartlink/internal/models"
	"github.com/javajoker/cartlink/internal/products"
	"github.com/javajoker/cartlink/internal/utils"
	"github.com/javajoker/cartlink/internal/validation"
)

const reasonSelectVariation = "Select a variation of this product."

type LinkService struct {
	products catalog.ProductLookup
	pages    catalog.PageLookup
	manager  *products.Manager
	builder  *linkbuilder.Builder
}

type LinkItem struct {
	ProductID       uint         `json:"product_id" validate:"required"`
	Quantity        int          `json:"quantity" validate:"min=0"`
	ChildQuantities map[uint]int `json:"child_quantities,omitempty"`
}

type RedirectRequest struct {
	Type    string `json:"type" validate:"redirect_type"`
	PageID  uint   `json:"page_id,omitempty"`
	PageURL string `json:"page_url,omitempty" validate:"omitempty,url"`
}

type BuildLinkRequest struct {
	LinkType string          `json:"link_type" validate:"required,link_type"`
	Items    []LinkItem      `json:"items" validate:"dive"`
	Coupon   string          `json:"coupon,omitempty" validate:"max=100"`
	Redirect RedirectRequest `json:"redirect"`
	Encoding string          `json:"encoding,omitempty" validate:"link_encoding"`
	Preview  bool            `json:"preview,omitempty"`
}

type LinkResult struct {
	URL         string                  `json:"url"`
	LinkType    linkbuilder.LinkType    `json:"link_type"`
	Placeholder string                  `json:"placeholder"`
	Selections  []linkbuilder.Selection `json:"selections"`
	Warnings    []validation.Entry      `json:"warnings"`
}

func NewLinkService(lookup catalog.ProductLookup, pages catalog.PageLookup, manager *products.Manager, builder *linkbuilder.Builder) *LinkService {
	return &LinkService{
		products: lookup,
		pages:    pages,
		manager:  manager,
		builder:  builder,
	}
}

// Build re-reads every selected product, checks it is eligible and renders
// the link. A preview request with no items returns the placeholder template
// as its URL.
func (s *LinkService) Build(ctx context.Context, req *BuildLinkRequest) (*LinkResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	spec := linkbuilder.LinkSpec{
		LinkType: linkbuilder.ParseLinkType(req.LinkType),
		Encoding: linkbuilder.ParseEncoding(req.Encoding),
	}

	result := &LinkResult{
		LinkType:   spec.LinkType,
		Selections: []linkbuilder.Selection{},
		Warnings:   []validation.Entry{},
	}

	if spec.LinkType == linkbuilder.LinkTypeCheckout {
		spec.Coupon = strings.TrimSpace(req.Coupon)
	} else {
		redirect, err := s.resolveRedirect(ctx, req.Redirect)
		if err != nil {
			return nil, err
		}
		spec.Redirect = redirect
	}

	for _, item := range req.Items {
		sel, warnings, err := s.selection(ctx, item)
		if err != nil {
			return nil, err
		}
		spec.Selections = append(spec.Selections, sel)
		result.Warnings = append(result.Warnings, warnings...)
	}

	result.Selections = append(result.Selections, spec.Selections...)
	result.Placeholder = s.builder.Placeholder(spec.LinkType, spec.Redirect)

	if req.Preview {
		result.URL = s.builder.Preview(spec)
		return result, nil
	}

	result.URL = s.builder.Build(spec)
	if result.URL == "" {
		return nil, ErrEmptyLink
	}
	return result, nil
}

// PreviewTemplate returns the placeholder link for a link type before any
// product is chosen.
func (s *LinkService) PreviewTemplate(linkType, redirectType string) string {
	return s.builder.Placeholder(
		linkbuilder.ParseLinkType(linkType),
		linkbuilder.Redirect{Type: linkbuilder.ParseRedirectType(redirectType)},
	)
}

func (s *LinkService) resolveRedirect(ctx context.Context, req RedirectRequest) (linkbuilder.Redirect, error) {
	redirect := linkbuilder.Redirect{Type: linkbuilder.ParseRedirectType(req.Type)}
	if redirect.Type != linkbuilder.RedirectPage {
		return redirect, nil
	}

	if req.PageID != 0 {
		page, err := s.pages.GetPage(ctx, req.PageID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return redirect, fmt.Errorf("%w: %w", ErrPageNotFound, err)
			}
			return redirect, fmt.Errorf("failed to get redirect page: %w", err)
		}
		redirect.PageURL = page.URL
		return redirect, nil
	}

	if req.PageURL == "" {
		return redirect, ErrPageRequired
	}
	redirect.PageURL = req.PageURL
	return redirect, nil
}

func (s *LinkService) selection(ctx context.Context, item LinkItem) (linkbuilder.Selection, []validation.Entry, error) {
	p, err := s.products.GetProduct(ctx, item.ProductID)
	if err != nil {
		return linkbuilder.Selection{}, nil, fmt.Errorf("failed to get product: %w", err)
	}

	var (
		rec  models.ProductRecord
		data products.ValidationData
	)

	if isVariation(p) {
		var ok bool
		if data, ok = s.manager.ValidateVariation(p.Parent, p); !ok {
			return linkbuilder.Selection{}, nil, ineligible(p.ID, validation.Message(reasonUnsupportedType))
		}
		rec, _ = s.manager.VariationRecord(p.Parent, p)
	} else {
		rec = s.manager.GetProductData(p)
		if rec.IsEmpty() {
			return linkbuilder.Selection{}, nil, ineligible(p.ID, validation.Message(reasonUnsupportedType))
		}
		if rec.HasVariations {
			return linkbuilder.Selection{}, nil, ineligible(p.ID, validation.Message(reasonSelectVariation))
		}
		data = s.manager.GetValidationData(p)
	}

	if !data.IsValid {
		return linkbuilder.Selection{}, nil, ineligible(p.ID, data.Errors...)
	}

	sel := linkbuilder.Selection{
		Product:         rec,
		Quantity:        item.Quantity,
		ChildQuantities: knownChildQuantities(rec, item.ChildQuantities),
	}
	sel.Quantity = sel.EffectiveQuantity()
	if len(rec.Children) > 0 && len(sel.ChildQuantities) == 0 {
		sel.ChildQuantities = defaultChildQuantities(rec)
	}
	return sel, data.Warnings, nil
}

// knownChildQuantities keeps the requested quantities of rec's own children.
func knownChildQuantities(rec models.ProductRecord, requested map[uint]int) map[uint]int {
	if len(requested) == 0 || len(rec.Children) == 0 {
		return nil
	}
	out := make(map[uint]int, len(requested))
	for _, child := range rec.Children {
		if q, ok := requested[child.ID]; ok {
			out[child.ID] = q
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func defaultChildQuantities(rec models.ProductRecord) map[uint]int {
	if len(rec.DefaultQuantities) > 0 {
		out := make(map[uint]int, len(rec.DefaultQuantities))
		for id, q := range rec.DefaultQuantities {
			out[id] = q
		}
		return out
	}

	out := make(map[uint]int, len(rec.Children))
	for _, child := range rec.Children {
		out[child.ID] = 1
	}
	return out
}
