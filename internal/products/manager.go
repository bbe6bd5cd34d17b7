// internal/products/manager.go
package products

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/cartlink/internal/models"
	"github.com/javajoker/cartlink/internal/validation"
)

// RegistrationHook runs after the default handlers are registered so addon
// handlers can add themselves before first use.
type RegistrationHook func(m *Manager)

// Manager owns the handlers by product type and is the type-erased entry
// point for the rest of the service. Handlers are registered during start-up
// and only read afterwards.
type Manager struct {
	deps     Dependencies
	handlers map[models.ProductType]Handler
	order    []models.ProductType
	hooks    []RegistrationHook
}

func NewManager(deps Dependencies, hooks ...RegistrationHook) *Manager {
	return &Manager{
		deps:     deps.withDefaults(),
		handlers: make(map[models.ProductType]Handler),
		hooks:    hooks,
	}
}

// Dependencies returns the collaborators handlers are built with.
func (m *Manager) Dependencies() Dependencies {
	return m.deps
}

func (m *Manager) Registry() *validation.Registry {
	return m.deps.Registry
}

// InitializeDefaults registers the built-in handlers and then runs the
// registration hooks.
func (m *Manager) InitializeDefaults() {
	m.RegisterHandler(NewSimpleHandler(m.deps))
	m.RegisterHandler(NewVariableHandler(m.deps))
	m.RegisterHandler(NewVariableSubscriptionHandler(m.deps))
	m.RegisterHandler(NewSubscriptionHandler(m.deps))
	m.RegisterHandler(NewGroupedHandler(m.deps))

	for _, hook := range m.hooks {
		hook(m)
	}

	logrus.WithField("types", m.RegisteredTypes()).Debug("Product handlers registered")
}

// RegisterHandler indexes h by its product type, replacing any handler
// registered for the same type.
func (m *Manager) RegisterHandler(h Handler) {
	if h == nil {
		return
	}
	t := h.ProductType()
	if _, exists := m.handlers[t]; !exists {
		m.order = append(m.order, t)
	}
	m.handlers[t] = h
}

func (m *Manager) Handler(t models.ProductType) (Handler, bool) {
	h, ok := m.handlers[t]
	return h, ok
}

// HandlerForProduct returns the handler registered for the product's type,
// falling back to the first handler in registration order whose CanHandle
// accepts the product.
func (m *Manager) HandlerForProduct(p *models.Product) (Handler, bool) {
	if p == nil {
		return nil, false
	}
	if h, ok := m.handlers[p.Type]; ok && h.CanHandle(p) {
		return h, true
	}
	for _, t := range m.order {
		if h := m.handlers[t]; h.CanHandle(p) {
			return h, true
		}
	}
	return nil, false
}

func (m *Manager) GetSearchResults(p *models.Product) []models.ProductRecord {
	h, ok := m.HandlerForProduct(p)
	if !ok {
		return []models.ProductRecord{}
	}
	return h.GetSearchResults(p)
}

func (m *Manager) GetProductData(p *models.Product) models.ProductRecord {
	h, ok := m.HandlerForProduct(p)
	if !ok {
		return models.ProductRecord{}
	}
	return h.GetProductData(p)
}

func (m *Manager) IsValidForLinks(p *models.Product) bool {
	h, ok := m.HandlerForProduct(p)
	if !ok {
		return false
	}
	return h.IsValidForLinks(p)
}

func (m *Manager) GetValidationErrors(p *models.Product) []validation.Entry {
	h, ok := m.HandlerForProduct(p)
	if !ok {
		return []validation.Entry{validation.Message("Unsupported product type.")}
	}
	return h.GetValidationErrors(p)
}

func (m *Manager) GetValidationData(p *models.Product) ValidationData {
	h, ok := m.HandlerForProduct(p)
	if !ok {
		return ValidationData{
			Errors:   []validation.Entry{validation.Message("Unsupported product type.")},
			Warnings: []validation.Entry{},
		}
	}
	return h.GetValidationData(p)
}

// GetVariations lists a variable product's variations. Products of other
// types have none.
func (m *Manager) GetVariations(p *models.Product) []models.ProductRecord {
	if lister, ok := m.variationLister(p); ok {
		return lister.GetVariations(p)
	}
	return []models.ProductRecord{}
}

func (m *Manager) GetFilteredVariations(p *models.Product, selected map[string]string) []models.ProductRecord {
	if lister, ok := m.variationLister(p); ok {
		return lister.GetFilteredVariations(p, selected)
	}
	return []models.ProductRecord{}
}

// VariationRecord normalizes a variation through its parent's handler.
func (m *Manager) VariationRecord(parent, variation *models.Product) (models.ProductRecord, bool) {
	if variation == nil {
		return models.ProductRecord{}, false
	}
	lister, ok := m.variationLister(parent)
	if !ok {
		return models.ProductRecord{}, false
	}
	return lister.VariationRecord(parent, variation), true
}

// ValidateVariation checks one variation through its parent's handler. The
// second result is false when the parent has no variation-aware handler.
func (m *Manager) ValidateVariation(parent, variation *models.Product) (ValidationData, bool) {
	lister, ok := m.variationLister(parent)
	if !ok {
		return ValidationData{}, false
	}
	return lister.ValidateVariation(parent, variation), true
}

// RegisteredTypes returns the registered product types in sorted order.
func (m *Manager) RegisteredTypes() []models.ProductType {
	types := make([]models.ProductType, 0, len(m.handlers))
	for t := range m.handlers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func (m *Manager) variationLister(p *models.Product) (VariationLister, bool) {
	h, ok := m.HandlerForProduct(p)
	if !ok {
		return nil, false
	}
	lister, ok := h.(VariationLister)
	return lister, ok
}
