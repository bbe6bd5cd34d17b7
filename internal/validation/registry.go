// internal/validation/registry.go

// Package validation holds the rule registry that decides whether a product
// can be put into a cart or checkout link.
package validation

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/cartlink/internal/models"
)

type EntryType string

const (
	EntryTypeError   EntryType = "error"
	EntryTypeWarning EntryType = "warning"
	EntryTypeInfo    EntryType = "info"
)

// Entry is one validation message. Per-variation problems carry the
// variation fields; plain messages leave them empty.
type Entry struct {
	Type          EntryType              `json:"type,omitempty"`
	RuleID        string                 `json:"rule_id,omitempty"`
	Message       string                 `json:"message"`
	VariationID   uint                   `json:"variation_id,omitempty"`
	VariationName string                 `json:"variation_name,omitempty"`
	Attributes    models.AttributeValues `json:"attributes,omitempty"`
}

// IsWarning reports whether the entry is informational rather than blocking.
func (e Entry) IsWarning() bool {
	return e.Type == EntryTypeWarning || e.Type == EntryTypeInfo
}

type Result struct {
	IsValid bool    `json:"is_valid"`
	Errors  []Entry `json:"errors"`
}

// Valid returns a passing result, optionally carrying notes.
func Valid(notes ...Entry) *Result {
	return &Result{IsValid: true, Errors: notes}
}

func Invalid(entries ...Entry) *Result {
	return &Result{IsValid: false, Errors: entries}
}

func Message(message string) Entry {
	return Entry{Type: EntryTypeError, Message: message}
}

// RuleFunc evaluates one rule. A nil result means valid with nothing to report.
type RuleFunc func(p *models.Product, ruleID string) *Result

// Check adapts a boolean predicate. A false outcome is reported with a
// generic message naming the rule.
func Check(fn func(p *models.Product) bool) RuleFunc {
	if fn == nil {
		return nil
	}
	return func(p *models.Product, ruleID string) *Result {
		if fn(p) {
			return nil
		}
		return Invalid(Message(fmt.Sprintf("Validation failed for rule: %s", ruleID)))
	}
}

type Rule struct {
	ID           string
	ProductTypes []models.ProductType
	Priority     int
	Callback     RuleFunc
	Description  string
}

func (r Rule) AppliesTo(productType models.ProductType) bool {
	for _, t := range r.ProductTypes {
		if t == productType {
			return true
		}
	}
	return false
}

// ResultFilter may rewrite the aggregate result for a product, e.g. to force
// specific products valid.
type ResultFilter func(p *models.Product, result Result) Result

// Registry keeps rules sorted by ascending priority. It is populated during
// start-up and only read afterwards, so it carries no lock.
type Registry struct {
	rules   []Rule
	filters []ResultFilter
}

func NewRegistry(filters ...ResultFilter) *Registry {
	return &Registry{filters: filters}
}

// InitializeDefaults registers the rules every installation ships with.
func (r *Registry) InitializeDefaults() {
	for _, rule := range DefaultRules() {
		r.Register(rule)
	}
}

// Register adds or replaces a rule. It returns false for rules without an
// id, product types or callback.
func (r *Registry) Register(rule Rule) bool {
	if rule.ID == "" || len(rule.ProductTypes) == 0 || rule.Callback == nil {
		logrus.WithFields(logrus.Fields{
			"rule":  rule.ID,
			"types": rule.ProductTypes,
		}).Warn("Rejected malformed validation rule")
		return false
	}

	replaced := false
	for i := range r.rules {
		if r.rules[i].ID == rule.ID {
			r.rules[i] = rule
			replaced = true
			break
		}
	}
	if !replaced {
		r.rules = append(r.rules, rule)
	}

	sort.SliceStable(r.rules, func(i, j int) bool {
		return r.rules[i].Priority < r.rules[j].Priority
	})
	return true
}

func (r *Registry) Unregister(id string) bool {
	for i := range r.rules {
		if r.rules[i].ID == id {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) AddFilter(filter ResultFilter) {
	if filter != nil {
		r.filters = append(r.filters, filter)
	}
}

// Rules returns every registered rule in evaluation order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

func (r *Registry) RulesFor(productType models.ProductType) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if rule.AppliesTo(productType) {
			out = append(out, rule)
		}
	}
	return out
}

// Validate runs every rule registered for the product's type in priority
// order and combines the outcomes.
func (r *Registry) Validate(p *models.Product) Result {
	if p == nil || p.Type == "" {
		return Result{IsValid: false, Errors: []Entry{Message("Invalid product")}}
	}

	result := Result{IsValid: true, Errors: []Entry{}}
	for _, rule := range r.RulesFor(p.Type) {
		outcome := rule.Callback(p, rule.ID)
		if outcome == nil {
			continue
		}
		if !outcome.IsValid {
			result.IsValid = false
		}
		for _, entry := range outcome.Errors {
			if entry.RuleID == "" {
				entry.RuleID = rule.ID
			}
			result.Errors = append(result.Errors, entry)
		}
	}

	for _, filter := range r.filters {
		result = filter(p, result)
	}
	return result
}

func (r *Registry) IsValidForLinks(p *models.Product) bool {
	return r.Validate(p).IsValid
}

func (r *Registry) GetValidationErrors(p *models.Product) []Entry {
	return r.Validate(p).Errors
}
