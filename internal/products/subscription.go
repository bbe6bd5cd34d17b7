// internal/products/subscription.go
package products

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/javajoker/cartlink/internal/models"
)

// SubscriptionProvider supplies the billing schedule of a subscription
// product. A nil result means the product carries none.
type SubscriptionProvider interface {
	GetSubscriptionData(p *models.Product) *models.SubscriptionData
}

// SubscriptionHandler normalizes simple subscriptions. Variable subscriptions
// go through NewVariableSubscriptionHandler.
type SubscriptionHandler struct {
	baseHandler
}

func NewSubscriptionHandler(deps Dependencies) *SubscriptionHandler {
	return &SubscriptionHandler{baseHandler: newBaseHandler(models.ProductTypeSubscription, deps)}
}

func (h *SubscriptionHandler) GetProductData(p *models.Product) models.ProductRecord {
	if !h.CanHandle(p) {
		return models.ProductRecord{}
	}

	rec := h.record(p)
	rec.Subscription = &models.SubscriptionData{}
	if h.deps.Subscriptions != nil {
		if data := h.deps.Subscriptions.GetSubscriptionData(p); data != nil {
			rec.Subscription = data
		}
	}
	return rec
}

func (h *SubscriptionHandler) GetSearchResults(p *models.Product) []models.ProductRecord {
	if !h.CanHandle(p) {
		return []models.ProductRecord{}
	}
	return []models.ProductRecord{h.GetProductData(p)}
}

// MetaSubscriptionProvider reads the schedule stored in the product's
// subscription column. Recognized keys: period, interval, length,
// trial_length, trial_period, sign_up_fee.
type MetaSubscriptionProvider struct {
	prices *PriceFormatter
}

func NewMetaSubscriptionProvider(prices *PriceFormatter) *MetaSubscriptionProvider {
	if prices == nil {
		prices = DefaultPriceFormatter()
	}
	return &MetaSubscriptionProvider{prices: prices}
}

func (m *MetaSubscriptionProvider) GetSubscriptionData(p *models.Product) *models.SubscriptionData {
	if p == nil || len(p.Subscription) == 0 {
		return nil
	}

	data := &models.SubscriptionData{
		Period:      metaString(p.Subscription, "period"),
		Interval:    metaInt(p.Subscription, "interval"),
		Length:      metaInt(p.Subscription, "length"),
		TrialLength: metaInt(p.Subscription, "trial_length"),
		TrialPeriod: metaString(p.Subscription, "trial_period"),
		SignUpFee:   metaFloat(p.Subscription, "sign_up_fee"),
	}
	if data.Period == "" {
		return nil
	}
	if data.Interval < 1 {
		data.Interval = 1
	}
	if data.TrialPeriod == "" {
		data.TrialPeriod = data.Period
	}

	data.PriceString = m.PriceString(p.ActivePrice(), data)
	return data
}

// PriceString renders e.g. "$9.99 every 2 months for 12 months with a 1 week
// free trial and a $5.00 sign-up fee".
func (m *MetaSubscriptionProvider) PriceString(price float64, data *models.SubscriptionData) string {
	var b strings.Builder
	b.WriteString(m.prices.Format(price))

	if data.Interval > 1 {
		fmt.Fprintf(&b, " every %d %s", data.Interval, plural(data.Period, data.Interval))
	} else {
		b.WriteString(" / " + data.Period)
	}

	if data.Length > 0 {
		fmt.Fprintf(&b, " for %d %s", data.Length, plural(data.Period, data.Length))
	}

	hasTrial := data.TrialLength > 0
	if hasTrial {
		fmt.Fprintf(&b, " with a %d %s free trial", data.TrialLength, data.TrialPeriod)
	}

	if data.SignUpFee > 0 {
		if hasTrial {
			b.WriteString(" and")
		} else {
			b.WriteString(" with")
		}
		fmt.Fprintf(&b, " a %s sign-up fee", m.prices.Format(data.SignUpFee))
	}

	return b.String()
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

func metaString(meta models.JSONB, key string) string {
	switch v := meta[key].(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	default:
		return ""
	}
}

func metaFloat(meta models.JSONB, key string) float64 {
	switch v := meta[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func metaInt(meta models.JSONB, key string) int {
	return int(metaFloat(meta, key))
}
