// internal/products/setup.go
package products

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/cartlink/internal/config"
	"github.com/javajoker/cartlink/internal/linkbuilder"
	"github.com/javajoker/cartlink/internal/models"
	"github.com/javajoker/cartlink/internal/validation"
)

// addonHooks maps addon product types to the hook registering their handler.
var addonHooks = map[models.ProductType]RegistrationHook{
	models.ProductTypeBundle: RegisterBundleHandler,
}

// NewStoreManager builds an initialized manager and the link builder it
// shares with its handlers, configured for one shop.
func NewStoreManager(store config.StoreConfig) (*Manager, *linkbuilder.Builder) {
	registry := validation.NewRegistry()
	registry.InitializeDefaults()

	prices := NewPriceFormatter(store.CurrencySymbol, CurrencyPosition(store.CurrencyPosition), store.PriceDecimals, store.PriceLocale)
	builder := linkbuilder.New(store.OriginURL, store.AdminURL)

	var hooks []RegistrationHook
	for _, addon := range store.AddonTypes {
		t := models.ProductType(strings.ToLower(strings.TrimSpace(addon)))
		hook, ok := addonHooks[t]
		if !ok {
			logrus.WithField("type", t).Warn("No handler available for addon product type")
			continue
		}
		hooks = append(hooks, hook)
	}

	manager := NewManager(Dependencies{
		Registry:      registry,
		Prices:        prices,
		Links:         builder,
		Subscriptions: NewMetaSubscriptionProvider(prices),
	}, hooks...)
	manager.InitializeDefaults()

	return manager, builder
}
