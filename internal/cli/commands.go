// internal/cli/commands.go

// Package cli provides linkctl, a cobra CLI that builds store links from a
// catalog fixture or the store database.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/javajoker/cartlink/internal/catalog"
	"github.com/javajoker/cartlink/internal/config"
	"github.com/javajoker/cartlink/internal/database"
	"github.com/javajoker/cartlink/internal/products"
	"github.com/javajoker/cartlink/internal/services"
)

const envPrefix = "CARTLINK"

// App holds the services commands run against.
type App struct {
	Products *services.ProductService
	Links    *services.LinkService
}

// NewApp wires the services for one shop on top of cat.
func NewApp(store config.StoreConfig, cat catalog.Catalog) *App {
	manager, builder := products.NewStoreManager(store)
	return &App{
		Products: services.NewProductService(cat, manager),
		Links:    services.NewLinkService(cat, cat, manager, builder),
	}
}

// NewRootCommand builds the linkctl command tree. When app is nil it is
// wired in PersistentPreRunE from the environment and flags.
func NewRootCommand(app *App) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "linkctl",
		Short:         "Build add-to-cart and checkout links for the store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app != nil {
				return nil
			}

			if file := v.GetString("config"); file != "" {
				v.SetConfigFile(file)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config file: %w", err)
				}
			}

			logrus.SetOutput(cmd.ErrOrStderr())
			config.LogConfig{Level: v.GetString("log-level")}.Apply(logrus.StandardLogger())

			var err error
			app, err = loadApp(v)
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("catalog", "", "catalog fixture file; the database is used when empty")
	flags.String("origin", "", "store origin URL, overrides STORE_ORIGIN_URL")
	flags.String("log-level", "warn", "log level")
	for _, name := range []string{"config", "catalog", "origin", "log-level"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	current := func() *App { return app }
	root.AddCommand(
		newBuildCommand(current),
		newPreviewCommand(current),
		newTypesCommand(current),
		newValidateCommand(current),
		newSearchCommand(current),
	)
	return root
}

// Execute runs linkctl with the process arguments.
func Execute() error {
	return NewRootCommand(nil).Execute()
}

func loadApp(v *viper.Viper) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if origin := v.GetString("origin"); origin != "" {
		cfg.Store.OriginURL = origin
	}

	limits := catalog.Limits{Default: cfg.Store.DefaultSearchLimit, Max: cfg.Store.MaxSearchLimit}

	if path := v.GetString("catalog"); path != "" {
		cat, err := catalog.LoadFile(path, limits)
		if err != nil {
			return nil, err
		}
		logrus.WithField("catalog", path).Debug("Using catalog fixture")
		return NewApp(cfg.Store, cat), nil
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, err
	}
	return NewApp(cfg.Store, catalog.NewGormCatalog(db, limits)), nil
}

// parseItem reads "ID" or "ID:QTY".
func parseItem(s string) (services.LinkItem, error) {
	idPart, qtyPart, hasQty := strings.Cut(strings.TrimSpace(s), ":")

	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || id == 0 {
		return services.LinkItem{}, fmt.Errorf("invalid item %q: expected ID or ID:QTY", s)
	}

	item := services.LinkItem{ProductID: uint(id)}
	if hasQty {
		qty, err := strconv.Atoi(qtyPart)
		if err != nil || qty < 0 {
			return services.LinkItem{}, fmt.Errorf("invalid quantity in item %q", s)
		}
		item.Quantity = qty
	}
	return item, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newBuildCommand(app func() *App) *cobra.Command {
	var (
		linkType string
		items    []string
		coupon   string
		redirect string
		pageID   uint
		pageURL  string
		encoded  bool
		preview  bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "build --item ID[:QTY]...",
		Short: "Build a link for the given products",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &services.BuildLinkRequest{
				LinkType: linkType,
				Coupon:   coupon,
				Redirect: services.RedirectRequest{Type: redirect, PageID: pageID, PageURL: pageURL},
				Preview:  preview,
			}
			if encoded {
				req.Encoding = "encoded"
			}
			for _, raw := range items {
				item, err := parseItem(raw)
				if err != nil {
					return err
				}
				req.Items = append(req.Items, item)
			}

			result, err := app().Links.Build(context.Background(), req)
			if err != nil {
				return err
			}

			if output == "json" {
				return printJSON(cmd.OutOrStdout(), result)
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.URL)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&linkType, "type", "add-to-cart", "link type: add-to-cart|checkout")
	f.StringArrayVar(&items, "item", nil, "product as ID or ID:QTY, repeatable")
	f.StringVar(&coupon, "coupon", "", "coupon code (checkout links)")
	f.StringVar(&redirect, "redirect", "none", "redirect after add-to-cart: none|cart|checkout|product|page")
	f.UintVar(&pageID, "page-id", 0, "page to redirect to")
	f.StringVar(&pageURL, "page-url", "", "page URL to redirect to when no page id is given")
	f.BoolVar(&encoded, "encoded", false, "percent-encode the checkout products list")
	f.BoolVar(&preview, "preview", false, "render placeholders instead of failing on an empty link")
	f.StringVar(&output, "output", "text", "output format: text|json")
	return cmd
}

func newPreviewCommand(app func() *App) *cobra.Command {
	var linkType, redirect string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the placeholder link for a link type",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), app().Links.PreviewTemplate(linkType, redirect))
			return nil
		},
	}
	cmd.Flags().StringVar(&linkType, "type", "add-to-cart", "link type: add-to-cart|checkout")
	cmd.Flags().StringVar(&redirect, "redirect", "none", "redirect type")
	return cmd
}

func newTypesCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered product types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range app().Products.Types() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func newValidateCommand(app func() *App) *cobra.Command {
	var id uint

	cmd := &cobra.Command{
		Use:   "validate --id ID",
		Short: "Show validation errors and warnings for a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return fmt.Errorf("--id required")
			}
			data, err := app().Products.Validation(context.Background(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().UintVar(&id, "id", 0, "product id")
	return cmd
}

func newSearchCommand(app func() *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search products by name, SKU or id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app().Products.Search(context.Background(), args[0], limit)
			if err != nil {
				return err
			}
			for _, r := range records {
				state := "ok"
				if r.Disabled {
					state = "disabled: " + r.DisabledReason
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d | %s | %s | %s | %s\n", r.ID, r.Name, r.Type, r.Price, state)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results, 0 for the default")
	return cmd
}
