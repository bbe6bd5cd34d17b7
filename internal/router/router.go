// internal/router/router.go
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/javajoker/cartlink/internal/catalog"
	"github.com/javajoker/cartlink/internal/config"
	"github.com/javajoker/cartlink/internal/handlers"
	"github.com/javajoker/cartlink/internal/middleware"
	"github.com/javajoker/cartlink/internal/products"
	"github.com/javajoker/cartlink/internal/services"
	"github.com/javajoker/cartlink/internal/utils"
)

const version = "1.0.0"

// Services are the collaborators the route table is built from.
type Services struct {
	Auth     *services.AuthService
	Products *services.ProductService
	Links    *services.LinkService
	Search   *services.SearchService
}

// NewServices wires the product handler stack for the configured shop on top
// of the catalog and user store.
func NewServices(cfg *config.Config, cat catalog.Catalog, users services.UserRepository) *Services {
	manager, builder := products.NewStoreManager(cfg.Store)

	return &Services{
		Auth:     services.NewAuthService(users, cfg),
		Products: services.NewProductService(cat, manager),
		Links:    services.NewLinkService(cat, cat, manager, builder),
		Search:   services.NewSearchService(cat, cat),
	}
}

// Initialize builds the route table. The rate limiter sweeps stop when ctx is
// done.
func Initialize(ctx context.Context, cfg *config.Config, svc *Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Auth)
	productHandler := handlers.NewProductHandler(svc.Products)
	linkHandler := handlers.NewLinkHandler(svc.Links)
	searchHandler := handlers.NewSearchHandler(svc.Search)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	generalLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	loginLimiter := middleware.NewLoginRateLimiter()
	go generalLimiter.Cleanup(time.Minute, ctx.Done())
	go loginLimiter.Cleanup(time.Minute, ctx.Done())

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logrus.StandardLogger()))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(generalLimiter.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	})

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthRequired(), middleware.LinkManagerRequired())
		{
			productRoutes := protected.Group("/products")
			{
				productRoutes.GET("/search", productHandler.SearchProducts)
				productRoutes.GET("/:id", productHandler.GetProduct)
				productRoutes.GET("/:id/variations", productHandler.GetVariations)
				productRoutes.POST("/:id/variations/filter", productHandler.FilterVariations)
				productRoutes.GET("/:id/validation", productHandler.GetValidation)
			}

			protected.GET("/product-types", productHandler.GetProductTypes)
			protected.GET("/coupons/search", searchHandler.SearchCoupons)
			protected.GET("/pages/search", searchHandler.SearchPages)

			links := protected.Group("/links")
			{
				links.POST("", linkHandler.BuildLink)
				links.GET("/preview", linkHandler.PreviewLink)
			}
		}
	}

	return r
}
