package router

import (
	"fmt"
	"strings"

	"github.com/techgear-vn/techgear-api/internal/cache"
	"github.com/techgear-vn/techgear-api/internal/config"
	adminhandlers "github.com/techgear-vn/techgear-api/internal/http/handlers/admin"
	publichandlers "github.com/techgear-vn/techgear-api/internal/http/handlers/public"
	"github.com/techgear-vn/techgear-api/internal/logger"
	"github.com/techgear-vn/techgear-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with every route and middleware.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "tg"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "Too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		// Storefront catalog, no session required.
		api.GET("/products", publicHandler.ListProducts)
		api.GET("/products/search", publicHandler.SearchProducts)
		api.GET("/products/top-rated", publicHandler.TopRatedProducts)
		api.GET("/products/:id", publicHandler.GetProduct)
		api.GET("/products/:id/reviews", publicHandler.ListProductReviews)
		api.GET("/products/slug/:slug", publicHandler.GetProductBySlug)
		api.GET("/brands", publicHandler.ListBrands)
		api.GET("/brands/:slug", publicHandler.GetBrand)
		api.GET("/brands/:slug/products", publicHandler.BrandProducts)
		api.GET("/categories", publicHandler.ListCategories)
		api.GET("/categories/:slug", publicHandler.GetCategory)
		api.GET("/categories/:slug/products", publicHandler.CategoryProducts)
		api.GET("/captcha", publicHandler.GetCaptcha)

		auth := api.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/verify-email", publicHandler.VerifyEmail)
			auth.POST("/forgot-password", publicHandler.ForgotPassword)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		// Session-scoped storefront routes.
		user := api.Group("")
		user.Use(JWTAuthMiddleware(cfg.JWT.SecretKey))
		{
			user.GET("/me", publicHandler.Me)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart", publicHandler.SyncCart)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)

			user.POST("/checkout", publicHandler.CreateCheckoutSession)

			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.PUT("/orders/:id/cancel", publicHandler.CancelOrder)

			user.POST("/products/:id/reviews", publicHandler.CreateReview)
			user.PUT("/products/:id/reviews/:review_id", publicHandler.UpdateReview)
			user.DELETE("/products/:id/reviews/:review_id", publicHandler.DeleteReview)
		}

		// Back office, session plus policy check.
		admin := api.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey), AdminRBACMiddleware(c.AuthzService))
		{
			admin.GET("/dashboard/stats", adminHandler.DashboardStats)

			admin.GET("/brands", adminHandler.ListBrands)
			admin.POST("/brands", adminHandler.CreateBrand)
			admin.PUT("/brands/:id", adminHandler.UpdateBrand)
			admin.DELETE("/brands/:id", adminHandler.DeleteBrand)

			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/products", adminHandler.ListProducts)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/export", adminHandler.ExportOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id", adminHandler.UpdateOrderStatus)
			admin.POST("/orders/cleanup", adminHandler.CleanupOrders)

			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id/role", adminHandler.SetUserRole)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
