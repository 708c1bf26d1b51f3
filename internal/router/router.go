// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xpbeats/xpbeats-backend/internal/config"
	"github.com/xpbeats/xpbeats-backend/internal/handlers"
	"github.com/xpbeats/xpbeats-backend/internal/middleware"
	"github.com/xpbeats/xpbeats-backend/internal/services"
	"github.com/xpbeats/xpbeats-backend/internal/utils"
)

// Initialize wires services, handlers and middleware onto a gin engine.
func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	checkout := services.NewStripeCheckout(cfg)

	catalogService := services.NewCatalogService(db)
	orderService := services.NewOrderService(db, checkout, storageService)
	newsletterService := services.NewNewsletterService(db)
	adminService := services.NewAdminService(db)
	authService := services.NewAuthService(db, cfg)

	catalogHandler := handlers.NewCatalogHandler(catalogService, storageService)
	checkoutHandler := handlers.NewCheckoutHandler(orderService)
	webhookHandler := handlers.NewWebhookHandler(orderService, cfg)
	orderHandler := handlers.NewOrderHandler(orderService)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(catalogService, adminService, newsletterService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.Use(middleware.GeneralRateLimit())
	{
		// Public catalog and storefront endpoints
		v1.GET("/beats", catalogHandler.ListBeats)
		v1.GET("/beats/:id", catalogHandler.GetBeat)
		v1.POST("/beats/:id/play", catalogHandler.IncrementPlay)
		v1.POST("/beats/:id/download-free", middleware.DownloadRateLimit(), catalogHandler.FreeDownload)

		v1.POST("/newsletter/subscribe", newsletterHandler.Subscribe)
		v1.POST("/newsletter/unsubscribe", newsletterHandler.Unsubscribe)

		// Payment provider callbacks: signature-verified, never authed
		v1.POST("/webhooks/stripe", webhookHandler.HandleStripe)

		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Authenticated customer endpoints
		authed := v1.Group("")
		authed.Use(middleware.AuthRequired())
		{
			authed.GET("/auth/me", authHandler.Me)
			authed.POST("/checkout/session", checkoutHandler.CreateSession)
			authed.GET("/orders", orderHandler.GetMyOrders)
		}

		// Admin endpoints
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.POST("/beats", adminHandler.CreateBeat)
			admin.PUT("/beats/:id", adminHandler.UpdateBeat)
			admin.DELETE("/beats/:id", adminHandler.DeleteBeat)
			admin.GET("/dashboard/stats", adminHandler.DashboardStats)
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/subscribers", adminHandler.ListSubscribers)
		}
	}

	return r, nil
}
