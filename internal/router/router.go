package router

import (
	"context"
	"net/http"
	"time"

	"checkout-service/internal/dto"
	"checkout-service/internal/handlers"
	"checkout-service/internal/metrics"
	"checkout-service/internal/middleware"
	"checkout-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Deps struct {
	Catalog  service.CatalogService
	Cart     service.CartService
	Checkout service.CheckoutService
	Orders   service.OrderService
	Refunds  service.RefundService

	Tokens middleware.TokenVerifier
	// Idempotency может быть nil: тогда Idempotency-Key игнорируется.
	Idempotency    handlers.IdempotencyStore
	IdempotencyTTL time.Duration
	Metrics        *metrics.Metrics
	// Health проверяет зависимости (БД); nil означает "всегда ok".
	Health func(ctx context.Context) error
}

func Router(d Deps, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	var obs middleware.RequestObserver
	if d.Metrics != nil {
		obs = d.Metrics
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	r.Use(middleware.Observe(obs, log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", handlers.HeaderIdempotencyKey},
		ExposeHeaders:    []string{"Content-Length", "Retry-After", handlers.HeaderReplayed},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		if d.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := d.Health(ctx); err != nil {
				log.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, dto.NewUnavailableError("dependency unavailable"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	catalogHandler := handlers.NewCatalogHandler(d.Catalog, log)
	cartHandler := handlers.NewCartHandler(d.Cart, log)
	orderHandler := handlers.NewOrderHandler(d.Checkout, d.Orders, d.Idempotency, d.IdempotencyTTL, log)
	refundHandler := handlers.NewRefundHandler(d.Refunds, log)

	api := r.Group("/api/v1")

	public := api.Group("", middleware.OptionalAuth(d.Tokens, log))
	public.GET("/categories", catalogHandler.ListCategories)
	public.GET("/products", catalogHandler.ListProducts)
	public.GET("/products/:id", catalogHandler.GetProduct)

	auth := api.Group("", middleware.AuthRequired(d.Tokens, log))

	// Каталог: права проверяет сервис (casbin)
	auth.POST("/categories", catalogHandler.CreateCategory)
	auth.POST("/products", catalogHandler.CreateProduct)
	auth.PATCH("/products/:id", catalogHandler.UpdateProduct)
	auth.DELETE("/products/:id", catalogHandler.DeleteProduct)
	auth.POST("/products/:id/restock", catalogHandler.Restock)

	auth.GET("/cart", cartHandler.GetCart)
	auth.DELETE("/cart", cartHandler.ClearCart)
	auth.POST("/cart/items", cartHandler.AddItem)
	auth.PATCH("/cart/items/:id", cartHandler.UpdateItem)
	auth.DELETE("/cart/items/:id", cartHandler.RemoveItem)

	auth.POST("/orders", orderHandler.PlaceOrder)
	auth.GET("/orders", orderHandler.ListOrders)
	auth.GET("/orders/by-number/:number", orderHandler.GetOrderByNumber)
	auth.GET("/orders/:id", orderHandler.GetOrder)
	auth.POST("/orders/:id/refunds", refundHandler.RequestRefund)
	auth.GET("/orders/:id/refunds", refundHandler.ListRefunds)

	admin := auth.Group("/admin")
	admin.POST("/orders/cancel", orderHandler.BulkCancel)
	admin.POST("/orders/:id/pay", orderHandler.MarkPaid)
	admin.POST("/orders/:id/status", orderHandler.AdvanceStatus)
	admin.POST("/orders/:id/recalculate", orderHandler.RecalculateTotals)
	admin.POST("/refunds/:id/processing", refundHandler.MarkProcessing)
	admin.POST("/refunds/:id/complete", refundHandler.Complete)
	admin.POST("/refunds/:id/fail", refundHandler.Fail)

	return r
}
