package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout-service/config"
	_ "checkout-service/docs"
	"checkout-service/internal/authz"
	"checkout-service/internal/cache"
	"checkout-service/internal/cleanup"
	"checkout-service/internal/database"
	"checkout-service/internal/handlers"
	"checkout-service/internal/logger"
	"checkout-service/internal/metrics"
	"checkout-service/internal/notifier"
	"checkout-service/internal/ordernum"
	"checkout-service/internal/repository"
	"checkout-service/internal/router"
	"checkout-service/internal/service"
	"checkout-service/internal/token"
	gtransport "checkout-service/internal/transport/grpc"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @Title Checkout API
// @Version 1.0
// @Description Каталог, корзина, оформление заказов и возвраты
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	var (
		productCache service.ProductCache
		idempotency  handlers.IdempotencyStore
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL(), log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		productCache = redisClient
		idempotency = redisClient
		log.Info("Redis cache enabled")
	} else {
		log.Info("Redis cache disabled")
	}

	var orderNotifier service.Notifier = notifier.NopNotifier{Log: log}
	if len(cfg.Kafka.Brokers) > 0 {
		kn := notifier.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.TopicEmail, log)
		defer kn.Close()
		orderNotifier = kn
		log.Info("Kafka notifier enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		log.Warn("KAFKA_BROKERS not set, order confirmations are only logged")
	}

	enforcer, err := authz.New()
	if err != nil {
		log.Fatal("failed to load authorization policy", zap.Error(err))
	}

	m := metrics.New()

	catalogSvc := service.NewCatalogService(repos, productCache, enforcer, log)
	cartSvc := service.NewCartService(repos, log)
	checkoutSvc := service.NewCheckoutService(service.CheckoutDeps{
		Repo:     repos,
		Numbers:  ordernum.New(),
		Notifier: orderNotifier,
		Cache:    productCache,
		Observer: m,
		Log:      log,
	}, service.CheckoutOptions{
		Timeout:        cfg.Checkout.Timeout,
		Currency:       cfg.Checkout.DefaultCurrency,
		DefaultCountry: cfg.Checkout.DefaultCountry,
	})
	orderSvc := service.NewOrderService(repos, productCache, enforcer, log)
	refundSvc := service.NewRefundService(repos, enforcer, log)

	cleanupSvc := cleanup.NewCleanupService(repos.CartItems, cfg.Cleanup.CartAbandonAfter, log)
	scheduler := cleanup.NewScheduler(cleanupSvc, cfg.Cleanup.Interval, log)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	scheduler.Start(cleanupCtx)

	r := router.Router(router.Deps{
		Catalog:        catalogSvc,
		Cart:           cartSvc,
		Checkout:       checkoutSvc,
		Orders:         orderSvc,
		Refunds:        refundSvc,
		Tokens:         token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience),
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.Checkout.IdempotencyTTL,
		Metrics:        m,
		Health: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}, log)

	httpSrv := &http.Server{
		Addr:              cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatal("failed to listen", zap.Error(err))
	}
	grpcSrv := gtransport.NewServer(log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := grpcSrv.Serve(lis); err != nil {
			log.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to run http server", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down checkout service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	grpcSrv.SetServing(false)

	// Останавливаем планировщик
	scheduler.Stop()
	cleanupCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	grpcSrv.Shutdown(shutdownCtx)
	log.Info("Checkout service stopped gracefully")
}
