package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/judgeme"
	"storefront/internal/messaging"
	contactrepo "storefront/internal/repository/contact"
	accountsvc "storefront/internal/service/account"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	contactsvc "storefront/internal/service/contact"
	reviewsvc "storefront/internal/service/reviews"
	"storefront/internal/shopify"
	"storefront/internal/telemetry"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	shutdownTracing, err := telemetry.InitTracerProvider(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatalf("init tracing: %v", err)
	}
	metricsHandler, shutdownMetrics, err := telemetry.InitMeterProvider(cfg.ServiceName)
	if err != nil {
		logger.Fatalf("init metrics: %v", err)
	}

	dbpool, err := db.Connect(ctx, cfg.DBConnString, db.WithMaxConns(cfg.DBMaxConns))
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	rdb := cache.NewClient(cfg.RedisAddr)
	defer rdb.Close()
	store := cache.NewStore(rdb)

	cartEvents := messaging.NewProducer(cfg.KafkaBrokers, cfg.CartEventsTopic, logger, messaging.WithAsync())
	defer cartEvents.Close()
	contactEvents := messaging.NewProducer(cfg.KafkaBrokers, cfg.ContactTopic, logger)
	defer contactEvents.Close()

	storefront := shopify.New(shopify.Config{
		StoreDomain: cfg.ShopifyStoreDomain,
		AccessToken: cfg.ShopifyToken,
		APIVersion:  cfg.ShopifyAPIVersion,
		Timeout:     cfg.ShopifyTimeout,
	}, logger)
	reviewsClient := judgeme.New(judgeme.Config{
		BaseURL:    cfg.JudgeMeBaseURL,
		APIToken:   cfg.JudgeMeToken,
		ShopDomain: cfg.ShopifyStoreDomain,
	}, logger)

	contactRepo := contactrepo.NewPostgres(dbpool, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		CartSvc:        cartsvc.New(storefront, cartEvents, logger),
		CatalogSvc:     catalogsvc.New(storefront, store, logger),
		AccountSvc:     accountsvc.New(storefront),
		ContactSvc:     contactsvc.New(contactRepo, contactEvents, logger),
		ReviewSvc:      reviewsvc.New(reviewsClient, store, logger),
		DB:             dbpool,
		Cache:          store,
		Metrics:        metricsHandler,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		CookieSecure:   cfg.CookieSecure,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
	if err := shutdownMetrics(ctx); err != nil {
		logger.Printf("shutdown metrics: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Printf("shutdown tracing: %v", err)
	}
}
