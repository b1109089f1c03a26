package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brazcamiseteria/storefront/internal/backend"
	"github.com/brazcamiseteria/storefront/internal/cart"
	"github.com/brazcamiseteria/storefront/internal/catalog"
	"github.com/brazcamiseteria/storefront/internal/checkout"
	"github.com/brazcamiseteria/storefront/internal/config"
	"github.com/brazcamiseteria/storefront/internal/events"
	h "github.com/brazcamiseteria/storefront/internal/http"
	"github.com/brazcamiseteria/storefront/internal/metrics"
	"github.com/brazcamiseteria/storefront/internal/session"
	"github.com/brazcamiseteria/storefront/pkg/circuitbreaker"
	"github.com/brazcamiseteria/storefront/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	m := metrics.New(prometheus.DefaultRegisterer)

	cbCfg := circuitbreaker.DefaultConfig()
	cbCfg.MaxFailures = cfg.Backend.BreakerMaxFailures
	cbCfg.OpenTimeout = cfg.Backend.BreakerOpenTimeout
	backendClient := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, cbCfg, m, zl)

	// Redis backs sessions and the catalog cache when configured
	var (
		sessions session.Store
		cache    catalog.Cache = catalog.NopCache{}
	)
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			zl.Fatal("redis connection failed", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		zl.Info("redis ping succeeded", zap.String("addr", cfg.Redis.Addr))

		sessions = session.NewRedisStore(redisClient, cfg.Session.TTL)
		cache = catalog.NewRedisCache(redisClient)
	} else {
		zl.Warn("REDIS_ADDR not set, using in-memory sessions and no catalog cache")
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Topic, cfg.Kafka.Brokers...)
		zl.Info("publishing order events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer publisher.Close()

	catalogService := catalog.NewService(backendClient, cache, catalog.Options{
		PageTTL:  cfg.Catalog.PageTTL,
		IndexTTL: cfg.Catalog.IndexTTL,
	}, zl)

	carts := cart.NewRegistry(cfg.Cart.IdleTTL, zl)
	carts.Start(cart.DefaultSweepInterval)
	defer carts.Stop()

	submitter := checkout.NewSubmitter(backendClient, publisher, m, zl)
	cookie := h.SessionCookie{TTL: cfg.Session.TTL, Secure: cfg.Session.CookieSecure}

	router := h.NewRouter(h.Handlers{
		Catalog:  h.NewCatalogHandler(catalogService, cfg.Server.RequestTimeout),
		Session:  h.NewSessionHandler(backendClient, sessions, carts, cookie, cfg.Server.RequestTimeout, zl),
		Cart:     h.NewCartHandler(catalogService, carts, cart.NewBuilder(), m, cfg.Server.RequestTimeout, zl),
		Checkout: h.NewCheckoutHandler(submitter, carts, sessions, zl),
		Orders:   h.NewOrdersHandler(backendClient, sessions, cfg.Server.RequestTimeout, zl),
		Metrics:  promhttp.Handler(),
	}, h.RouterConfig{
		RequestTimeout:     cfg.Server.RequestTimeout,
		MaxRequestBodySize: cfg.Server.MaxRequestBodySize,
		Cookie:             cookie,
	}, zl)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("storefront starting", zap.String("port", cfg.Server.Port), zap.String("backend", cfg.Backend.URL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited")
}
