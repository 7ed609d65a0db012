package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	analyticsctrl "barorder/internal/analytics/controller"
	"barorder/internal/auth"
	authctrl "barorder/internal/auth/controller"
	"barorder/internal/cart"
	"barorder/internal/commons"
	"barorder/internal/infrastructure/logger"
	"barorder/internal/infrastructure/mysql"
	"barorder/internal/order"
	"barorder/internal/product"
	"barorder/internal/server"
	tablectrl "barorder/internal/table/controller"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("loading .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := commons.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Auth.JWTSecret == "" || cfg.Auth.AdminPasswordHash == "" {
		zapLogger.Fatal("JWT_SECRET and ADMIN_PASSWORD_HASH must be set")
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if cfg.Database.AutoMigrate {
		if err := mysql.Migrate(context.Background(), db); err != nil {
			zapLogger.Fatal("applying schema", zap.Error(err))
		}
		zapLogger.Info("schema applied")
	}

	productModule := product.NewModule(db, cfg.Ordering.LowStockThreshold, zapLogger)
	orderModule := order.NewModule(db, cfg, zapLogger)
	cartModule := cart.NewModule(productModule.Catalog, orderModule.Checkout, cfg.Ordering, zapLogger)

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := auth.NewService(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash, tokens, zapLogger)

	limiter := server.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)

	router := server.NewRouter(server.Handlers{
		Sessions:    cartModule.Controller,
		Products:    productModule.Controller,
		Fulfillment: orderModule.Controller,
		Feed:        orderModule.Feed,
		Analytics:   analyticsctrl.NewController(orderModule.Fulfillment, zapLogger),
		Login:       authctrl.NewController(authService, zapLogger),
		Tables:      tablectrl.NewController(cfg.Ordering.PublicBaseURL, cfg.Ordering.MaxTableNumber, zapLogger),
	}, tokens, limiter, zapLogger)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	go orderModule.Watcher.Run(ctx)
	go cartModule.Sessions.RunSweeper(ctx, time.Minute, zapLogger)
	go limiter.RunCleanup(ctx, time.Minute, 10*time.Minute)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
