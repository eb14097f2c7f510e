package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/logger"
	"storefront-api/internal/repository"
	"storefront-api/internal/server"
	"storefront-api/internal/service"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Init(cfg.Log, cfg.Environment, cfg.Metrics.Service)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	db, err := client.OpenDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	if err := client.Migrate(db); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)

	services := server.Services{
		Customer: service.NewCustomerService(db, customerRepo, orderRepo),
		Catalog:  service.NewCatalogService(db, categoryRepo, productRepo, orderRepo),
		Order:    service.NewOrderService(db, orderRepo, customerRepo, productRepo),
		Payment:  service.NewPaymentService(db, paymentRepo, orderRepo),
		Shipment: service.NewShipmentService(db, shipmentRepo, orderRepo, nil),
	}

	if cfg.Database.SeedCatalog {
		ctx := logger.WithContext(context.Background(), log)
		if err := services.Catalog.SeedCatalog(ctx); err != nil {
			log.Fatal("seed catalog", zap.Error(err))
		}
	}

	serverAddr := cfg.HTTP.Address()

	// Init HTTP server
	srv := server.NewServer(log, cfg.Metrics, services)

	log.Info("Starting HTTP server", zap.String("address", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
