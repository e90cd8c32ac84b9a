package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"menvy/internal/catalog"
	"menvy/internal/commons"
	appconfig "menvy/internal/config"
	"menvy/internal/docnum"
	"menvy/internal/infrastructure/logger"
	"menvy/internal/infrastructure/metrics"
	"menvy/internal/infrastructure/mysql"
	"menvy/internal/purchases"
	"menvy/internal/sales"
	"menvy/internal/server"
	"menvy/internal/settings"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	metrics.MustRegister()

	numbers := docnum.NewGenerator()

	catalogCtrl := catalog.NewModule(db, zapLogger)
	salesCtrl := sales.NewModule(db, numbers, cfg, zapLogger)
	purchasesCtrl := purchases.NewModule(db, numbers, cfg, zapLogger)
	settingsCtrl := settings.NewModule(db, zapLogger)

	router := server.NewRouter(catalogCtrl, salesCtrl, purchasesCtrl, settingsCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func loadConfig() (*appconfig.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return appconfig.Load()
}
