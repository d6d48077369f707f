package main

import (
	"flag"

	"github.com/estatecms/backend/internal/infrastructure/config"
	"github.com/estatecms/backend/internal/infrastructure/logger"
	"github.com/estatecms/backend/internal/infrastructure/persistence"
	"github.com/estatecms/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Running schema migration")
	if err := db.DB.AutoMigrate(
		&models.ProviderModel{},
		&models.ContactPersonModel{},
		&models.RealEstateModel{},
		&models.AssetModel{},
		&models.InterfaceModel{},
		&models.InterfaceMappingModel{},
		&models.SyncHistoryModel{},
	); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Schema migration complete")
}
