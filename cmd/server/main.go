package main

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"primaland/server/config"
	"primaland/server/internal/api"
	"primaland/server/internal/catalog"
	"primaland/server/internal/database"
	"primaland/server/internal/imaging"
	"primaland/server/internal/settings"
	"primaland/server/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Make sure the database directory exists before sqlite opens the file
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", cfg.Database.Path)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Warm the in-memory listing catalog before serving traffic
	listingCatalog := catalog.NewCatalog(db, logger)
	if err := listingCatalog.Refresh(); err != nil {
		logger.WithError(err).Error("Initial catalog load failed, public search degraded until retry")
	}

	refresher := catalog.NewRefresher(listingCatalog, cfg.Server.CatalogRefreshInterval, logger)
	refresher.Start()
	defer refresher.Stop()

	settingsManager := settings.NewManager(db, logger)
	if err := settingsManager.Load(); err != nil {
		logger.WithError(err).Error("Failed to load site settings, serving defaults")
	}

	objectStore, err := storage.NewObjectStore(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize object storage")
	}

	pipeline := imaging.NewPipeline(logger, cfg.Imaging.WatermarkPath)

	handler := api.NewHandler(db, listingCatalog, pipeline, objectStore, settingsManager, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.Imaging.MaxUploadBytes

	api.SetupRoutes(router, handler, cfg)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
