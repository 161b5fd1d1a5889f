package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// HTTP server configuration
	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5250"`

		// Origins allowed by the CORS middleware, comma separated
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

		// How often the in-memory listing catalog re-fetches from the store
		CatalogRefreshInterval time.Duration `env:"CATALOG_REFRESH_INTERVAL" envDefault:"5m"`
	}

	// Database configuration
	Database struct {
		// Path to the sqlite database file
		Path string `env:"DATABASE_PATH" envDefault:"database/primaland.db"`
	}

	// Object storage (S3-compatible) for processed listing photos
	Storage struct {
		Endpoint  string `env:"STORAGE_ENDPOINT"`
		Region    string `env:"STORAGE_REGION" envDefault:"us-east-1"`
		Bucket    string `env:"STORAGE_BUCKET" envDefault:"listing-photos"`
		AccessKey string `env:"STORAGE_ACCESS_KEY"`
		SecretKey string `env:"STORAGE_SECRET_KEY"`

		// Folder prefix for uploaded photos inside the bucket
		Folder string `env:"STORAGE_FOLDER" envDefault:"properties"`
	}

	// Image pipeline configuration
	Imaging struct {
		// Path to the watermark overlay; compositing is skipped if it
		// cannot be loaded
		WatermarkPath string `env:"WATERMARK_PATH" envDefault:"assets/watermark.png"`

		// Maximum size of a single uploaded photo in bytes
		MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
