package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Object storage (MinIO or any S3-compatible endpoint)
	StorageEndpoint  string `envconfig:"STORAGE_ENDPOINT" required:"true"`
	StorageAccessKey string `envconfig:"STORAGE_ACCESS_KEY" required:"true"`
	StorageSecretKey string `envconfig:"STORAGE_SECRET_KEY" required:"true"`
	StorageBucket    string `envconfig:"STORAGE_BUCKET" required:"true"`
	StorageRegion    string `envconfig:"STORAGE_REGION" default:"us-east-1"`

	// Face provider
	ProviderType string `envconfig:"PROVIDER_TYPE" default:"facebox"`
	FaceboxURL   string `envconfig:"FACEBOX_URL" default:"http://localhost:8000"`

	// Indexing
	PhotoDir  string `envconfig:"PHOTO_DIR" default:"data"`
	IndexPath string `envconfig:"INDEX_PATH" default:"indexed_data.json"`

	// Matching
	MatchThreshold  float64 `envconfig:"MATCH_THRESHOLD" default:"0.5"`
	SelfieThreshold float64 `envconfig:"SELFIE_THRESHOLD" default:"0.6"`
}

func Load() (*Config, error) {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
