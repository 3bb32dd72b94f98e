package config

import (
	"encoding/json"
	"fmt"
	"os"

	"wfxshop/internal/models"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	Create   bool
	Migrate  bool
}

// DSN returns the pool connection string, preferring the full DATABASE_URL
// when one is set.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// MaintenanceDSN points at the server's postgres database. Used only by
// the create-on-missing boot step, which cannot connect to a database
// that does not exist yet.
func (d DatabaseConfig) MaintenanceDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/postgres?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.SSLMode)
}

type AssetsConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	LocalDir  string
}

// Enabled reports whether object storage is configured. Without an
// endpoint the shop serves images straight from the local static dir.
func (a AssetsConfig) Enabled() bool {
	return a.Endpoint != ""
}

type LoggerConfig struct {
	Mode string
	File string
}

type CheckoutConfig struct {
	// TrustClientPrice preserves the legacy checkout that priced order
	// items from the submitted payload instead of the catalog.
	TrustClientPrice bool
}

type Config struct {
	Port     int
	Logger   LoggerConfig
	Database DatabaseConfig
	Assets   AssetsConfig
	Checkout CheckoutConfig
	Seed     []models.ProductSeed
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: cast.ToInt(getenv("PORT", "8080")),
		Logger: LoggerConfig{
			Mode: getenv("LOG_MODE", "dev"),
			File: getenv("LOG_FILE", ""),
		},
		Database: DatabaseConfig{
			URL:      getenv("DATABASE_URL", ""),
			Host:     getenv("DB_HOST", "localhost"),
			Port:     cast.ToInt(getenv("DB_PORT", "5432")),
			User:     getenv("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD", "postgres"),
			Name:     getenv("DB_NAME", "wfxshop"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
			Create:   cast.ToBool(getenv("DB_CREATE", "false")),
			Migrate:  cast.ToBool(getenv("DB_MIGRATE", "true")),
		},
		Assets: AssetsConfig{
			Endpoint:  getenv("MINIO_ENDPOINT", ""),
			AccessKey: getenv("MINIO_ACCESS_KEY", ""),
			SecretKey: getenv("MINIO_SECRET_KEY", ""),
			Bucket:    getenv("MINIO_BUCKET", "wfx-assets"),
			Region:    getenv("MINIO_REGION", ""),
			UseSSL:    cast.ToBool(getenv("MINIO_USE_SSL", "false")),
			LocalDir:  getenv("STATIC_DIR", "static"),
		},
		Checkout: CheckoutConfig{
			TrustClientPrice: cast.ToBool(getenv("CHECKOUT_TRUST_CLIENT_PRICE", "false")),
		},
	}

	if raw := getenv("PRODUCT_SEED_JSON", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.Seed); err != nil {
			return nil, fmt.Errorf("parse PRODUCT_SEED_JSON: %w", err)
		}
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
