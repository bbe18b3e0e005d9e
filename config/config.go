package config

import (
	"fmt"
	"log"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBType           string `envconfig:"DB_TYPE" default:"mongo"`
	PostgresURL      string `envconfig:"POSTGRES_URL"`
	PostgresMaxConns int    `envconfig:"POSTGRES_MAX_CONNS" default:"5"`
	MongoURL         string `envconfig:"MONGO_URL" default:"mongodb://localhost:27017"`
	MongoDatabase    string `envconfig:"MONGO_DATABASE" default:"hariomtransport"`
	RedisAddr        string `envconfig:"REDIS_ADDR"`
	RedisPrefix      string `envconfig:"REDIS_PREFIX" default:"lr:"`
	Port             string `envconfig:"PORT" default:"8080"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`
	Timezone       string `envconfig:"TIMEZONE" default:"Asia/Kolkata"`

	PDFEngine    string `envconfig:"PDF_ENGINE" default:"chromedp"`
	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000"`
	PDFSavePath  string `envconfig:"PDF_SAVE_PATH" default:"./pdfs"`
	PDFRateLimit int    `envconfig:"RATE_LIMIT_PDF" default:"20"`

	R2 R2Config
}

type R2Config struct {
	Bucket          string `envconfig:"R2_BUCKET"`
	AccountID       string `envconfig:"R2_ACCOUNT_ID"`
	PublicURL       string `envconfig:"R2_PUBLIC_URL"`
	AccessKeyID     string `envconfig:"R2_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"R2_SECRET_ACCESS_KEY"`
}

// Enabled reports whether uploads are configured; otherwise PDFs stay local.
func (c R2Config) Enabled() bool {
	return c.Bucket != "" && c.AccountID != "" && c.PublicURL != ""
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	switch cfg.DBType {
	case "mongo", "postgres", "memory":
	default:
		return nil, fmt.Errorf("DB_TYPE %q not supported", cfg.DBType)
	}
	if cfg.DBType == "postgres" && cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_URL must be set when DB_TYPE=postgres")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
