package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Firebase FirebaseConfig
	Sampler  SamplerConfig
	Pricing  PricingConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DatabaseConfig holds the optional Postgres connection used for the
// long-range metrics archive. When Host is empty the archive is disabled.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type FirebaseConfig struct {
	CredentialsPath string
}

type SamplerConfig struct {
	IntervalSeconds int
}

// PricingConfig holds the default cost rates (USD per month) and the
// optional AWS Pricing API refresh settings.
type PricingConfig struct {
	InstanceRate      float64
	CPUCoreRate       float64
	MemoryGBRate      float64
	StorageGBRate     float64
	AWSRefreshEnabled bool
	AWSRegion         string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "cloudsim"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Sampler: SamplerConfig{
			IntervalSeconds: getEnvAsInt("SAMPLER_INTERVAL_SECONDS", 5),
		},
		Pricing: PricingConfig{
			InstanceRate:      getEnvAsFloat("PRICING_INSTANCE_RATE", 15.50),
			CPUCoreRate:       getEnvAsFloat("PRICING_CPU_CORE_RATE", 8.00),
			MemoryGBRate:      getEnvAsFloat("PRICING_MEMORY_GB_RATE", 4.00),
			StorageGBRate:     getEnvAsFloat("PRICING_STORAGE_GB_RATE", 0.10),
			AWSRefreshEnabled: getEnvAsBool("PRICING_AWS_REFRESH", false),
			AWSRegion:         getEnv("PRICING_AWS_REGION", "us-east-1"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.Sampler.IntervalSeconds < 1 {
		return fmt.Errorf("SAMPLER_INTERVAL_SECONDS must be at least 1")
	}

	return nil
}

// ArchiveEnabled reports whether the Postgres metrics archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.Database.Host != ""
}

// DSN builds the Postgres connection string for the metrics archive.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}
