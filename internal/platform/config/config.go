package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backend selectors.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendPgsql = "pgsql"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// StorageBackend selects where the dataset document lives: file, redis
	// or pgsql.
	StorageBackend string
	// DatasetKey names the document in the chosen store (redis key, pgsql
	// row key).
	DatasetKey string

	FileDBPath string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// RateLimit is an ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_BACKEND", BackendFile)
	viper.SetDefault("DATASET_KEY", "demostra_db_v1")
	viper.SetDefault("FILE_DB_PATH", "data/dataset.json")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		StorageBackend: viper.GetString("STORAGE_BACKEND"),
		DatasetKey:     viper.GetString("DATASET_KEY"),
		FileDBPath:     viper.GetString("FILE_DB_PATH"),
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		RedisAddr:      viper.GetString("REDIS_ADDR"),
		RedisPassword:  viper.GetString("REDIS_PASSWORD"),
		RedisDB:        viper.GetInt("REDIS_DB"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
	}

	switch cfg.StorageBackend {
	case BackendFile, BackendRedis, BackendPgsql:
	default:
		log.Printf("Warning: unknown STORAGE_BACKEND %q, falling back to %s.\n", cfg.StorageBackend, BackendFile)
		cfg.StorageBackend = BackendFile
	}

	if cfg.StorageBackend == BackendPgsql && cfg.DatabaseURL == "" {
		log.Println("Warning: STORAGE_BACKEND is pgsql but PGSQL_URL is not set.")
	}

	return cfg, nil
}
