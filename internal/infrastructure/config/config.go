package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Directory DirectoryConfig
	Catalog   CatalogConfig
	Favorites FavoritesConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=stayease"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX"`
}

type DirectoryConfig struct {
	// SeedFixtures pre-populates an empty directory with the two example
	// accounts. Development convenience, off by default.
	SeedFixtures bool `env:"DIRECTORY_SEED, default=false"`
	// LookupLatency simulates a network round-trip on directory lookups.
	LookupLatency time.Duration `env:"DIRECTORY_LOOKUP_LATENCY, default=0"`
	// HistoryLimit caps the snapshot log; 0 keeps it unbounded.
	HistoryLimit int `env:"DIRECTORY_HISTORY_LIMIT, default=1000"`
}

type CatalogConfig struct {
	// SeedFixtures loads the demo listing set into an empty catalog.
	SeedFixtures bool `env:"CATALOG_SEED, default=false"`
}

type FavoritesConfig struct {
	Workers int `env:"FAVORITES_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
