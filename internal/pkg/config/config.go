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

	// Workers is the size of the fulfillment propagation worker pool.
	Workers int `env:"FULFILLMENT_WORKERS, default=4"`

	Mongo   MongoConfig
	Redis   RedisConfig
	MNG     MNGConfig
	Shopify ShopifyConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=mng_bridge"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// MNGConfig holds the MNG Kargo API gateway credentials. The key/secret pair
// authenticates the gateway; the customer number and password obtain the
// bearer token.
type MNGConfig struct {
	BaseURL        string        `env:"MNG_BASE_URL, default=https://api.mngkargo.com.tr/mngapi/api"`
	APIKey         string        `env:"MNG_API_KEY"`
	APISecret      string        `env:"MNG_API_SECRET"`
	CustomerNumber string        `env:"MNG_CUSTOMER_NUMBER"`
	Password       string        `env:"MNG_PASSWORD"`
	Timeout        time.Duration `env:"MNG_TIMEOUT, default=15s"`
}

type ShopifyConfig struct {
	Timeout time.Duration `env:"SHOPIFY_TIMEOUT, default=15s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
