package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const envProduction = "production"
const envDevelopment = "development"

type Config struct {
	Port           string        `env:"PORT,            default=8080"`
	Env            string        `env:"ENV,             default=development"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	APIPrefix      string        `env:"API_PREFIX,      default=/api"`
	FrontendURL    string        `env:"FRONTEND_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=8s"`
	AuditWorkers   int           `env:"AUDIT_WORKERS,   default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI            string        `env:"MONGO_URI,             default=mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DB,              default=promo_game"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT, default=5s"`
	OpTimeout      time.Duration `env:"MONGO_OP_TIMEOUT,      default=30s"`
	MaxPoolSize    uint64        `env:"MONGO_MAX_POOL_SIZE,   default=10"`
}

type RedisConfig struct {
	Addr          string        `env:"REDIS_ADDR,      default=localhost:6379"`
	DB            int           `env:"REDIS_DB,        default=0"`
	PrizeCacheTTL time.Duration `env:"PRIZE_CACHE_TTL, default=30s"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool { return c.Env == envProduction }

// IsDevelopment reports whether ENV is "development". Error details are only
// exposed to clients in development.
func (c *Config) IsDevelopment() bool { return c.Env == envDevelopment }

// AllowedOrigins returns the CORS origins: FRONTEND_URL in production, any origin otherwise.
func (c *Config) AllowedOrigins() []string {
	if c.IsProduction() && c.FrontendURL != "" {
		return []string{c.FrontendURL}
	}
	return []string{"*"}
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// LoadFrom is Load with an explicit lookuper, used by tests.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
