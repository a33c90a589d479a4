package config

import (
	"fmt"
	"time"

	"github.com/Beliver-cell/kreateyo-sub000/pkg/config"
)

// Config holds all service configuration, loaded from the environment.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8084"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// CartTTL is how long an untouched cart survives before Redis expires it.
	CartTTL         time.Duration `env:"CART_TTL" envDefault:"168h"`
	DefaultCurrency string        `env:"DEFAULT_CURRENCY" envDefault:"USD"`

	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"true"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	CatalogBaseURL string `env:"CATALOG_BASE_URL" envDefault:"http://localhost:8082"`

	// GatewayProvider selects the payment gateway: "mock" or "none". A
	// business without a gateway gets the payment-unavailable checkout path.
	GatewayProvider  string        `env:"GATEWAY_PROVIDER" envDefault:"mock"`
	PaymentTimeout   time.Duration `env:"PAYMENT_TIMEOUT" envDefault:"30s"`
	MockGatewayDelay time.Duration `env:"MOCK_GATEWAY_DELAY" envDefault:"0s"`

	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint   string  `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	switch cfg.GatewayProvider {
	case "mock", "none":
	default:
		return nil, fmt.Errorf("unknown gateway provider %q", cfg.GatewayProvider)
	}

	return &cfg, nil
}
