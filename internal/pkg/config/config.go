package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, Redis, staging
//   endpoint, session secret)
// - default: Values common across all environments (TTLs, timeouts, currency)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Cart    CartConfig
	Staging StagingConfig
	Session SessionConfig
	CORS    CORSConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CartConfig struct {
	// SnapshotTTL bounds how long an untouched cart survives; every accepted
	// mutation refreshes the window.
	SnapshotTTL time.Duration `envconfig:"CART_SNAPSHOT_TTL" default:"24h"`
	KeyPrefix   string        `envconfig:"CART_KEY_PREFIX" default:"cart"`
}

type StagingConfig struct {
	Endpoint string        `envconfig:"STAGING_ENDPOINT" required:"true"`
	Timeout  time.Duration `envconfig:"STAGING_TIMEOUT" default:"10s"`
	Currency string        `envconfig:"STAGING_CURRENCY" default:"NGN"`
}

type SessionConfig struct {
	Secret       string        `envconfig:"SESSION_SECRET" required:"true"`
	TTL          time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	CookieName   string        `envconfig:"SESSION_COOKIE_NAME" default:"cart_session"`
	CookieDomain string        `envconfig:"SESSION_COOKIE_DOMAIN" default:""`
	CookieSecure bool          `envconfig:"SESSION_COOKIE_SECURE" default:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Africa/Lagos"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"` // 1*60*60
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Redis: RedisConfig{
			Addr: "localhost:16379", // Test Redis port
		},
		Cart: CartConfig{
			SnapshotTTL: 24 * time.Hour,
			KeyPrefix:   "cart",
		},
		Staging: StagingConfig{
			Endpoint: "http://localhost:18080/stage",
			Timeout:  2 * time.Second,
			Currency: "NGN",
		},
		Session: SessionConfig{
			Secret:       "test-secret",
			TTL:          720 * time.Hour,
			CookieName:   "cart_session",
			CookieSecure: false,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Africa/Lagos",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 3600,
		},
	}
}
