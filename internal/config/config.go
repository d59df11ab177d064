package config

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

type Configuration struct {
	API     APIConfig     `validate:"required"`
	Session SessionConfig `validate:"required"`
	Sync    SyncConfig    `validate:"required"`
	Cache   CacheConfig
	Stripe  StripeConfig
	Logging LoggingConfig `validate:"required"`
}

// APIConfig points at the studio backend
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Timeout for a single request attempt
	Timeout time.Duration `mapstructure:"timeout"`
	// RetryMax is the number of transport-level retries per request
	RetryMax int `mapstructure:"retry_max"`
	// RequestsPerSecond caps outbound calls to the backend
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// SessionConfig identifies the signed-in member
type SessionConfig struct {
	BearerToken string `mapstructure:"bearer_token" validate:"required"`
	UserID      string `mapstructure:"user_id"`
	StudioID    string `mapstructure:"studio_id"`
}

// SyncConfig controls the poll loop
type SyncConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"required"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// StripeConfig is optional; when SecretKey is empty the processor
// provider is not constructed and billing data comes from the backend only.
type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	// Load .env if present, real env vars still win
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/un1t")

	v.SetEnvPrefix("UN1T")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retry_max", 3)
	v.SetDefault("api.requests_per_second", 5.0)
	v.SetDefault("sync.poll_interval", 60*time.Second)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("logging.level", string(types.LogLevelInfo))
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests where no backend is actually dialed.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		API: APIConfig{
			BaseURL:           "http://localhost:4000",
			Timeout:           30 * time.Second,
			RetryMax:          3,
			RequestsPerSecond: 5.0,
		},
		Session: SessionConfig{BearerToken: "test-token"},
		Sync:    SyncConfig{PollInterval: time.Minute},
		Cache:   CacheConfig{Enabled: true, TTL: 5 * time.Minute},
		Logging: LoggingConfig{Level: types.LogLevelDebug},
	}
}
