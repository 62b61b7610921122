package config

import (
	"errors"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds all service settings, populated from WEATHER_-prefixed
// environment variables layered over defaults.
type Config struct {
	HTTPAddr        string        `koanf:"http_addr"`
	LogLevel        string        `koanf:"log_level"`
	LogFormat       string        `koanf:"log_format"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// NASA POWER client configuration.
	PowerBaseURL      string        `koanf:"power_base_url"`
	PowerCommunity    string        `koanf:"power_community"`
	PowerTimeout      time.Duration `koanf:"power_timeout"`
	PowerRateInterval time.Duration `koanf:"power_rate_interval"`
	BaselineYears     int           `koanf:"baseline_years"`

	// Optional Kafka report publishing.
	KafkaEnabled bool   `koanf:"kafka_enabled"`
	KafkaBrokers string `koanf:"kafka_brokers"`
	KafkaTopic   string `koanf:"kafka_topic"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		HTTPAddr:        ":8080",
		LogLevel:        "info",
		LogFormat:       "json",
		ShutdownTimeout: 10 * time.Second,

		PowerBaseURL:      "https://power.larc.nasa.gov/api/temporal/daily/point",
		PowerCommunity:    "AG",
		PowerTimeout:      30 * time.Second,
		PowerRateInterval: time.Second,
		BaselineYears:     20,

		KafkaEnabled: false,
		KafkaBrokers: "localhost:9092",
		KafkaTopic:   "weather-analysis-reports",
	}
}

// Load builds a Config by layering environment variables over defaults.
// Env keys map WEATHER_POWER_TIMEOUT -> power_timeout and so on.
func Load() (*Config, error) {
	k := koanf.New(".")

	envProvider := env.Provider("WEATHER_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "weather_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPAddr == "" {
		return errors.New("http_addr must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	if c.PowerBaseURL == "" {
		return errors.New("power_base_url must not be empty")
	}
	if c.PowerTimeout <= 0 {
		return errors.New("power_timeout must be positive")
	}
	if c.PowerRateInterval < 0 {
		return errors.New("power_rate_interval must not be negative")
	}
	if c.BaselineYears < 1 {
		return errors.New("baseline_years must be at least 1")
	}
	if c.KafkaEnabled {
		if c.KafkaBrokers == "" {
			return errors.New("kafka_enabled is true but kafka_brokers is not set")
		}
		if c.KafkaTopic == "" {
			return errors.New("kafka_enabled is true but kafka_topic is not set")
		}
	}
	return nil
}

// Brokers splits the comma-separated broker list.
func (c *Config) Brokers() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
