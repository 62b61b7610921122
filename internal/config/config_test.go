package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://power.larc.nasa.gov/api/temporal/daily/point", cfg.PowerBaseURL)
	assert.Equal(t, "AG", cfg.PowerCommunity)
	assert.Equal(t, 30*time.Second, cfg.PowerTimeout)
	assert.Equal(t, time.Second, cfg.PowerRateInterval)
	assert.Equal(t, 20, cfg.BaselineYears)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers())
	assert.Equal(t, "weather-analysis-reports", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("WEATHER_HTTP_ADDR", ":9090")
	t.Setenv("WEATHER_LOG_LEVEL", "debug")
	t.Setenv("WEATHER_LOG_FORMAT", "text")
	t.Setenv("WEATHER_SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("WEATHER_POWER_TIMEOUT", "5s")
	t.Setenv("WEATHER_POWER_RATE_INTERVAL", "250ms")
	t.Setenv("WEATHER_BASELINE_YEARS", "30")
	t.Setenv("WEATHER_KAFKA_ENABLED", "true")
	t.Setenv("WEATHER_KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("WEATHER_KAFKA_TOPIC", "custom-reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.PowerTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.PowerRateInterval)
	assert.Equal(t, 30, cfg.BaselineYears)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Brokers())
	assert.Equal(t, "custom-reports", cfg.KafkaTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("WEATHER_SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown_timeout")
}

func TestLoad_InvalidPowerTimeout(t *testing.T) {
	t.Setenv("WEATHER_POWER_TIMEOUT", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "power_timeout")
}

func TestLoad_InvalidBaselineYears(t *testing.T) {
	t.Setenv("WEATHER_BASELINE_YEARS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baseline_years")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("WEATHER_KAFKA_ENABLED", "true")
	t.Setenv("WEATHER_KAFKA_BROKERS", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka_brokers")
}

func TestLoad_KafkaEnabledWithoutTopic(t *testing.T) {
	t.Setenv("WEATHER_KAFKA_ENABLED", "true")
	t.Setenv("WEATHER_KAFKA_TOPIC", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka_topic")
}

func TestBrokers_Empty(t *testing.T) {
	cfg := New()
	cfg.KafkaBrokers = ""
	assert.Nil(t, cfg.Brokers())
}
