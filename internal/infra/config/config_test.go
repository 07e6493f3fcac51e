package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PRICING_MODE", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, PricingModeLocal, cfg.PricingMode)
	assert.Equal(t, 300*time.Millisecond, cfg.AutocompleteDelay)
	assert.Equal(t, []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}, cfg.RetryBackoff)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadParsesLists(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ALLOWED_ORIGINS", "https://staysia.id")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"https://staysia.id"}, cfg.AllowedOrigins)
}

func TestLoadRejectsHTTPPricingWithoutURL(t *testing.T) {
	t.Setenv("PRICING_MODE", "http")
	t.Setenv("PRICING_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CALENDAR_SESSION_TTL", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "CALENDAR_SESSION_TTL")
}
