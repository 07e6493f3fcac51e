package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values loaded from environment variables.
// Empty backend addresses switch the matching adapter to its in-memory implementation.
type Config struct {
	Env                string
	LogLevel           string
	HTTPAddr           string
	AllowedOrigins     []string
	PostgresDSN        string
	MongoURI           string
	MongoDB            string
	RedisURL           string
	KafkaBrokers       []string
	KafkaTopicPrefix   string
	KafkaGroupID       string
	IdempotencyTTL     time.Duration
	OutboxPollInterval time.Duration
	RetryBackoff       []time.Duration
	SessionTTL         time.Duration
	DetailsCacheTTL    time.Duration
	PricingMode        string
	PricingURL         string
	PricingTimeout     time.Duration
	PricingSeed        int64
	GeocoderURL        string
	GeocoderUserAgent  string
	GeocoderTimeout    time.Duration
	AutocompleteDelay  time.Duration
	S3Endpoint         string
	S3PublicEndpoint   string
	S3AccessKey        string
	S3SecretKey        string
	S3Bucket           string
	S3UseSSL           bool
	HostKeyHash        string
	SessionSecret      string
	FixturesPath       string
}

const (
	PricingModeLocal = "local"
	PricingModeHTTP  = "http"
)

// Load reads an optional .env file and parses configuration from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Env:               getEnv("APP_ENV", "dev"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           getEnv("MONGO_DB", "staysia"),
		RedisURL:          os.Getenv("REDIS_URL"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopicPrefix:  getEnv("KAFKA_TOPIC_PREFIX", ""),
		KafkaGroupID:      getEnv("KAFKA_GROUP_ID", "staysia-worker"),
		PricingMode:       strings.ToLower(getEnv("PRICING_MODE", PricingModeLocal)),
		PricingURL:        os.Getenv("PRICING_URL"),
		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "staysia/1.0"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3PublicEndpoint:  getEnv("S3_PUBLIC_ENDPOINT", ""),
		S3AccessKey:       getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:       getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:          getEnv("S3_BUCKET", "staysia-photos"),
		HostKeyHash:       os.Getenv("HOST_KEY_HASH"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		FixturesPath:      os.Getenv("FIXTURES_PATH"),
	}

	durations := []struct {
		key    string
		def    time.Duration
		target *time.Duration
	}{
		{"IDEMP_TTL", 168 * time.Hour, &cfg.IdempotencyTTL},
		{"OUTBOX_POLL_INTERVAL", 500 * time.Millisecond, &cfg.OutboxPollInterval},
		{"CALENDAR_SESSION_TTL", 2 * time.Hour, &cfg.SessionTTL},
		{"DETAILS_CACHE_TTL", 5 * time.Minute, &cfg.DetailsCacheTTL},
		{"PRICING_TIMEOUT", 5 * time.Second, &cfg.PricingTimeout},
		{"GEOCODER_TIMEOUT", 5 * time.Second, &cfg.GeocoderTimeout},
		{"AUTOCOMPLETE_DELAY", 300 * time.Millisecond, &cfg.AutocompleteDelay},
	}
	for _, d := range durations {
		val, err := parseDurationEnv(d.key, d.def)
		if err != nil {
			return Config{}, err
		}
		*d.target = val
	}

	retryStr := getEnv("RETRY_BACKOFF", "1s,5s,30s")
	for _, raw := range strings.Split(retryStr, ",") {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RETRY_BACKOFF component %q: %w", raw, err)
		}
		cfg.RetryBackoff = append(cfg.RetryBackoff, d)
	}

	useSSL, err := parseBoolEnv("S3_USE_SSL", false)
	if err != nil {
		return Config{}, err
	}
	cfg.S3UseSSL = useSSL
	if cfg.S3PublicEndpoint == "" {
		cfg.S3PublicEndpoint = cfg.S3Endpoint
	}

	seed, err := parseIntEnv("PRICING_SEED", 42)
	if err != nil {
		return Config{}, err
	}
	cfg.PricingSeed = seed

	switch cfg.PricingMode {
	case PricingModeLocal:
	case PricingModeHTTP:
		if cfg.PricingURL == "" {
			return Config{}, fmt.Errorf("PRICING_URL is required when PRICING_MODE=%s", PricingModeHTTP)
		}
	default:
		return Config{}, fmt.Errorf("invalid PRICING_MODE %q", cfg.PricingMode)
	}
	return cfg, nil
}

// Dev reports whether the service runs in a developer environment.
func (c Config) Dev() bool {
	return c.Env == "dev" || c.Env == "local"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return v, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}
