package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseDurationWithDays(t *testing.T) {
	cases := map[string]time.Duration{
		"30d":  30 * 24 * time.Hour,
		"1h":   time.Hour,
		"10s":  10 * time.Second,
		"xd":   0,
		"junk": 0,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseDurationWithDays(in), in)
	}
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitAndTrim(" a:9092, ,b:9092 "))
}

func TestGetEnvPanicsOnMissing(t *testing.T) {
	require.PanicsWithValue(t, "missing required environment variable: CHECKOUT_TEST_MISSING", func() {
		getEnv("CHECKOUT_TEST_MISSING", zap.NewNop())
	})
}

func setBase(t *testing.T) {
	t.Helper()
	for k, v := range map[string]string{
		"APP_PORT": ":8080", "DB_HOST": "localhost", "DB_PORT": "5432", "DB_USER": "u", "DB_PASSWORD": "p",
		"DB_NAME": "checkout", "DB_SSLMODE": "disable", "JWT_SECRET": "s", "JWT_ISSUER": "auth", "JWT_AUDIENCE": "checkout",
	} {
		t.Setenv(k, v)
	}
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)
	cfg := Load(zap.NewNop())

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, ":9090", cfg.GRPCPort)
	assert.Equal(t, "checkout", cfg.DB.Name)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL())
	assert.Equal(t, 10*time.Second, cfg.Checkout.Timeout)
	assert.Equal(t, "USD", cfg.Checkout.DefaultCurrency)
	assert.Equal(t, "Canada", cfg.Checkout.DefaultCountry)
	assert.Equal(t, 24*time.Hour, cfg.Checkout.IdempotencyTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.Cleanup.CartAbandonAfter)
	assert.Equal(t, time.Hour, cfg.Cleanup.Interval)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadOverrides(t *testing.T) {
	setBase(t)
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CHECKOUT_TIMEOUT", "3s")
	t.Setenv("CART_ABANDON_AFTER", "7d")

	cfg := Load(zap.NewNop())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Redis.TTL())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, cfg.Checkout.Timeout)
	assert.Equal(t, 7*24*time.Hour, cfg.Cleanup.CartAbandonAfter)
}

func TestLoadNotifierRequiresSMTP(t *testing.T) {
	t.Setenv("KAFKA_TOPIC_EMAIL", "emails")
	t.Setenv("KAFKA_GROUP_ID", "notifier")
	require.Panics(t, func() { LoadNotifier(zap.NewNop()) })
}
