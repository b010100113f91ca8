package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"checkout-service/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port     string
	GRPCPort string

	DB       DB
	Redis    Redis
	Kafka    Kafka
	SMTP     SMTP
	JWT      JWT
	Checkout Checkout
	Cleanup  Cleanup
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

type Kafka struct {
	Brokers    []string
	TopicEmail string
	GroupID    string
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	SSL      bool
	TMPLDir  string
}

type JWT struct {
	Secret   string
	Issuer   string
	Audience string
}

type Checkout struct {
	Timeout         time.Duration
	DefaultCurrency string
	DefaultCountry  string
	IdempotencyTTL  time.Duration
}

type Cleanup struct {
	CartAbandonAfter time.Duration
	Interval         time.Duration
}

func (r Redis) TTL() time.Duration { return time.Duration(r.TTLSeconds) * time.Second }

// Load reads the API service configuration.
func Load(log *zap.Logger) *Config {
	return &Config{
		Port:     getEnv("APP_PORT", log),
		GRPCPort: getEnvDefault("GRPC_PORT", ":9090"),
		DB:       loadDB(log),
		Redis: Redis{
			Enabled:    getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:       getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         atoiDefault(os.Getenv("REDIS_DB"), 0),
			TTLSeconds: atoiDefault(os.Getenv("CACHE_TTL_SECONDS"), 60),
		},
		Kafka: Kafka{
			Brokers:    splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			TopicEmail: getEnvDefault("KAFKA_TOPIC_EMAIL", "emails"),
		},
		JWT: JWT{
			Secret:   getEnv("JWT_SECRET", log),
			Issuer:   getEnv("JWT_ISSUER", log),
			Audience: getEnv("JWT_AUDIENCE", log),
		},
		Checkout: Checkout{
			Timeout:         parseDurationWithDays(getEnvDefault("CHECKOUT_TIMEOUT", "10s")),
			DefaultCurrency: getEnvDefault("DEFAULT_CURRENCY", "USD"),
			DefaultCountry:  getEnvDefault("DEFAULT_COUNTRY", "Canada"),
			IdempotencyTTL:  parseDurationWithDays(getEnvDefault("IDEMPOTENCY_TTL", "1d")),
		},
		Cleanup: Cleanup{
			CartAbandonAfter: parseDurationWithDays(getEnvDefault("CART_ABANDON_AFTER", "30d")),
			Interval:         parseDurationWithDays(getEnvDefault("CLEANUP_INTERVAL", "1h")),
		},
	}
}

// LoadMigrate reads only what cmd/migrate needs.
func LoadMigrate(log *zap.Logger) *Config {
	return &Config{DB: loadDB(log)}
}

// LoadNotifier reads the e-mail worker configuration.
func LoadNotifier(log *zap.Logger) *Config {
	return &Config{
		Kafka: Kafka{
			Brokers:    splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			TopicEmail: getEnv("KAFKA_TOPIC_EMAIL", log),
			GroupID:    getEnv("KAFKA_GROUP_ID", log),
		},
		SMTP: SMTP{
			Host:     getEnv("SMTP_HOST", log),
			Port:     getEnvInt("SMTP_PORT", log),
			User:     getEnv("SMTP_USER", log),
			Password: getEnv("SMTP_PASSWORD", log),
			From:     getEnv("SMTP_FROM", log),
			SSL:      getEnvDefault("SMTP_SSL", "true") == "true",
			TMPLDir:  os.Getenv("TMPL_DIR"),
		},
	}
}

func loadDB(log *zap.Logger) DB {
	return DB{
		Config: database.Config{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnv("DB_SSLMODE", log),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, log *zap.Logger) int {
	valStr := getEnv(key, log)
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Error("Ошибка преобразования переменной окружения в int", zap.String("key", key), zap.Error(err))
		panic("invalid int value for environment variable: " + key)
	}
	return val
}

// parseDurationWithDays accepts time.ParseDuration input plus an "Nd" day suffix.
func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0
		}
		return time.Duration(days) * 24 * time.Hour
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return duration
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
