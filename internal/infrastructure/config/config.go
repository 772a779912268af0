package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read from the environment
// (a .env file is loaded first by cmd/api through godotenv/autoload).
type Config struct {
	Port     int
	LogLevel string

	StorageDriver string
	DatabaseDSN   string

	RedisAddr      string
	RedisPassword  string
	LockTTL        time.Duration
	IdempotencyTTL time.Duration

	PubSubProjectID    string
	PubSubTopic        string
	PubSubSubscription string
	PubSubCredentials  string
	RealtimeSource     string

	FipeBaseURL   string
	CEPBaseURL    string
	LookupTimeout time.Duration

	MercadoPagoAccessToken string
	PaymentGatewayMock     bool

	CORSAllowedOrigins []string
}

const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
	StorageMySQL    = "mysql"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

func Load() Config {
	return Config{
		Port:     getenvInt("PORT", 8080),
		LogLevel: getenvDefault("LOG_LEVEL", "info"),

		StorageDriver: strings.ToLower(getenvDefault("STORAGE_DRIVER", StorageDynamoDB)),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		LockTTL:        getenvDuration("LOCK_TTL", 10*time.Second),
		IdempotencyTTL: getenvDuration("IDEMPOTENCY_TTL", 24*time.Hour),

		PubSubProjectID:    firstNonEmpty(os.Getenv("PUBSUB_PROJECT_ID"), os.Getenv("GOOGLE_CLOUD_PROJECT")),
		PubSubTopic:        os.Getenv("PUBSUB_TOPIC"),
		PubSubSubscription: os.Getenv("PUBSUB_SUBSCRIPTION"),
		PubSubCredentials:  os.Getenv("PUBSUB_CREDENTIALS_JSON"),
		RealtimeSource:     getenvDefault("REALTIME_SOURCE", defaultSource()),

		FipeBaseURL:   os.Getenv("FIPE_BASE_URL"),
		CEPBaseURL:    getenvDefault("CEP_BASE_URL", "https://viacep.com.br/ws"),
		LookupTimeout: getenvDuration("LOOKUP_TIMEOUT", 5*time.Second),

		MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		PaymentGatewayMock:     getenvBool("PAYMENT_GATEWAY_MOCK") || getenvBool("MERCADOPAGO_MOCK"),

		CORSAllowedOrigins: splitList(getenvDefault("CORS_ALLOWED_ORIGINS", "*")),
	}
}

func defaultSource() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "grota-api"
	}
	return "grota-api@" + host
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getenvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
