package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE_DRIVER", "LOCK_TTL", "CORS_ALLOWED_ORIGINS", "PUBSUB_PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "REALTIME_SOURCE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != 8080 {
		t.Fatalf("expected default port, got %d", cfg.Port)
	}
	if cfg.StorageDriver != StorageDynamoDB {
		t.Fatalf("expected dynamodb driver, got %q", cfg.StorageDriver)
	}
	if cfg.LockTTL != 10*time.Second {
		t.Fatalf("unexpected lock ttl %v", cfg.LockTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RealtimeSource == "" {
		t.Fatalf("expected a realtime source")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("LOCK_TTL", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.grota.com.br, https://lojista.grota.com.br ,")
	t.Setenv("PUBSUB_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "grota-prod")

	cfg := Load()
	if cfg.Port != 9090 || cfg.StorageDriver != StoragePostgres || cfg.LockTTL != 3*time.Second {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://lojista.grota.com.br" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.PubSubProjectID != "grota-prod" {
		t.Fatalf("expected project fallback, got %q", cfg.PubSubProjectID)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "abc")
	t.Setenv("LOOKUP_TIMEOUT", "-1s")

	cfg := Load()
	if cfg.Port != 8080 || cfg.LookupTimeout != 5*time.Second {
		t.Fatalf("expected defaults, got port=%d timeout=%v", cfg.Port, cfg.LookupTimeout)
	}
}

func TestLoad_PaymentGatewayMock(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "yes")

	if !Load().PaymentGatewayMock {
		t.Fatalf("expected mock mode from MERCADOPAGO_MOCK")
	}

	t.Setenv("MERCADOPAGO_MOCK", "off")
	if Load().PaymentGatewayMock {
		t.Fatalf("expected mock mode disabled")
	}
}
