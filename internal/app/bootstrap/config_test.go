package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceID != "publish-review-service" {
		t.Fatalf("got service id %q", cfg.ServiceID)
	}
	if cfg.HTTPPort != 5000 {
		t.Fatalf("got port %d", cfg.HTTPPort)
	}
	if cfg.DatabaseURL != "data/submissions.db" {
		t.Fatalf("got database url %q", cfg.DatabaseURL)
	}
	if cfg.PlatformTimeout() != 60*time.Second {
		t.Fatalf("got platform timeout %s", cfg.PlatformTimeout())
	}
	if cfg.MaxUploadBytes() != 500<<20 {
		t.Fatalf("got max upload bytes %d", cfg.MaxUploadBytes())
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	raw := `
service:
  id: review-svc
  http_port: 8081
dependencies:
  database_url: postgres://localhost/review
  redis_url: redis://localhost:6379/0
  kafka_brokers: [broker-1:9092, broker-2:9092]
platform:
  interpreter: python
  timeout_seconds: 30
cache:
  latest_ttl_seconds: 5
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceID != "review-svc" || cfg.HTTPPort != 8081 {
		t.Fatalf("service fields not applied: %+v", cfg)
	}
	if cfg.DatabaseURL != "postgres://localhost/review" {
		t.Fatalf("got database url %q", cfg.DatabaseURL)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "broker-2:9092" {
		t.Fatalf("got brokers %v", cfg.KafkaBrokers)
	}
	if cfg.PlatformInterpreter != "python" || cfg.PlatformTimeoutSeconds != 30 {
		t.Fatalf("platform fields not applied: %+v", cfg)
	}
	if cfg.LatestCacheTTL() != 5*time.Second {
		t.Fatalf("got cache ttl %s", cfg.LatestCacheTTL())
	}
	// Fields the file omits keep their defaults.
	if cfg.PlatformUploadScript != "upload_video.py" {
		t.Fatalf("got upload script %q", cfg.PlatformUploadScript)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/review")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "broker-a:9092, broker-b:9092")
	t.Setenv("PLATFORM_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DatabaseURL != "postgres://db:5432/review" {
		t.Fatalf("got database url %q", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != 9090 {
		t.Fatalf("got port %d", cfg.HTTPPort)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "broker-a:9092" {
		t.Fatalf("got brokers %v", cfg.KafkaBrokers)
	}
	// Unparseable numeric overrides fall back to the default.
	if cfg.PlatformTimeoutSeconds != 60 {
		t.Fatalf("got timeout %d", cfg.PlatformTimeoutSeconds)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
