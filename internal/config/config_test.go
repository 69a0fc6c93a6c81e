package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
storage:
  driver: memory
matching:
  superlike_backfill: true
limits:
  likes_per_minute: 99
cors:
  allowed_origins:
    - https://app.example.com
s3:
  presign_ttl: 30m
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Storage.Driver != StorageDriverMemory {
		t.Fatalf("unexpected storage driver: %s", cfg.Storage.Driver)
	}
	if !cfg.Matching.SuperlikeBackfill {
		t.Fatalf("superlike_backfill override was not applied")
	}
	if cfg.Limits.LikesPerMinute != 99 {
		t.Fatalf("unexpected likes/min: %d", cfg.Limits.LikesPerMinute)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://app.example.com" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.S3.PresignTTL != 30*time.Minute {
		t.Fatalf("unexpected presign ttl: %s", cfg.S3.PresignTTL)
	}

	if cfg.Limits.LikesPer10Sec != 15 {
		t.Fatalf("likes/10s default should stay 15, got %d", cfg.Limits.LikesPer10Sec)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("http addr default should stay :8080, got %s", cfg.HTTP.Addr)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Driver != StorageDriverPostgres {
		t.Fatalf("unexpected storage driver: %s", cfg.Storage.Driver)
	}
	if cfg.Matching.SuperlikeBackfill {
		t.Fatalf("superlike_backfill should default to false")
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("limits:\n  likes_per_10sec: 3\n"), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	t.Setenv("LIMITS_LIKES_PER_10SEC", "7")
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("MATCHING_SUPERLIKE_BACKFILL", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Limits.LikesPer10Sec != 7 {
		t.Fatalf("unexpected likes/10s: got %d want 7", cfg.Limits.LikesPer10Sec)
	}
	if cfg.Storage.Driver != StorageDriverMemory {
		t.Fatalf("unexpected storage driver: %s", cfg.Storage.Driver)
	}
	if !cfg.Matching.SuperlikeBackfill {
		t.Fatalf("superlike_backfill env override was not applied")
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad duration", key: "JWT_ACCESS_TTL", val: "soon"},
		{name: "bad int", key: "LIMITS_LIKES_PER_MINUTE", val: "many"},
		{name: "bad bool", key: "MATCHING_SUPERLIKE_BACKFILL", val: "maybe"},
		{name: "unknown driver", key: "STORAGE_DRIVER", val: "sqlite"},
		{name: "negative limit", key: "LIMITS_LIKES_PER_10SEC", val: "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tc.key, tc.val)

			if _, err := Load(""); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.val)
			}
		})
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"HTTP_REQUEST_TIMEOUT",
		"LOG_LEVEL",
		"STORAGE_DRIVER",
		"POSTGRES_DSN",
		"POSTGRES_MIGRATE",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"S3_ENDPOINT",
		"S3_ACCESS_KEY",
		"S3_SECRET_KEY",
		"S3_BUCKET",
		"S3_USE_SSL",
		"S3_PRESIGN_TTL",
		"JWT_SECRET",
		"JWT_ACCESS_TTL",
		"CORS_ALLOWED_ORIGINS",
		"MATCHING_SUPERLIKE_BACKFILL",
		"LIMITS_LIKES_PER_MINUTE",
		"LIMITS_LIKES_PER_10SEC",
	} {
		t.Setenv(key, "")
	}
}
