package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_MINUTES", "15")
	t.Setenv("DB_AUTO_MIGRATE", "off")
	t.Setenv("OTEL_SAMPLER_RATIO", "not-a-number")

	cfg := Load()

	if cfg.APIPort != "9090" {
		t.Fatalf("APIPort: got=%q want=%q", cfg.APIPort, "9090")
	}
	if cfg.JWTExp != 15*time.Minute {
		t.Fatalf("JWTExp: got=%v", cfg.JWTExp)
	}
	if cfg.DBAutoMigrate {
		t.Fatal("DBAutoMigrate should be disabled")
	}
	if cfg.OtelSampleRatio != 0.1 {
		t.Fatalf("OtelSampleRatio fallback: got=%v", cfg.OtelSampleRatio)
	}
	if AppConfig != cfg {
		t.Fatal("Load should publish the config through AppConfig")
	}
}

func TestGetEnvAsBool(t *testing.T) {
	cases := []struct {
		raw      string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"0", true, false},
		{"", true, true},
		{"maybe", false, false},
	}
	for _, tc := range cases {
		t.Setenv("FLAG_UNDER_TEST", tc.raw)
		if got := getEnvAsBool("FLAG_UNDER_TEST", tc.fallback); got != tc.want {
			t.Fatalf("getEnvAsBool(%q, %v): got=%v want=%v", tc.raw, tc.fallback, got, tc.want)
		}
	}
}
