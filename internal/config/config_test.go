package config

import "testing"

func TestParseServerDefaults(t *testing.T) {
	cfg, err := ParseServer()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected logging defaults: %+v", cfg)
	}
	if cfg.ShutdownTimeoutSeconds != 10 {
		t.Fatalf("expected default shutdown timeout, got %d", cfg.ShutdownTimeoutSeconds)
	}
}

func TestParseServerEnvOverrides(t *testing.T) {
	t.Setenv("MODELVAL_ADDR", ":9999")
	t.Setenv("MODELVAL_DB_PATH", "/tmp/models.db")
	t.Setenv("MODELVAL_MODEL", "model.yaml")
	t.Setenv("MODELVAL_ROOT_TYPE", "org.example.Person")
	t.Setenv("MODELVAL_LOG_FORMAT", "json")

	cfg, err := ParseServer()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.DBPath != "/tmp/models.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ModelSource != "model.yaml" || cfg.RootType != "org.example.Person" {
		t.Fatalf("unexpected model config: %+v", cfg)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("expected json log format, got %q", cfg.LogFormat)
	}
}
