package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_ENV", "test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Mode != "release" {
		t.Fatalf("Mode = %q, want release", cfg.Mode)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Fatalf("PingPeriod = %v, want 54s", cfg.PingPeriod)
	}
	if len(cfg.StunURLs) != 1 || cfg.StunURLs[0] != "stun:stun.l.google.com:19302" {
		t.Fatalf("StunURLs = %v, want default google stun", cfg.StunURLs)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_ENV", "test")

	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "mode: debug\nport: 9999\nping_period: 10s\nstun_urls:\n  - stun:stun.example.org:3478\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9999 {
		t.Fatalf("Port = %d, want 9999", cfg.Port)
	}
	if cfg.Mode != "debug" {
		t.Fatalf("Mode = %q, want debug", cfg.Mode)
	}
	if cfg.PingPeriod != 10*time.Second {
		t.Fatalf("PingPeriod = %v, want 10s", cfg.PingPeriod)
	}
	if len(cfg.StunURLs) != 1 || cfg.StunURLs[0] != "stun:stun.example.org:3478" {
		t.Fatalf("StunURLs = %v, want file value", cfg.StunURLs)
	}
	if cfg.ReadLimit != 32768 {
		t.Fatalf("ReadLimit = %d, want default 32768", cfg.ReadLimit)
	}
}
