package db

import (
	"testing"
	"time"
)

func TestBuildConfig_AppliesPoolSizing(t *testing.T) {
	cfg, err := buildConfig("postgres://u:p@localhost:5432/pupclips", Options{
		MaxConns: 15,
		MinConns: 3,
	})
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.MaxConns != 15 {
		t.Errorf("MaxConns = %d, want 15", cfg.MaxConns)
	}
	if cfg.MinConns != 3 {
		t.Errorf("MinConns = %d, want 3", cfg.MinConns)
	}
	if cfg.MaxConnLifetime != time.Hour {
		t.Errorf("MaxConnLifetime = %v, want 1h", cfg.MaxConnLifetime)
	}
}

func TestBuildConfig_ZeroOptionsFallBackToDefaults(t *testing.T) {
	cfg, err := buildConfig("postgres://u:p@localhost:5432/pupclips", Options{})
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	d := DefaultOptions()
	if cfg.MaxConns != d.MaxConns {
		t.Errorf("MaxConns = %d, want default %d", cfg.MaxConns, d.MaxConns)
	}
	if cfg.MinConns != d.MinConns {
		t.Errorf("MinConns = %d, want default %d", cfg.MinConns, d.MinConns)
	}
}

func TestBuildConfig_MinClampedToMax(t *testing.T) {
	cfg, err := buildConfig("postgres://u:p@localhost:5432/pupclips", Options{
		MaxConns: 2,
		MinConns: 8,
	})
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.MinConns != 2 {
		t.Errorf("MinConns = %d, want clamped to MaxConns 2", cfg.MinConns)
	}
}

func TestBuildConfig_InvalidURL(t *testing.T) {
	if _, err := buildConfig("not a url ::", Options{}); err == nil {
		t.Fatal("expected error for malformed database url")
	}
}
