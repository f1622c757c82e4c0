package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Store != StoreMemory {
		t.Errorf("Store = %q, want memory", cfg.Store)
	}
	if cfg.ShutdownTimeout.Seconds() != 15 {
		t.Errorf("ShutdownTimeout = %s, want 15s", cfg.ShutdownTimeout)
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE", "cassandra")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown store")
	}
}
