package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_TTL", "")
	t.Setenv("REMOTE_MODE", "")

	cfg := Load()

	if cfg.SessionTTL != 7*24*time.Hour {
		t.Errorf("SessionTTL = %v, want 168h", cfg.SessionTTL)
	}
	if cfg.RemoteMode != "sql" {
		t.Errorf("RemoteMode = %q, want sql", cfg.RemoteMode)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("REMOTE_TIMEOUT", "soon")

	cfg := Load()
	if cfg.RemoteTimeout != 5*time.Second {
		t.Errorf("RemoteTimeout = %v, want 5s", cfg.RemoteTimeout)
	}
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
port = "9090"

[remote]
mode = "rest"
url = "https://example.supabase.co"
timeout = "2s"

[session]
ttl = "1h"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Load()
	if err := cfg.ApplyFile(path); err != nil {
		t.Fatalf("ApplyFile() error = %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.RemoteMode != "rest" {
		t.Errorf("RemoteMode = %q, want rest", cfg.RemoteMode)
	}
	if cfg.RemoteTimeout != 2*time.Second {
		t.Errorf("RemoteTimeout = %v, want 2s", cfg.RemoteTimeout)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
}

func TestApplyFileMissingIsNotError(t *testing.T) {
	cfg := Load()
	if err := cfg.ApplyFile(filepath.Join(t.TempDir(), "nope.toml")); err != nil {
		t.Fatalf("ApplyFile() error = %v, want nil", err)
	}
}

func TestApplyFileBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[session]\nttl = \"forever\"\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Load()
	if err := cfg.ApplyFile(path); err == nil {
		t.Fatal("ApplyFile() expected error for bad duration")
	}
}
