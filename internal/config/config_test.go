package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OMDb.BaseURL != "https://www.omdbapi.com/" {
		t.Errorf("BaseURL = %q", cfg.OMDb.BaseURL)
	}
	if cfg.OMDb.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.OMDb.Timeout)
	}
	if cfg.UI.StatusTimeout != 3*time.Second {
		t.Errorf("StatusTimeout = %v", cfg.UI.StatusTimeout)
	}
	if !strings.HasSuffix(cfg.Storage.Path, "screenly.db") {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if !strings.HasSuffix(cfg.Logging.File, "screenly.log") {
		t.Errorf("Logging.File = %q", cfg.Logging.File)
	}
	if cfg.IsConfigured() {
		t.Error("default config should not be configured")
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OMDb.BaseURL != DefaultConfig().OMDb.BaseURL {
		t.Errorf("BaseURL = %q", cfg.OMDb.BaseURL)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `omdb:
  api_key: abc123
  timeout: 5s
storage:
  path: /tmp/watched.db
ui:
  status_timeout: 1s
logging:
  level: DEBUG
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.OMDb.APIKey != "abc123" {
		t.Errorf("APIKey = %q", cfg.OMDb.APIKey)
	}
	if cfg.OMDb.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.OMDb.Timeout)
	}
	if cfg.Storage.Path != "/tmp/watched.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.UI.StatusTimeout != time.Second {
		t.Errorf("StatusTimeout = %v", cfg.UI.StatusTimeout)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	// Unset keys keep defaults
	if cfg.OMDb.BaseURL != "https://www.omdbapi.com/" {
		t.Errorf("BaseURL = %q", cfg.OMDb.BaseURL)
	}
	if !cfg.IsConfigured() {
		t.Error("expected configured")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SCREENLY_OMDB_API_KEY", "from-env")
	t.Setenv("SCREENLY_LOGGING_LEVEL", "ERROR")

	cfg, err := NewLoader(t.TempDir()).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OMDb.APIKey != "from-env" {
		t.Errorf("APIKey = %q", cfg.OMDb.APIKey)
	}
	if cfg.Logging.Level != "ERROR" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("omdb: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader(dir).Load(); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenly")

	cfg := DefaultConfig()
	cfg.OMDb.APIKey = "saved-key"
	cfg.OMDb.Timeout = 7 * time.Second
	cfg.Storage.Path = ""

	if err := NewLoader(dir).Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("config.yaml not written: %v", err)
	}

	got, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.OMDb.APIKey != "saved-key" {
		t.Errorf("APIKey = %q", got.OMDb.APIKey)
	}
	if got.OMDb.Timeout != 7*time.Second {
		t.Errorf("Timeout = %v", got.OMDb.Timeout)
	}
}
