package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/coursebook/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.SyncDelay() != 500*time.Millisecond {
		t.Errorf("SyncDelay = %v, want 500ms", cfg.SyncDelay())
	}
	if cfg.SearchDelay() != 300*time.Millisecond {
		t.Errorf("SearchDelay = %v, want 300ms", cfg.SearchDelay())
	}
	if cfg.NewCourseWindow() != 30*24*time.Hour {
		t.Errorf("NewCourseWindow = %v", cfg.NewCourseWindow())
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q", cfg.Metrics.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	var ce *errors.Error
	if !stderrors.As(err, &ce) || ce.Code != "E100" {
		t.Fatalf("missing config error = %v, want E100", err)
	}

	configJSON := `{
  "server": {"host": "0.0.0.0", "port": 9000},
  "catalog": {"s3": {"bucket": "coursebook-data", "region": "ap-northeast-1"}},
  "search": {"syncDebounceMs": 250},
  "log": {"level": "debug", "format": "json"}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Address() != "0.0.0.0:9000" {
		t.Errorf("Address = %q", cfg.Address())
	}
	if cfg.Catalog.S3.Key != DefaultS3Key {
		t.Errorf("S3.Key = %q, want default %q", cfg.Catalog.S3.Key, DefaultS3Key)
	}
	if cfg.SyncDelay() != 250*time.Millisecond {
		t.Errorf("SyncDelay = %v", cfg.SyncDelay())
	}
	if cfg.SearchDelay() != 300*time.Millisecond {
		t.Errorf("SearchDelay = %v, want default", cfg.SearchDelay())
	}
	if level, _ := cfg.LogLevel(); level != slog.LevelDebug {
		t.Errorf("LogLevel = %v", level)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path = %q", cfg.Path())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"server": `), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	var ce *errors.Error
	if !stderrors.As(err, &ce) || ce.Code != "E101" {
		t.Fatalf("error = %v, want E101", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   string
	}{
		{"PortTooLarge", func(c *Config) { c.Server.Port = 70000 }, "E102"},
		{"NegativeDelay", func(c *Config) { c.Search.SyncDebounceMs = -1 }, "E103"},
		{"TwoCatalogSources", func(c *Config) {
			c.Catalog.Path = "courses.json"
			c.Catalog.S3.Bucket = "b"
		}, "E104"},
		{"BadLevel", func(c *Config) { c.Log.Level = "loud" }, "E105"},
		{"BadFormat", func(c *Config) { c.Log.Format = "xml" }, "E105"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)

			err := cfg.Validate()
			var ce *errors.Error
			if !stderrors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *errors.Error", err)
			}
			if ce.Code != tt.code {
				t.Errorf("code = %s, want %s", ce.Code, tt.code)
			}
		})
	}
}
