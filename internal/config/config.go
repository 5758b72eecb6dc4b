package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/coursebook/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "coursebook.json"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultSyncDebounceMs is the default URL write-back debounce.
	DefaultSyncDebounceMs = 500

	// DefaultSearchDebounceMs is the default search debounce.
	DefaultSearchDebounceMs = 300

	// DefaultS3Key is the object key used when only a bucket is configured.
	DefaultS3Key = "catalog.json"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete coursebook.json configuration.
type Config struct {
	// Server contains listener settings.
	Server ServerConfig `json:"server"`

	// Catalog selects where courses are loaded from.
	Catalog CatalogConfig `json:"catalog"`

	// Search contains live search timing.
	Search SearchConfig `json:"search"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing"`

	// Log contains logging settings.
	Log LogConfig `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains listener settings.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// AllowedOrigins lists extra origins allowed to open live sessions.
	// Same-origin connections are always allowed.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// CatalogConfig selects the course source. With neither Path nor S3 set
// the embedded sample catalog is used.
type CatalogConfig struct {
	// Path is a local JSON catalog file.
	Path string `json:"path,omitempty"`

	// S3 is an S3 object holding the JSON catalog.
	S3 S3Config `json:"s3"`
}

// S3Config locates a catalog object in S3 or an S3-compatible store.
type S3Config struct {
	Bucket string `json:"bucket,omitempty"`
	Key    string `json:"key,omitempty"`
	Region string `json:"region,omitempty"`

	// Endpoint overrides the AWS endpoint (MinIO, LocalStack).
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle forces path-style addressing, needed by most S3 clones.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// Enabled reports whether an S3 source is configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// SearchConfig contains live search timing.
type SearchConfig struct {
	// SyncDebounceMs delays URL write-back after a filter change.
	SyncDebounceMs int `json:"syncDebounceMs,omitempty"`

	// SearchDebounceMs delays the search after a filter change.
	SearchDebounceMs int `json:"searchDebounceMs,omitempty"`

	// NewCourseDays is how recent a course must be to count as new.
	NewCourseDays int `json:"newCourseDays,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Path      string `json:"path,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty"`
	TracerName string `json:"tracerName,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory.
// It looks for coursebook.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	if c.Catalog.S3.Enabled() && c.Catalog.S3.Key == "" {
		c.Catalog.S3.Key = DefaultS3Key
	}

	if c.Search.SyncDebounceMs == 0 {
		c.Search.SyncDebounceMs = DefaultSyncDebounceMs
	}
	if c.Search.SearchDebounceMs == 0 {
		c.Search.SearchDebounceMs = DefaultSearchDebounceMs
	}
	if c.Search.NewCourseDays == 0 {
		c.Search.NewCourseDays = 30
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "coursebook"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = "coursebook"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if c.Search.SyncDebounceMs < 0 || c.Search.SearchDebounceMs < 0 || c.Search.NewCourseDays < 0 {
		return errors.New("E103")
	}
	if c.Catalog.Path != "" && c.Catalog.S3.Enabled() {
		return errors.New("E104").
			WithSuggestion("Remove either catalog.path or catalog.s3.bucket")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E105").
			WithDetail(`Log format must be "text" or "json", got ` + strconv.Quote(c.Log.Format))
	}
	return nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// SyncDelay returns the URL write-back debounce as a duration.
func (c *Config) SyncDelay() time.Duration {
	return time.Duration(c.Search.SyncDebounceMs) * time.Millisecond
}

// SearchDelay returns the search debounce as a duration.
func (c *Config) SearchDelay() time.Duration {
	return time.Duration(c.Search.SearchDebounceMs) * time.Millisecond
}

// NewCourseWindow returns how recent a course must be to count as new.
func (c *Config) NewCourseWindow() time.Duration {
	return time.Duration(c.Search.NewCourseDays) * 24 * time.Hour
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(c.Log.Level))); err != nil {
		return 0, errors.New("E105").
			WithDetail("Unknown log level " + strconv.Quote(c.Log.Level)).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	return level, nil
}
