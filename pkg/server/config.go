package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/coursebook/pkg/filterstate"
)

// Config holds server tuning options.
type Config struct {
	// SyncDelay is the URL write-back debounce of live sessions.
	// Default: 500ms.
	SyncDelay time.Duration

	// SearchDelay is the search debounce of live sessions.
	// Default: 300ms.
	SearchDelay time.Duration

	// ReadBufferSize is the WebSocket read buffer size.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	WriteBufferSize int

	// MaxMessageSize is the largest client message accepted on a live session.
	MaxMessageSize int64

	// IdleTimeout closes a live session that has not sent anything
	// (including pongs) for this long.
	IdleTimeout time.Duration

	// PingInterval is how often live sessions are pinged. It must be
	// shorter than IdleTimeout.
	PingInterval time.Duration

	// WriteTimeout bounds each WebSocket write.
	WriteTimeout time.Duration

	// CheckOrigin is called to validate the WebSocket request origin.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SyncDelay:       filterstate.DefaultSyncDelay,
		SearchDelay:     filterstate.DefaultSearchDelay,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		MaxMessageSize:  16 * 1024,
		IdleTimeout:     60 * time.Second,
		PingInterval:    25 * time.Second,
		WriteTimeout:    10 * time.Second,
		CheckOrigin:     SameOriginCheck,
		ShutdownTimeout: 15 * time.Second,
	}
}

// withDefaults fills unset fields from DefaultConfig. A zero delay means
// "use the default"; pass a negative delay for synchronous behaviour.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.SyncDelay == 0 {
		out.SyncDelay = d.SyncDelay
	}
	if out.SearchDelay == 0 {
		out.SearchDelay = d.SearchDelay
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.IdleTimeout == 0 {
		out.IdleTimeout = d.IdleTimeout
	}
	if out.PingInterval == 0 || out.PingInterval >= out.IdleTimeout {
		out.PingInterval = out.IdleTimeout * 2 / 5
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	return &out
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (e.g., curl or a native client)
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == "" {
		return false
	}
	return originURL.Host == r.Host
}
