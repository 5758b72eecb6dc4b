package main

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/coursebook/internal/config"
	"github.com/vango-dev/coursebook/pkg/middleware"
	"github.com/vango-dev/coursebook/pkg/search"
	"github.com/vango-dev/coursebook/pkg/server"
)

type serveFlags struct {
	port       int
	host       string
	catalog    string
	s3Bucket   string
	s3Key      string
	s3Region   string
	s3Endpoint string
	metrics    bool
	tracing    bool
	logLevel   string
	logFormat  string
}

func serveCmd(configPath *string) *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and live search server",
		Long: `Start the HTTP API and the live search WebSocket endpoint.

The catalog is read from --catalog, from S3 with --s3-bucket, or from
coursebook.json. Without any of these the built-in sample is served.
S3 credentials are taken from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY;
anonymous access is used when they are unset.

Examples:
  coursebook serve
  coursebook serve --port=9000 --catalog=courses.json
  coursebook serve --s3-bucket=coursebook-data --s3-region=ap-northeast-1 --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().IntVarP(&f.port, "port", "p", 0, "Port to listen on (default from coursebook.json)")
	cmd.Flags().StringVarP(&f.host, "host", "H", "", "Host to bind to (default from coursebook.json)")
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "Local JSON catalog file")
	cmd.Flags().StringVar(&f.s3Bucket, "s3-bucket", "", "S3 bucket holding the catalog")
	cmd.Flags().StringVar(&f.s3Key, "s3-key", "", "S3 object key (default catalog.json)")
	cmd.Flags().StringVar(&f.s3Region, "s3-region", "", "S3 region")
	cmd.Flags().StringVar(&f.s3Endpoint, "s3-endpoint", "", "S3-compatible endpoint URL (enables path-style addressing)")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "Serve Prometheus metrics")
	cmd.Flags().BoolVar(&f.tracing, "tracing", false, "Create OpenTelemetry server spans")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format: text or json")

	return cmd
}

// apply overrides cfg with the flags that were set.
func (f *serveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if f.port > 0 {
		cfg.Server.Port = f.port
	}
	if f.host != "" {
		cfg.Server.Host = f.host
	}
	if f.catalog != "" {
		cfg.Catalog.Path = f.catalog
		cfg.Catalog.S3 = config.S3Config{}
	}
	if f.s3Bucket != "" {
		cfg.Catalog.Path = ""
		cfg.Catalog.S3.Bucket = f.s3Bucket
		if cfg.Catalog.S3.Key == "" {
			cfg.Catalog.S3.Key = config.DefaultS3Key
		}
	}
	if f.s3Key != "" {
		cfg.Catalog.S3.Key = f.s3Key
	}
	if f.s3Region != "" {
		cfg.Catalog.S3.Region = f.s3Region
	}
	if f.s3Endpoint != "" {
		cfg.Catalog.S3.Endpoint = f.s3Endpoint
		cfg.Catalog.S3.PathStyle = true
	}
	if flags.Changed("metrics") {
		cfg.Metrics.Enabled = f.metrics
	}
	if flags.Changed("tracing") {
		cfg.Tracing.Enabled = f.tracing
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	store, source, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "source", source, "courses", store.Len())

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithConfig(&server.Config{
			SyncDelay:   cfg.SyncDelay(),
			SearchDelay: cfg.SearchDelay(),
			CheckOrigin: originCheck(cfg.Server.AllowedOrigins),
		}),
		server.WithEngine(search.NewEngine(store, search.WithNewCourseWindow(cfg.NewCourseWindow()))),
	}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, server.WithMetrics(middleware.NewMetrics(
			middleware.WithRegistry(registry),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)))
	}
	if cfg.Tracing.Enabled {
		opts = append(opts, server.WithTracing(middleware.Tracing(
			middleware.WithTracerName(cfg.Tracing.TracerName),
			middleware.WithRequestFilter(func(r *http.Request) bool {
				return r.URL.Path != "/healthz" && r.URL.Path != cfg.Metrics.Path
			}),
		)))
	}

	srv := server.New(store, opts...)
	if registry != nil {
		srv.Router().Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return srv.Run(ctx, cfg.Address())
}

// originCheck allows same-origin live sessions plus the listed origins.
func originCheck(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return server.SameOriginCheck
	}
	return func(r *http.Request) bool {
		if server.SameOriginCheck(r) {
			return true
		}
		origin, err := url.Parse(r.Header.Get("Origin"))
		if err != nil {
			return false
		}
		return slices.Contains(allowed, origin.Scheme+"://"+origin.Host)
	}
}
