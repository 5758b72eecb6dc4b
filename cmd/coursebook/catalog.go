package main

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"

	"github.com/vango-dev/coursebook/internal/config"
	"github.com/vango-dev/coursebook/internal/errors"
	"github.com/vango-dev/coursebook/pkg/catalog"
)

// loadConfig reads the config at path, or ./coursebook.json when path is
// empty. A missing default file yields the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	cfg, err := config.Load(".")
	var ce *errors.Error
	if stderrors.As(err, &ce) && ce.Code == "E100" {
		return config.New(), nil
	}
	return cfg, err
}

// openCatalog loads the configured catalog. It returns the store and a
// short description of where it came from.
func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Store, string, error) {
	switch {
	case cfg.Catalog.S3.Enabled():
		s3cfg := cfg.Catalog.S3
		client := catalog.NewS3Client(catalog.S3Options{
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			PathStyle:       s3cfg.PathStyle,
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		})
		store, err := catalog.LoadS3(ctx, client, s3cfg.Bucket, s3cfg.Key)
		return store, "s3://" + s3cfg.Bucket + "/" + s3cfg.Key, err

	case cfg.Catalog.Path != "":
		store, err := catalog.LoadFile(cfg.Catalog.Path)
		return store, cfg.Catalog.Path, err

	default:
		return catalog.Sample(), "sample", nil
	}
}

// newLogger builds the process logger from the log config.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
