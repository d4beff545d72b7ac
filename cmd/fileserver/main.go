// Command fileserver serves a local directory or an S3 bucket over HTTP.
//
// Configuration comes from the environment (and an optional .env file):
// SERVER_* for the listener, FILESERVER_* for the stages and S3_* for the
// bucket backend.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/fileserver/core/config"
	"github.com/dmitrymomot/fileserver/core/logger"
	"github.com/dmitrymomot/fileserver/core/pipeline"
	"github.com/dmitrymomot/fileserver/core/server"
	"github.com/dmitrymomot/fileserver/core/static"
	"github.com/dmitrymomot/fileserver/integration/s3fs"
	"github.com/dmitrymomot/fileserver/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	log := newLogger(cfg)
	log.Info("Starting file server")

	fsys, err := fileSystem(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open file system", logger.Component("s3fs"), logger.Error(err))
		os.Exit(1)
	}

	b := pipeline.New[*pipeline.Context](
		pipeline.WithLogger[*pipeline.Context](log.With(logger.Component("pipeline"))),
	)
	middleware.UseRequestID(b, middleware.RequestIDConfig{
		UseExisting: cfg.TrustRequestID,
	})
	middleware.UseLogging(b, middleware.LoggingConfig{
		Logger:            log,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})
	if cfg.SecurityHeaders {
		middleware.UseSecurityHeaders(b, middleware.StaticSecurity)
	}
	static.UseFileServerWithOptions(b, static.NewFromConfig(cfg.FileServer, fsys))

	log.Info("Pipeline composed", logger.Count("stages", b.Len()))

	s, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(s.Run(ctx, b.Handler(nil)))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{logger.WithProduction(cfg.AppName)}
	if cfg.AppEnv == "development" {
		opts = []logger.Option{logger.WithDevelopment(cfg.AppName)}
	}

	switch cfg.LogFormat {
	case "text":
		opts = append(opts, logger.WithTextFormatter())
	case "json":
		opts = append(opts, logger.WithJSONFormatter())
	}

	var levelErr error
	if cfg.LogLevel != "" {
		var level slog.Level
		level, levelErr = logger.ParseLevel(cfg.LogLevel)
		if levelErr == nil {
			opts = append(opts, logger.WithLevel(level))
		}
	}

	opts = append(opts,
		logger.WithAttr(logger.Version(cfg.AppVersion)),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	)

	log := logger.New(opts...)
	if levelErr != nil {
		log.Warn("Unknown log level, using preset", slog.String("level", cfg.LogLevel))
	}
	return log
}

// fileSystem picks the S3 bucket when one is configured, the local root otherwise.
func fileSystem(ctx context.Context, cfg Config, log *slog.Logger) (http.FileSystem, error) {
	if cfg.S3.Bucket == "" {
		log.Info("Serving local directory", slog.String("root", cfg.FileServer.Root))
		return http.Dir(cfg.FileServer.Root), nil
	}

	fsys, err := s3fs.New(ctx, cfg.S3, s3fs.WithLogger(log))
	if err != nil {
		return nil, err
	}
	log.Info("Serving S3 bucket",
		slog.String("bucket", cfg.S3.Bucket),
		slog.String("prefix", cfg.S3.Prefix),
	)
	return fsys, nil
}
