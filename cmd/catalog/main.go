package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog-admin/internal/config"
	"catalog-admin/internal/console"
	"catalog-admin/internal/middleware"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/service"
	"catalog-admin/internal/session"
	"catalog-admin/internal/source"
	"catalog-admin/internal/upload"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", config.DefaultConfigFile, "path to the optional YAML configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("config", cfg.String()).Msg("starting catalog admin")

	// Cancel in-flight requests on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var s3Client *s3.Client
	if cfg.Source.Backend == config.BackendS3 || cfg.Upload.Backend == config.BackendS3 {
		s3Client, err = newS3Client(ctx, cfg.S3.Region, logger)
		if err != nil {
			return err
		}
	}

	loader := newLoader(cfg, s3Client, logger)
	uploader := newUploader(cfg, s3Client, logger)

	// Initialize store, service and session
	productRepo := repository.NewProductRepository(logger)
	productService := service.NewProductService(productRepo, loader, cfg.Source.Location(), cfg.View.PageSize, logger)
	sess := session.New(productService, uploader, logger)

	if err := console.New(sess, os.Stdin, os.Stdout, logger).Run(ctx); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	logger.Info().Msg("catalog admin stopped")
	return nil
}

func newS3Client(ctx context.Context, region string, logger zerolog.Logger) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

func newLoader(cfg *config.Config, s3Client *s3.Client, logger zerolog.Logger) source.Loader {
	fileLoader := source.NewFileLoader(logger)

	var primary source.Loader
	switch cfg.Source.Backend {
	case config.BackendFile:
		primary = fileLoader
	case config.BackendS3:
		primary = source.NewS3Loader(s3Client, cfg.S3.Bucket, logger)
	default:
		primary = source.NewHTTPLoader(middleware.NewClient(cfg.Source.Timeout, logger), logger)
	}

	if cfg.Source.Fallback == "" {
		return primary
	}
	return source.NewFallbackLoader(primary, fileLoader, cfg.Source.Fallback, logger)
}

func newUploader(cfg *config.Config, s3Client *s3.Client, logger zerolog.Logger) upload.Uploader {
	if cfg.Upload.Backend == config.BackendS3 {
		return upload.NewS3Uploader(s3Client, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, cfg.Upload.MaxBytes, logger)
	}
	return upload.NewHTTPUploader(middleware.NewClient(cfg.Upload.Timeout, logger), cfg.Upload.URL, cfg.Upload.MaxBytes, logger)
}
