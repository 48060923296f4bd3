package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "CATALOG_"
	defaultEnvFile    = ".env"
	DefaultConfigFile = "config.yaml"
)

// Source backends.
const (
	BackendHTTP = "http"
	BackendFile = "file"
	BackendS3   = "s3"
)

// Config holds all application configuration.
type Config struct {
	Source SourceConfig `koanf:"source"`
	Upload UploadConfig `koanf:"upload"`
	S3     S3Config     `koanf:"s3"`
	View   ViewConfig   `koanf:"view"`
	Logger LoggerConfig `koanf:"log"`
}

// SourceConfig selects where the product list is fetched from.
type SourceConfig struct {
	Backend  string        `koanf:"backend" validate:"oneof=http file s3"`
	URL      string        `koanf:"url" validate:"omitempty,url"`
	Path     string        `koanf:"path"`
	Key      string        `koanf:"key"`
	Fallback string        `koanf:"fallback"` // local snapshot used when the backend fails
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
}

// UploadConfig selects where product images are uploaded.
type UploadConfig struct {
	Backend  string        `koanf:"backend" validate:"oneof=http s3"`
	URL      string        `koanf:"url" validate:"omitempty,url"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxBytes int64         `koanf:"maxbytes" validate:"gt=0"`
}

// S3Config holds AWS S3 configuration shared by the S3 backends.
type S3Config struct {
	Bucket string `koanf:"bucket"`
	Region string `koanf:"region"`
	Prefix string `koanf:"prefix"` // key prefix for uploaded images (e.g., "images/")
}

// ViewConfig holds catalog view configuration.
type ViewConfig struct {
	PageSize int `koanf:"pagesize" validate:"min=1,max=100"`
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "console"
}

// Location returns the product location for the configured backend.
func (c SourceConfig) Location() string {
	switch c.Backend {
	case BackendFile:
		return c.Path
	case BackendS3:
		return c.Key
	default:
		return c.URL
	}
}

func defaults() map[string]any {
	return map[string]any{
		"source.backend":  BackendHTTP,
		"source.url":      "https://fakestoreapi.com/products",
		"source.path":     "data/products.json.gz",
		"source.key":      "catalog/products.json.gz",
		"source.fallback": "",
		"source.timeout":  10 * time.Second,
		"upload.backend":  BackendHTTP,
		"upload.url":      "https://api.escuelajs.co/api/v1/files/upload",
		"upload.timeout":  30 * time.Second,
		"upload.maxbytes": int64(5 << 20),
		"s3.bucket":       "",
		"s3.region":       "us-east-1",
		"s3.prefix":       "images/",
		"view.pagesize":   10,
		"log.level":       "warn",
		"log.format":      "console",
	}
}

// Load reads the configuration. Sources are applied in increasing priority:
// built-in defaults, the optional YAML file, the optional .env file, then
// CATALOG_* environment variables (CATALOG_SOURCE_URL sets source.url).
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configFile == "" {
		configFile = DefaultConfigFile
	}
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading YAML config file '%s': %w", configFile, err)
		}
	}

	if envFileMap, err := godotenv.Read(defaultEnvFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if strings.HasPrefix(key, envPrefix) {
				envMap[envKey(key)] = value
			}
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			return nil, fmt.Errorf("error loading .env config: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// envKey maps CATALOG_SOURCE_URL to source.url.
func envKey(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "_", ".")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid %s: %v (failed %q)", strings.ToLower(fe.Namespace()), fe.Value(), fe.Tag())
		}
		return err
	}

	switch c.Source.Backend {
	case BackendHTTP:
		if c.Source.URL == "" {
			return fmt.Errorf("source URL is required for the http backend")
		}
	case BackendFile:
		if c.Source.Path == "" {
			return fmt.Errorf("source path is required for the file backend")
		}
	case BackendS3:
		if c.Source.Key == "" {
			return fmt.Errorf("source key is required for the s3 backend")
		}
	}

	if c.Upload.Backend == BackendHTTP && c.Upload.URL == "" {
		return fmt.Errorf("upload URL is required for the http backend")
	}

	if c.Source.Backend == BackendS3 || c.Upload.Backend == BackendS3 {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when an S3 backend is selected")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when an S3 backend is selected")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// String renders the configuration for startup logs.
func (c *Config) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "source.backend=%s source.location=%s source.fallback=%s source.timeout=%s ",
		c.Source.Backend, c.Source.Location(), orNone(c.Source.Fallback), c.Source.Timeout)
	fmt.Fprintf(&b, "upload.backend=%s upload.url=%s upload.timeout=%s upload.maxbytes=%d ",
		c.Upload.Backend, orNone(c.Upload.URL), c.Upload.Timeout, c.Upload.MaxBytes)
	fmt.Fprintf(&b, "s3.bucket=%s s3.region=%s s3.prefix=%s view.pagesize=%d log.level=%s",
		orNone(c.S3.Bucket), c.S3.Region, c.S3.Prefix, c.View.PageSize, c.Logger.Level)

	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "<not configured>"
	}
	return s
}
