package wargamer

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"
)

// Config is the file representation of a client's settings.
//
// Example:
//
//	product: wot
//	realm: eu
//	application_id: ${WARGAMING_APPLICATION_ID}
//	language: en
//	response_cache:
//	  ttl: 10m
//	  max_entries: 250
//	index_ttl: 1h
//	log_level: info
type Config struct {
	Product         string              `yaml:"product"`
	Realm           string              `yaml:"realm"`
	ApplicationID   string              `yaml:"application_id"`
	AccessToken     string              `yaml:"access_token"`
	Language        string              `yaml:"language"`
	ResponseCache   ResponseCacheConfig `yaml:"response_cache"`
	IndexTTL        time.Duration       `yaml:"index_ttl"`
	SearchThreshold float64             `yaml:"search_threshold"`
	LogLevel        string              `yaml:"log_level"`
}

// ResponseCacheConfig holds the GET response cache settings.
type ResponseCacheConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"` // 0 disables the cache
}

// DefaultConfig returns a Config with the library defaults. Product, realm
// and application ID have no default.
func DefaultConfig() Config {
	return Config{
		ResponseCache: ResponseCacheConfig{
			TTL:        DefaultResponseCacheTTL,
			MaxEntries: DefaultResponseCacheSize,
		},
		IndexTTL:        DefaultIndexTTL,
		SearchThreshold: defaultThreshold,
	}
}

// LoadConfig reads a YAML config file. Environment variables written as
// ${NAME} or $NAME are expanded before parsing. A missing or empty file
// yields the defaults; unknown fields are an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, errors.WithContext(
			errors.Wrap(err, errors.CodeInvalidConfig, "failed to read config file"),
			"path", path,
		)
	}

	if err := decodeConfig(data, &cfg); err != nil {
		return nil, errors.WithContext(err, "path", path)
	}
	return &cfg, nil
}

// ParseConfig parses YAML config data the way LoadConfig does.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeConfig(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	if len(bytes.TrimSpace([]byte(expanded))) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// Comment-only documents decode to EOF.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrap(err, errors.CodeInvalidConfig, "failed to parse config")
	}
	return nil
}

// Validate checks that the config describes a usable client.
func (c *Config) Validate() error {
	if _, err := ParseProduct(c.Product); err != nil {
		return err
	}
	if _, err := ParseRealm(c.Realm); err != nil {
		return err
	}
	if c.ApplicationID == "" {
		err := errors.New(errors.CodeInvalidConfig, "application_id cannot be empty")
		return errors.WithContext(err, "field", "application_id")
	}
	if c.ResponseCache.MaxEntries < 0 {
		err := errors.New(errors.CodeInvalidConfig, "response_cache.max_entries cannot be negative")
		return errors.WithContext(err, "field", "response_cache.max_entries")
	}
	if c.ResponseCache.TTL < 0 {
		err := errors.New(errors.CodeInvalidConfig, "response_cache.ttl cannot be negative")
		return errors.WithContext(err, "field", "response_cache.ttl")
	}
	if c.IndexTTL < 0 {
		err := errors.New(errors.CodeInvalidConfig, "index_ttl cannot be negative")
		return errors.WithContext(err, "field", "index_ttl")
	}
	if c.SearchThreshold < 0 || c.SearchThreshold > 1 {
		err := errors.New(errors.CodeInvalidConfig, "search_threshold must be between 0 and 1")
		return errors.WithContext(err, "field", "search_threshold")
	}
	if c.LogLevel != "" {
		if _, err := c.level(); err != nil {
			return err
		}
	}
	return nil
}

// Options converts the config into client options. Call Validate first.
func (c *Config) Options() ([]Option, error) {
	opts := []Option{
		WithResponseCache(c.ResponseCache.MaxEntries, c.ResponseCache.TTL),
		WithIndexTTL(c.IndexTTL),
		WithSearchThreshold(c.SearchThreshold),
	}
	if c.AccessToken != "" {
		opts = append(opts, WithAccessToken(c.AccessToken))
	}
	if c.Language != "" {
		opts = append(opts, WithLanguage(c.Language))
	}
	if c.LogLevel != "" {
		level, err := c.level()
		if err != nil {
			return nil, err
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		opts = append(opts, WithLogger(slog.New(handler)))
	}
	return opts, nil
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, errors.WithContext(
			errors.Wrap(err, errors.CodeInvalidConfig, "invalid log_level"),
			"field", "log_level",
		)
	}
	return level, nil
}

// NewFromConfig validates cfg and creates a client from it. Options given
// here are applied after the config's own.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfgOpts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	return New(Product(cfg.Product), Realm(cfg.Realm), cfg.ApplicationID, append(cfgOpts, opts...)...)
}
