package wargamer

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/wargamer/cache"
)

// Option configures a Client.
type Option func(*Client) error

// WithAccessToken sets the access token sent with every request.
func WithAccessToken(token string) Option {
	return func(c *Client) error {
		if token == "" {
			err := errors.New(errors.CodeInvalidInput, "access token cannot be empty")
			return errors.WithContext(err, "field", "access_token")
		}
		c.accessToken = token
		return nil
	}
}

// WithLanguage sets the default response language, e.g. "en".
func WithLanguage(language string) Option {
	return func(c *Client) error {
		if language == "" {
			err := errors.New(errors.CodeInvalidInput, "language cannot be empty")
			return errors.WithContext(err, "field", "language")
		}
		c.language = strings.ToLower(language)
		return nil
	}
}

// WithRequester replaces the transport used to reach the API.
func WithRequester(requester Requester) Option {
	return func(c *Client) error {
		if requester == nil {
			err := errors.New(errors.CodeInvalidInput, "requester cannot be nil")
			return errors.WithContext(err, "field", "requester")
		}
		c.requester = requester
		return nil
	}
}

// WithHTTPClient sets the HTTP client used by the default requester.
// It has no effect when WithRequester is also given.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) error {
		if client == nil {
			err := errors.New(errors.CodeInvalidInput, "HTTP client cannot be nil")
			return errors.WithContext(err, "field", "http_client")
		}
		c.httpClient = client
		return nil
	}
}

// WithUserAgent sets the User-Agent header of the default requester.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		c.userAgent = userAgent
		return nil
	}
}

// WithEndpoints replaces the realm/product to base URI mapping.
func WithEndpoints(endpoints EndpointResolver) Option {
	return func(c *Client) error {
		if endpoints == nil {
			err := errors.New(errors.CodeInvalidInput, "endpoint resolver cannot be nil")
			return errors.WithContext(err, "field", "endpoints")
		}
		c.endpoints = endpoints
		return nil
	}
}

// WithCacheManager sets the registry holding the client's search index and
// translation caches. Clients given the same manager and cache prefix share
// those caches.
func WithCacheManager(manager *cache.Manager) Option {
	return func(c *Client) error {
		if manager == nil {
			err := errors.New(errors.CodeInvalidInput, "cache manager cannot be nil")
			return errors.WithContext(err, "field", "cache_manager")
		}
		c.manager = manager
		return nil
	}
}

// WithCachePrefix sets the prefix of the client's cache identifiers.
// Defaults to "<product>:<realm>".
func WithCachePrefix(prefix string) Option {
	return func(c *Client) error {
		if prefix == "" {
			err := errors.New(errors.CodeInvalidInput, "cache prefix cannot be empty")
			return errors.WithContext(err, "field", "cache_prefix")
		}
		c.cachePrefix = prefix
		return nil
	}
}

// WithResponseCache configures the GET response cache. A size of zero
// disables it; a TTL of zero keeps responses until they are displaced.
func WithResponseCache(size int, ttl time.Duration) Option {
	return func(c *Client) error {
		if size < 0 {
			err := errors.New(errors.CodeInvalidInput, "response cache size cannot be negative")
			return errors.WithContext(err, "field", "response_cache.max_entries")
		}
		if ttl < 0 {
			err := errors.New(errors.CodeInvalidInput, "response cache TTL cannot be negative")
			return errors.WithContext(err, "field", "response_cache.ttl")
		}
		c.responseCacheSize = size
		c.responseCacheTTL = ttl
		return nil
	}
}

// WithIndexTTL sets how long search indexes and translation tables are kept.
// Zero keeps them for the life of the cache.
func WithIndexTTL(ttl time.Duration) Option {
	return func(c *Client) error {
		if ttl < 0 {
			err := errors.New(errors.CodeInvalidInput, "index TTL cannot be negative")
			return errors.WithContext(err, "field", "index_ttl")
		}
		c.indexTTL = ttl
		return nil
	}
}

// WithSearchThreshold sets the highest fuzzy score accepted when resolving
// names, between 0 (exact) and 1 (anything).
func WithSearchThreshold(threshold float64) Option {
	return func(c *Client) error {
		if threshold < 0 || threshold > 1 {
			err := errors.New(errors.CodeInvalidInput, "search threshold must be between 0 and 1")
			return errors.WithContext(err, "field", "search_threshold")
		}
		c.threshold = threshold
		return nil
	}
}

// WithLogger sets the client's logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			err := errors.New(errors.CodeInvalidInput, "logger cannot be nil")
			return errors.WithContext(err, "field", "logger")
		}
		c.logger = logger
		return nil
	}
}

// RequestOption overrides client defaults for a single request.
type RequestOption func(*requestConfig)

type requestConfig struct {
	realm   Realm
	product Product
}

// ForRealm sends the request to another realm.
func ForRealm(realm Realm) RequestOption {
	return func(cfg *requestConfig) {
		cfg.realm = Realm(strings.ToLower(string(realm)))
	}
}

// ForProduct sends the request to another product's API.
func ForProduct(product Product) RequestOption {
	return func(cfg *requestConfig) {
		cfg.product = Product(strings.ToLower(string(product)))
	}
}
