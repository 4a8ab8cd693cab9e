package wargamer

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/wargamer/cache"
)

const (
	// DefaultResponseCacheSize is the default number of GET responses kept.
	DefaultResponseCacheSize = 250
	// DefaultResponseCacheTTL is how long a GET response is served from cache.
	DefaultResponseCacheTTL = 10 * time.Minute
	// DefaultIndexTTL is how long a search index or translation table is kept.
	DefaultIndexTTL = time.Hour
)

// Client is a client for one Wargaming.net API product in one realm.
//
// Example usage:
//
//	client, err := wargamer.New(wargamer.ProductWorldOfTanks, wargamer.RealmEU, "my-app-id")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get(ctx, "account/list", wargamer.Params{"search": "player"})
//
// A Client is safe for concurrent use.
type Client struct {
	product       Product
	realm         Realm
	applicationID string
	language      string

	mu          sync.RWMutex
	accessToken string

	endpoints  EndpointResolver
	requester  Requester
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger

	responseCacheSize int
	responseCacheTTL  time.Duration
	responses         *expirable.LRU[uint64, *Response]

	manager     *cache.Manager
	cachePrefix string
	indexTTL    time.Duration
	threshold   float64

	resolver  *Resolver
	localizer *Localizer
}

// New creates a client for product in realm. The realm is case-insensitive.
func New(product Product, realm Realm, applicationID string, opts ...Option) (*Client, error) {
	p, err := ParseProduct(string(product))
	if err != nil {
		return nil, err
	}
	r, err := ParseRealm(string(realm))
	if err != nil {
		return nil, err
	}
	if applicationID == "" {
		err := errors.New(errors.CodeInvalidInput, "application ID cannot be empty")
		return nil, errors.WithContext(err, "field", "application_id")
	}

	c := &Client{
		product:           p,
		realm:             r,
		applicationID:     applicationID,
		endpoints:         DefaultEndpoints{},
		logger:            slog.New(slog.DiscardHandler),
		responseCacheSize: DefaultResponseCacheSize,
		responseCacheTTL:  DefaultResponseCacheTTL,
		indexTTL:          DefaultIndexTTL,
		threshold:         defaultThreshold,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.requester == nil {
		c.requester = NewHTTPRequester(c.httpClient, c.userAgent)
	}
	if c.responseCacheSize > 0 {
		c.responses = expirable.NewLRU[uint64, *Response](c.responseCacheSize, nil, c.responseCacheTTL)
	}
	if c.manager == nil {
		c.manager = cache.NewManager()
	}
	if c.cachePrefix == "" {
		c.cachePrefix = string(c.product) + ":" + string(c.realm)
	}

	c.resolver = NewResolver(c, c.namedCache("names"),
		WithResolverThreshold(c.threshold),
		WithResolverLogger(c.logger),
	)
	c.localizer = NewLocalizer(c, c.namedCache("meta"), c.logger)

	return c, nil
}

// namedCache returns the "<prefix>:<name>" cache, creating it when the
// manager does not hold one yet.
func (c *Client) namedCache(name string) *cache.Cache {
	id := c.cachePrefix + ":" + name
	cc, loaded := c.manager.LoadOrCreate(id,
		cache.WithTimeToLive(c.indexTTL),
		cache.WithEvictionHook(cache.EvictionLogger(c.logger, id)),
	)
	if !loaded {
		c.logger.Debug("created cache", "cache", id, "ttl", c.indexTTL)
	}
	return cc
}

// Product returns the client's product.
func (c *Client) Product() Product {
	return c.product
}

// Realm returns the client's realm.
func (c *Client) Realm() Realm {
	return c.realm
}

// Language returns the default response language, or "" for the API default.
func (c *Client) Language() string {
	return c.language
}

// AccessToken returns the current access token, or "" if none is set.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetAccessToken replaces the access token sent with every request.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// CacheManager returns the registry holding the client's caches.
func (c *Client) CacheManager() *cache.Manager {
	return c.manager
}

// Resolver returns the client's entity resolver.
func (c *Client) Resolver() *Resolver {
	return c.resolver
}

// Localizer returns the client's slug localizer.
func (c *Client) Localizer() *Localizer {
	return c.localizer
}

// Authentication returns the access token operations for this client.
func (c *Client) Authentication() *Authentication {
	return &Authentication{client: c}
}

// Get sends a GET request for method. Successful responses are served from
// the response cache when possible.
func (c *Client) Get(ctx context.Context, method string, params Params, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodGet, method, params, opts)
}

// Post sends a POST request for method. POST responses are never cached.
func (c *Client) Post(ctx context.Context, method string, params Params, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodPost, method, params, opts)
}

// request describes one outgoing call.
type request struct {
	httpMethod string
	method     string
	realm      Realm
	product    Product
}

func (c *Client) do(ctx context.Context, httpMethod, method string, params Params, opts []RequestOption) (*Response, error) {
	cfg := requestConfig{realm: c.realm, product: c.product}
	for _, opt := range opts {
		opt(&cfg)
	}

	req := request{
		httpMethod: httpMethod,
		method:     normalizeMethod(method),
		realm:      cfg.realm,
		product:    cfg.product,
	}
	if req.method == "" {
		err := errors.New(errors.CodeInvalidInput, "API method cannot be empty")
		return nil, errors.WithContext(err, "field", "method")
	}

	base, err := c.endpoints.BaseURI(req.realm, req.product)
	if err != nil {
		return nil, err
	}
	rawURL := methodURL(base, req.method)
	values := merge(c.defaults(), params).encode()

	logger := c.logger.With("method", req.method, "realm", string(req.realm), "product", string(req.product))

	var key uint64
	cacheable := httpMethod == http.MethodGet && c.responses != nil
	if cacheable {
		key = responseKey(rawURL, values)
		if resp, ok := c.responses.Get(key); ok {
			logger.DebugContext(ctx, "response cache hit")
			return resp, nil
		}
	}

	raw, err := c.requester.Send(ctx, rawURL, httpMethod, values)
	if err != nil {
		err = wrapTransportError(ctx, &TransportError{
			Method:  req.method,
			Realm:   req.realm,
			Product: req.product,
			Err:     err,
		})
		logger.WarnContext(ctx, "request failed", "error", err)
		return nil, err
	}

	resp, err := parseResponse(raw, req)
	if err != nil {
		var apiErr *APIError
		var tErr *TransportError
		switch {
		case errors.As(err, &apiErr):
			err = wrapAPIError(apiErr)
		case errors.As(err, &tErr):
			err = wrapTransportError(ctx, tErr)
		}
		logger.WarnContext(ctx, "request failed", "status", raw.StatusCode, "error", err)
		return nil, err
	}

	if cacheable {
		c.responses.Add(key, resp)
	}
	logger.DebugContext(ctx, "request completed", "status", raw.StatusCode)

	return resp, nil
}

// defaults returns the parameters sent with every request.
func (c *Client) defaults() Params {
	p := Params{"application_id": c.applicationID}
	if token := c.AccessToken(); token != "" {
		p["access_token"] = token
	}
	if c.language != "" {
		p["language"] = c.language
	}
	return p
}

// PurgeResponses empties the GET response cache.
func (c *Client) PurgeResponses() {
	if c.responses != nil {
		c.responses.Purge()
	}
}
