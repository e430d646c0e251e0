package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"gteKit/internal/cache"
	"gteKit/internal/metrics"
)

const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	// MaxRetries is the number of retries after the first attempt.
	// Zero selects DefaultMaxRetries; a negative value disables retries.
	MaxRetries int
	// RetryDelay is the base of the linear backoff. Zero selects DefaultRetryDelay.
	RetryDelay time.Duration
	// RateLimit is the minimum spacing between requests. Zero disables it.
	RateLimit time.Duration
	Headers   map[string]string
	// Cache, when set, stores successful GET bodies for CacheTTL.
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// Client is a JSON-over-HTTP client for the market data API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	rateLimit  time.Duration
	headers    map[string]string
	cache      cache.Cache
	cacheTTL   time.Duration
	cacheScope string
	logger     *zap.Logger

	mu       sync.Mutex
	nextSlot time.Time
}

// New validates opts and builds a Client.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("rest base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	c := &Client{
		baseURL:    base,
		httpClient: opts.HTTPClient,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		rateLimit:  opts.RateLimit,
		headers:    map[string]string{"Content-Type": "application/json"},
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		logger:     opts.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.maxRetries == 0 {
		c.maxRetries = DefaultMaxRetries
	} else if c.maxRetries < 0 {
		c.maxRetries = 0
	}
	if c.retryDelay == 0 {
		c.retryDelay = DefaultRetryDelay
	}
	if c.rateLimit < 0 {
		c.rateLimit = 0
	}
	for k, v := range opts.Headers {
		c.headers[http.CanonicalHeaderKey(k)] = v
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.cacheScope = cacheScope(c.baseURL, c.headers)
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches path with query and decodes the JSON body into out.
// A 204 or empty body leaves out untouched and returns nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.buildURL(path, query)
	key := cache.ResponseKey(c.cacheScope, path, query.Encode())

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Warn("response cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			metrics.RestCacheHits.Inc()
			return decodeBody(path, body, out)
		}
	}

	if err := c.wait(ctx); err != nil {
		return err
	}

	var body []byte
	err := withRetry(ctx, c.maxRetries, c.retryDelay, isRetryable,
		func(attempt int, err error) {
			metrics.RestRetries.Inc()
			c.logger.Warn("retrying request",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		},
		func(ctx context.Context) error {
			var err error
			body, err = c.do(ctx, http.MethodGet, path, endpoint)
			return err
		},
	)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	if err := decodeBody(path, body, out); err != nil {
		return err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
			c.logger.Warn("response cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RestLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RestRequests.WithLabelValues(method, "0").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	metrics.RestRequests.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TransportError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       errorBody(body),
		}
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	return body, nil
}

// wait blocks until the next rate-limit slot. Slots are reserved under the
// lock so concurrent callers are spaced out rather than released together.
func (c *Client) wait(ctx context.Context) error {
	if c.rateLimit <= 0 {
		return nil
	}
	c.mu.Lock()
	now := time.Now()
	slot := c.nextSlot
	if slot.Before(now) {
		slot = now
	}
	c.nextSlot = slot.Add(c.rateLimit)
	c.mu.Unlock()

	return sleep(ctx, time.Until(slot))
}

// cacheScope is the base URL plus a digest of the request headers.
func cacheScope(baseURL string, headers map[string]string) string {
	names := make([]string, 0, len(headers))
	for k := range headers {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(headers[name])
		b.WriteByte('\n')
	}
	digest := crypto.Keccak256Hash([]byte(b.String()))
	return baseURL + "#" + digest.Hex()[2:18]
}

func (c *Client) buildURL(path string, query url.Values) string {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	return endpoint
}

// errorBody renders a JSON error body compactly and anything else trimmed.
func errorBody(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err == nil {
		return buf.String()
	}
	return strings.TrimSpace(string(body))
}

func decodeBody(path string, body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

func isRetryable(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
