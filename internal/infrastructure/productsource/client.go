// Package productsource adapts a remote product-search API into the
// recommendation.ProductSource contract, adding throttling, caching and a
// circuit breaker around the remote call.
package productsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"giftguru-backend/internal/domain/recommendation"
	"giftguru-backend/internal/infrastructure/observability"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrUnavailable is returned when the client has no endpoint or credentials.
var ErrUnavailable = errors.New("product source unavailable")

// ErrThrottled is returned when the caller's context ends before the rate
// limiter admits the call.
var ErrThrottled = errors.New("product source throttled")

// StatusError is a non-200 response from the remote API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("product search: status %d: %s", e.Code, e.Body)
}

// HTTPClient is satisfied by *http.Client and lets tests stub the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig configures the remote client.
type ClientConfig struct {
	Endpoint    string
	APIKey      string
	PartnerTag  string
	Marketplace string
	// MinInterval is the minimum spacing between two remote calls.
	MinInterval time.Duration
	Timeout     time.Duration
}

// Client calls the remote search endpoint.
type Client struct {
	config     ClientConfig
	httpClient HTTPClient
	limiter    *rate.Limiter
	metrics    *observability.Collector
	logger     *zap.Logger

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient creates a client. A nil httpClient uses http.Client with the
// configured timeout.
func NewClient(config ClientConfig, httpClient HTTPClient, metrics *observability.Collector, logger *zap.Logger) *Client {
	if config.MinInterval <= 0 {
		config.MinInterval = 1500 * time.Millisecond
	}
	if config.Timeout <= 0 {
		config.Timeout = 3 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(config.MinInterval), 1),
		metrics:    metrics,
		logger:     logger,
	}
}

// Available reports whether the client is configured to make calls.
func (c *Client) Available() bool {
	return c.config.Endpoint != "" && c.config.APIKey != ""
}

// LastRequest returns when the last remote call started.
func (c *Client) LastRequest() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRequest
}

// MinInterval returns the throttle spacing.
func (c *Client) MinInterval() time.Duration { return c.config.MinInterval }

// Search runs one remote query. Unparseable items are dropped and logged.
func (c *Client) Search(ctx context.Context, query recommendation.SearchQuery) ([]recommendation.ExternalProduct, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThrottled, err)
	}

	c.mu.Lock()
	c.lastRequest = time.Now()
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: snippet}
	}

	outcomes, err := ParseSearchResponse(body)
	if err != nil {
		return nil, err
	}

	products, skipped := Partition(outcomes)
	for _, reason := range skipped {
		c.logger.Debug("Skipped external item", zap.String("reason", reason))
	}
	c.metrics.AddExternalSkipped(len(skipped))

	c.logger.Info("External product search completed",
		zap.String("keywords", query.Keywords),
		zap.Int("found", len(products)),
		zap.Int("skipped", len(skipped)),
	)
	return products, nil
}

func (c *Client) searchURL(q recommendation.SearchQuery) string {
	params := url.Values{}
	params.Set("keywords", q.Keywords)
	if q.MaxResults > 0 {
		params.Set("itemCount", strconv.Itoa(q.MaxResults))
	}
	if q.MinPrice > 0 {
		params.Set("minPrice", strconv.Itoa(int(q.MinPrice*100)))
	}
	if q.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(int(q.MaxPrice*100)))
	}
	if c.config.PartnerTag != "" {
		params.Set("partnerTag", c.config.PartnerTag)
	}
	if c.config.Marketplace != "" {
		params.Set("marketplace", c.config.Marketplace)
	}
	return strings.TrimRight(c.config.Endpoint, "/") + "/search?" + params.Encode()
}
