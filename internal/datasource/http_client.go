package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HTTPClientConfig tunes the outbound client shared by all draw-results
// sources.
type HTTPClientConfig struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// RateLimit caps outbound requests per second. Results endpoints
	// publish a handful of draws a day; stay polite.
	RateLimit float64
	// BreakerThreshold is the number of consecutive failures after which
	// the client stops issuing requests until a success resets it.
	BreakerThreshold int
	UserAgent        string
}

// DefaultHTTPClientConfig returns the defaults used for draw-results sources.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:          20 * time.Second,
		MaxRetries:       4,
		RetryWaitMin:     250 * time.Millisecond,
		RetryWaitMax:     15 * time.Second,
		RateLimit:        2.0,
		BreakerThreshold: 5,
		UserAgent:        "draw-advisor/1.0 (results sync)",
	}
}

// RateLimitedHTTPClient is the outbound HTTP client for draw-results
// sources: retrying with backoff, rate limited, and guarded by a
// consecutive-failure breaker so a dead upstream is not hammered between
// scheduled syncs.
type RateLimitedHTTPClient struct {
	client    *retryablehttp.Client
	limiter   *rate.Limiter
	userAgent string
	log       *logrus.Logger

	mu        sync.Mutex
	threshold int
	failures  int
	open      bool
	lastErr   error
}

// NewRateLimitedHTTPClient creates the shared results-fetching client. A nil
// logger discards breaker warnings.
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, log *logrus.Logger) *RateLimitedHTTPClient {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.RetryMax = cfg.MaxRetries
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.CheckRetry = resultsRetryPolicy
	rc.Logger = nil

	return &RateLimitedHTTPClient{
		client:    rc,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		userAgent: cfg.UserAgent,
		log:       log,
		threshold: cfg.BreakerThreshold,
	}
}

// Do executes a request under the rate limit and breaker.
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	if c.open {
		lastErr := c.lastErr
		c.mu.Unlock()
		return nil, fmt.Errorf("results source unavailable, breaker open: %v", lastErr)
	}
	c.mu.Unlock()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	retryReq, err := retryablehttp.FromRequest(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to build retryable request: %w", err)
	}

	resp, err := c.client.Do(retryReq)
	if err != nil {
		c.recordFailure(err)
		return nil, err
	}

	if resp.StatusCode < 500 {
		c.recordSuccess()
	}
	return resp, nil
}

// Get executes a GET request
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Post executes a POST request
func (c *RateLimitedHTTPClient) Post(ctx context.Context, url string, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.Do(ctx, req)
}

// Close closes idle connections held by the client
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

func (c *RateLimitedHTTPClient) recordFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures++
	c.lastErr = err
	if c.threshold > 0 && c.failures >= c.threshold && !c.open {
		c.open = true
		c.log.WithError(err).WithField("consecutive_failures", c.failures).
			Warn("Results source breaker opened")
	}
}

func (c *RateLimitedHTTPClient) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures = 0
	c.open = false
}

// resultsRetryPolicy retries network failures, throttling, and upstream 5xx
// responses; other client errors fail immediately.
func resultsRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err != nil {
		return true, err
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}
