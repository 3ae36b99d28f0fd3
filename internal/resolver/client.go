package resolver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/ratelimiter"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"seqfetch/internal/logging"
	"seqfetch/internal/services"
)

const userAgent = "seqfetch/1.0 (https://github.com/gardiner-lab/seqfetch)"

// Options describes resolver client construction parameters.
type Options struct {
	// BaseURL is the E-utilities endpoint root, without trailing slash.
	BaseURL string
	// RequestDelay is the minimum spacing between remote calls.
	RequestDelay time.Duration
	// MaxAttempts bounds attempts per remote call.
	MaxAttempts int
	// Timeout applies per HTTP request.
	Timeout time.Duration
	// HTTPClient overrides the default client, primarily for tests.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client resolves GEO series identifiers against the NCBI E-utilities API.
// Every remote call is paced by a shared rate limiter and retried with
// exponential backoff.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	limiter ratelimiter.RateLimiter[any]
	retry   retrypolicy.RetryPolicy[[]byte]
}

// New constructs a resolver client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "resolver", "new", "base URL required", nil)
	}
	delay := opts.RequestDelay
	if delay <= 0 {
		delay = 340 * time.Millisecond
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := logging.NewComponentLogger(opts.Logger, "resolver")

	retry := retrypolicy.NewBuilder[[]byte]().
		WithMaxAttempts(attempts).
		WithBackoff(delay, delay*16).
		OnRetry(func(e failsafe.ExecutionEvent[[]byte]) {
			logger.Warn("remote call retrying",
				logging.Int("attempt", e.Attempts()),
				logging.Error(e.LastError()))
		}).
		Build()

	return &Client{
		baseURL: opts.BaseURL,
		http:    httpClient,
		logger:  logger,
		limiter: ratelimiter.NewSmoothBuilderWithMaxRate[any](delay).Build(),
		retry:   retry,
	}, nil
}

// fetch performs one rate-limited, retried GET against an E-utilities
// endpoint and returns the raw response body.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	return failsafe.With[[]byte](c.retry).WithContext(ctx).Get(func() ([]byte, error) {
		if err := c.limiter.AcquirePermit(ctx); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "resolver", endpoint, "request failed", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, services.Wrap(services.ErrTransient, "resolver", endpoint,
				fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "resolver", endpoint, "read body", err)
		}
		return body, nil
	})
}
