package apiclient

import (
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type Option func(*Client)

// WithHTTPClient replaces the default http.Client. Supply a Jar when the
// backend keeps its refresh credential in a cookie.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRefreshPath sets the path of the token refresh endpoint
func WithRefreshPath(path string) Option {
	return func(c *Client) {
		c.refreshPath = path
	}
}

// WithRefreshTimeout bounds each refresh call. Zero or negative values are ignored.
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.refreshTimeout = timeout
		}
	}
}

// WithRateLimiter makes every outgoing call wait on limiter first
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithReplayLimit caps how many queued requests are replayed in parallel after a refresh
func WithReplayLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.replayLimit = n
		}
	}
}

// WithMetrics sets metrics
func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithRequestIDFunc overrides how X-Request-ID values are generated
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		c.newRequestID = fn
	}
}

// RequestOption customises a single call
type RequestOption func(*requestOptions)

type requestOptions struct {
	header    http.Header
	query     url.Values
	noRefresh bool
}

// WithHeader sets (or overrides) a header on the request
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.header.Set(key, value)
	}
}

// WithQuery appends query parameters to the path
func WithQuery(values url.Values) RequestOption {
	return func(o *requestOptions) {
		for k, vs := range values {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithoutRefresh returns a 401/403 to the caller as an APIError instead of
// refreshing the token. Used for calls that authenticate, such as login.
func WithoutRefresh() RequestOption {
	return func(o *requestOptions) {
		o.noRefresh = true
	}
}
