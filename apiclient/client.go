// Package apiclient is the authenticated HTTP client every clinic data
// consumer goes through. It attaches the bearer token from the session store,
// translates failed responses into APIError values, and recovers from expired
// tokens with a single-flight refresh that queues concurrent failures.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/clinic-admin-client/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	defaultRefreshPath    = "/auth/refresh"
	defaultRefreshTimeout = 15 * time.Second
	defaultRequestTimeout = 30 * time.Second
	defaultReplayLimit    = 4
)

// Requester is the verb surface consumed by the domain packages.
// out receives the decoded JSON body and may be nil.
type Requester interface {
	Get(ctx context.Context, path string, out any, opts ...RequestOption) error
	Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error
	Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error
	Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error
	Delete(ctx context.Context, path string, out any, opts ...RequestOption) error
}

var _ Requester = (*Client)(nil)

type Client struct {
	baseURL        string
	store          *session.Store
	httpClient     *http.Client
	logger         zerolog.Logger
	refreshPath    string
	refreshTimeout time.Duration
	limiter        *rate.Limiter
	replayLimit    int
	metrics        *Metrics
	newRequestID   func() string

	refresh refreshCoordinator
}

// New creates a client for the API rooted at baseURL (scheme, host and an
// optional path prefix such as "/api").
func New(baseURL string, store *session.Store, options ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: expected http(s)://host", baseURL)
	}
	if store == nil {
		return nil, fmt.Errorf("apiclient.New: session store is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	ret := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		store:          store,
		httpClient:     &http.Client{Jar: jar, Timeout: defaultRequestTimeout},
		logger:         log.Logger,
		refreshPath:    defaultRefreshPath,
		refreshTimeout: defaultRefreshTimeout,
		replayLimit:    defaultReplayLimit,
		newRequestID:   uuid.NewString,
	}

	for _, opt := range options {
		opt(ret)
	}
	if ret.metrics == nil {
		ret.metrics = NewMetrics(nil)
	}

	return ret, nil
}

func (c *Client) Store() *session.Store {
	return c.store
}

func (c *Client) Metrics() *Metrics {
	return c.metrics
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPatch, path, body, out, opts)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts []RequestOption) error {
	desc, err := c.newDescriptor(method, path, body, opts)
	if err != nil {
		return err
	}

	token, err := c.store.AccessToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.send(ctx, desc, token)
	if err != nil {
		return err
	}

	if isAuthFailure(res.status) && !desc.noRefresh {
		if res, err = c.recoverAuth(ctx, desc, token); err != nil {
			return err
		}
	}

	return c.handle(ctx, res, out)
}
