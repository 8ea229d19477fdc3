package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

// State of the refresh protocol
type State int

const (
	StateIdle State = iota
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRefreshing:
		return "REFRESHING"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// pendingRequest is a call that hit 401/403 while a refresh was in flight.
// result is buffered so the replay never blocks on a caller that gave up.
type pendingRequest struct {
	ctx    context.Context
	desc   *requestDescriptor
	result chan outcome
}

type outcome struct {
	res *response
	err error
}

// refreshCoordinator keeps refreshes single-flight: at most one refresh
// runs at a time and everything that fails meanwhile waits in queue.
type refreshCoordinator struct {
	mu    sync.Mutex
	state State
	queue []*pendingRequest
}

// State reports whether a refresh is in flight
func (c *Client) State() State {
	c.refresh.mu.Lock()
	defer c.refresh.mu.Unlock()
	return c.refresh.state
}

// Pending reports how many requests are waiting on the in-flight refresh
func (c *Client) Pending() int {
	c.refresh.mu.Lock()
	defer c.refresh.mu.Unlock()
	return len(c.refresh.queue)
}

// recoverAuth handles a 401/403 for desc, which was sent with usedToken.
// It returns the response of the single retry, or the refresh error.
func (c *Client) recoverAuth(ctx context.Context, desc *requestDescriptor, usedToken string) (*response, error) {
	c.refresh.mu.Lock()

	if c.refresh.state == StateRefreshing {
		p := &pendingRequest{ctx: ctx, desc: desc, result: make(chan outcome, 1)}
		c.refresh.queue = append(c.refresh.queue, p)
		c.refresh.mu.Unlock()

		c.metrics.Queued.Inc()
		c.logger.Debug().Str("method", desc.method).Str("url", desc.url).Msg("Queued request behind token refresh")

		select {
		case o := <-p.result:
			return o.res, o.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// A refresh completed after this request read its token: retry with the
	// stored token rather than starting a second refresh for the same wave.
	current, err := c.store.AccessToken(ctx)
	if err != nil {
		c.refresh.mu.Unlock()
		return nil, err
	}
	if current != "" && current != usedToken {
		c.refresh.mu.Unlock()
		return c.send(ctx, desc, current)
	}

	c.refresh.state = StateRefreshing
	c.refresh.mu.Unlock()

	token, refreshErr := c.refreshToken(ctx)

	c.refresh.mu.Lock()
	queue := c.refresh.queue
	c.refresh.queue = nil
	c.refresh.state = StateIdle
	c.refresh.mu.Unlock()

	if refreshErr != nil {
		for _, p := range queue {
			p.result <- outcome{err: refreshErr}
		}
		return nil, refreshErr
	}

	c.replay(queue, token.AccessToken)
	return c.send(ctx, desc, token.AccessToken)
}

// replay resends every queued request with token. Each result is delivered to
// its own caller; one failure does not affect the others.
func (c *Client) replay(queue []*pendingRequest, token string) {
	if len(queue) == 0 {
		return
	}
	c.logger.Debug().Int("queued", len(queue)).Msg("Replaying queued requests")
	go func() {
		var g errgroup.Group
		g.SetLimit(c.replayLimit)
		for _, p := range queue {
			g.Go(func() error {
				res, err := c.send(p.ctx, p.desc, token)
				p.result <- outcome{res: res, err: err}
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// refreshToken calls the refresh endpoint and persists the new token. The call
// ignores the triggering caller's cancellation and is bounded by refreshTimeout.
func (c *Client) refreshToken(ctx context.Context) (*oauth2.Token, error) {
	base := context.WithoutCancel(ctx)
	refreshCtx, cancel := context.WithTimeout(base, c.refreshTimeout)
	defer cancel()

	start := time.Now()
	c.logger.Debug().Str("path", c.refreshPath).Msg("Refreshing access token")

	token, err := c.exchangeRefresh(refreshCtx)
	if err == nil {
		err = c.persistToken(base, token)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", ierrors.ErrRefreshTimeout, c.refreshTimeout, err)
		}
		err = fmt.Errorf("%w: %w", ierrors.ErrRefreshFailed, err)
		c.metrics.recordRefresh("failure")
		c.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("Token refresh failed")
		return nil, err
	}

	c.metrics.recordRefresh("success")
	c.logger.Info().Dur("duration", time.Since(start)).Msg("Access token refreshed")
	return token, nil
}

func (c *Client) exchangeRefresh(ctx context.Context) (*oauth2.Token, error) {
	var body any
	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	if refreshToken != "" {
		body = refreshRequest{RefreshToken: refreshToken}
	}

	desc, err := c.newDescriptor(http.MethodPost, c.refreshPath, body, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.send(ctx, desc, "")
	if err != nil {
		return nil, err
	}
	if !res.success() {
		return nil, newAPIError(res)
	}

	var rr RefreshResponse
	if err := json.Unmarshal(res.body, &rr); err != nil {
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if rr.AccessToken == "" {
		return nil, fmt.Errorf("%w: refresh response has no access token", ierrors.ErrInvalidToken)
	}
	return rr.Token(), nil
}

func (c *Client) persistToken(ctx context.Context, token *oauth2.Token) error {
	if err := c.store.SetAccessToken(ctx, token.AccessToken); err != nil {
		return err
	}
	if token.RefreshToken != "" {
		return c.store.SetRefreshToken(ctx, token.RefreshToken)
	}
	return nil
}
