package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"golang.org/x/oauth2"
)

const (
	contentTypeJSON = "application/json"
	headerRequestID = "X-Request-ID"
)

// requestDescriptor holds everything needed to (re)send a call. The body is
// buffered so the same request can be retried after a token refresh.
type requestDescriptor struct {
	method      string
	url         string
	body        []byte
	contentType string
	header      http.Header
	noRefresh   bool
}

type response struct {
	status     int
	statusText string
	header     http.Header
	body       []byte
}

func (r *response) success() bool {
	return r.status >= 200 && r.status < 300
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func (c *Client) newDescriptor(method, path string, body any, opts []RequestOption) (*requestDescriptor, error) {
	ro := &requestOptions{header: http.Header{}, query: url.Values{}}
	for _, opt := range opts {
		opt(ro)
	}

	desc := &requestDescriptor{
		method:      method,
		url:         c.resolve(path, ro.query),
		contentType: contentTypeJSON,
		header:      ro.header,
		noRefresh:   ro.noRefresh,
	}

	switch b := body.(type) {
	case nil:
	case *Multipart:
		data, contentType, err := b.encode()
		if err != nil {
			return nil, ierrors.Wrapf(err, "%s %s", method, path)
		}
		desc.body = data
		desc.contentType = contentType
	case json.RawMessage:
		desc.body = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s body: %w", ierrors.ErrInvalidRequest, method, path, err)
		}
		desc.body = data
	}
	return desc, nil
}

// resolve appends path verbatim to the base URL, keeping any query string it carries
func (c *Client) resolve(path string, query url.Values) string {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) == 0 {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + query.Encode()
}

// send performs one HTTP exchange with the given token. Transport errors are
// logged and returned unchanged; any HTTP status is a successful send.
func (c *Client) send(ctx context.Context, desc *requestDescriptor, token string) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var body io.Reader
	if len(desc.body) > 0 {
		body = bytes.NewReader(desc.body)
	}
	req, err := http.NewRequestWithContext(ctx, desc.method, desc.url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ierrors.ErrInvalidRequest, err)
	}
	req.Header.Set("Content-Type", desc.contentType)
	req.Header.Set("Accept", contentTypeJSON)
	requestID := c.newRequestID()
	req.Header.Set(headerRequestID, requestID)
	for k, vs := range desc.header {
		req.Header[k] = append([]string(nil), vs...)
	}
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.recordRequest(desc.method, "error")
		c.logger.Err(err).
			Str("method", desc.method).
			Str("url", desc.url).
			Str("request_id", requestID).
			Msg("API request failed")
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.recordRequest(desc.method, "error")
		c.logger.Err(err).
			Str("method", desc.method).
			Str("url", desc.url).
			Str("request_id", requestID).
			Msg("Failed to read API response")
		return nil, err
	}

	c.metrics.recordRequest(desc.method, strconv.Itoa(resp.StatusCode))
	c.logger.Debug().
		Str("method", desc.method).
		Str("url", desc.url).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	return &response{
		status:     resp.StatusCode,
		statusText: resp.Status,
		header:     resp.Header,
		body:       data,
	}, nil
}

// handle turns a final response into the caller's result
func (c *Client) handle(ctx context.Context, res *response, out any) error {
	if !res.success() {
		return newAPIError(res)
	}
	if out == nil || len(bytes.TrimSpace(res.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if tb, ok := out.(TokenBearer); ok {
		if token := tb.BearerToken(); token != "" {
			if err := c.store.SetAccessToken(ctx, token); err != nil {
				return err
			}
		}
	}
	return nil
}
