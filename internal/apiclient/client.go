// Package apiclient is the HTTP collaborator every entity service talks
// through. It attaches the session token and request IDs, decodes JSON
// bodies and turns any non-2xx or transport failure into a typed,
// recoverable *errors.Error.
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

	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/internal/session"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
	"github.com/noah-isme/flock-console/pkg/logger"
	"github.com/noah-isme/flock-console/pkg/requestid"
	"github.com/noah-isme/flock-console/pkg/response"
)

const maxBodyBytes = 8 << 20

// RequestObserver receives one observation per completed request.
type RequestObserver interface {
	ObserveAPIRequest(method, route string, status int, duration time.Duration)
}

// Refresher renews the session's access token.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	UserAgent   string
	RefreshSkew time.Duration
	HTTPClient  *http.Client
	Session     *session.Session
	Logger      *zap.Logger
	Metrics     RequestObserver
}

// Client issues authenticated JSON requests against the flock API.
type Client struct {
	baseURL     string
	userAgent   string
	refreshSkew time.Duration
	http        *http.Client
	session     *session.Session
	logger      *zap.Logger
	metrics     RequestObserver
	refresher   Refresher
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
	// Public requests carry no Authorization header.
	Public bool
	// NoRefresh skips the pre-flight token refresh.
	NoRefresh bool
}

// New constructs a Client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	sess := opts.Session
	if sess == nil {
		sess = session.New()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		userAgent:   opts.UserAgent,
		refreshSkew: opts.RefreshSkew,
		http:        httpClient,
		session:     sess,
		logger:      log,
		metrics:     opts.Metrics,
	}
}

// Session exposes the session the client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

// SetRefresher installs the component that renews expiring tokens.
func (c *Client) SetRefresher(r Refresher) {
	c.refresher = r
}

// Get decodes the response of GET path into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Delete issues DELETE path. Any 2xx means the resource is gone.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
}

// Do executes req and decodes a JSON success body into out when out is non-nil.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, reqID := requestid.Ensure(ctx)

	var token string
	if !req.Public {
		if !req.NoRefresh && c.refresher != nil && c.session.NeedsRefresh(c.refreshSkew) {
			if err := c.refresher.Refresh(ctx); err != nil {
				c.logger.Warn("token refresh failed", zap.Error(err), zap.String("request_id", reqID))
			}
		}
		var err error
		token, err = c.session.Token()
		if err != nil {
			return err
		}
	}

	httpReq, err := c.newRequest(ctx, req, token, reqID)
	if err != nil {
		return err
	}

	route := routeLabel(req.Path)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	latency := time.Since(start)
	if err != nil {
		c.observe(req.Method, route, 0, latency)
		c.logger.Warn("api_request_failed", append(logger.RequestFields(req.Method, route, 0, latency, reqID), zap.Error(err))...)
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, appErrors.ErrTransport.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.observe(req.Method, route, resp.StatusCode, latency)
	c.logger.Debug("api_request", logger.RequestFields(req.Method, route, resp.StatusCode, latency, reqID)...)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := response.Error(resp.StatusCode, body)
		c.logger.Info("api_request_rejected", append(logger.RequestFields(req.Method, route, resp.StatusCode, latency, reqID), zap.String("message", apiErr.Message))...)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(response.Unwrap(body), out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrRemote.Code, resp.StatusCode, "malformed response body")
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request, token, reqID string) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	httpReq.Header.Set(requestid.Header, reqID)
	return httpReq, nil
}

func (c *Client) observe(method, route string, status int, latency time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveAPIRequest(method, route, status, latency)
	}
}

// routeLabel collapses numeric path segments so metrics stay low-cardinality.
func routeLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if _, err := strconv.ParseInt(part, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

// IDPath joins a collection path and a record id.
func IDPath(collection string, id int64) string {
	return strings.TrimRight(collection, "/") + "/" + strconv.FormatInt(id, 10)
}
