package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// SessionState is the part of the session the access layer needs: the token
// to attach and the ability to drop a session the backend rejected
type SessionState interface {
	Token(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

// Navigator exposes the current navigation location of the operation that
// issued a request, and moves it
type Navigator interface {
	Location(ctx context.Context) string
	Navigate(ctx context.Context, path string)
}

// Client is the single configured HTTP client used to reach the backend
type Client struct {
	baseURL    string
	loginPath  string
	httpClient *http.Client
	session    SessionState
	nav        Navigator
	limiter    *rate.Limiter
	metrics    *metrics
	logger     *slog.Logger
}

// New creates a Client. reg receives the client's metrics and may be nil.
func New(cfg Config, session SessionState, nav Navigator, logger *slog.Logger, reg prometheus.Registerer) *Client {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = def.LoginPath
	}

	c := &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		loginPath: cfg.LoginPath,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		session: session,
		nav:     nav,
		metrics: newMetrics(reg),
		logger:  logger,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// BaseURL returns the backend root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends one request and returns the response body. body, when not nil, is
// encoded as JSON. Every failure is a *Error.
func (c *Client) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	start := time.Now()
	requestID := uuid.NewString()

	req, err := c.newRequest(ctx, method, path, body, requestID)
	if err != nil {
		return nil, c.fail(ctx, start, &Error{Kind: KindRequest, Method: method, Path: path, RequestID: requestID, Err: err})
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.fail(ctx, start, &Error{Kind: KindRequest, Method: method, Path: path, RequestID: requestID, Err: err})
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(ctx, start, &Error{Kind: KindNetwork, Method: method, Path: path, RequestID: requestID, Err: err})
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(ctx, start, &Error{Kind: KindNetwork, Method: method, Path: path, RequestID: requestID, Err: fmt.Errorf("failed to read response: %w", err)})
	}

	if resp.StatusCode >= 400 {
		return nil, c.fail(ctx, start, &Error{
			Kind:       KindResponse,
			Method:     method,
			Path:       path,
			RequestID:  requestID,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(respBody),
			Body:       respBody,
		})
	}

	c.metrics.observe(method, statusClass(resp.StatusCode), start)
	c.logger.Debug("backend request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
	)
	return respBody, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, requestID string) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if token, ok := c.session.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// fail logs and records a classified failure, applying the stale session
// rule to 401 responses
func (c *Client) fail(ctx context.Context, start time.Time, e *Error) error {
	outcome := e.Kind.String()
	if e.Kind == KindResponse {
		outcome = statusClass(e.StatusCode)
	}
	c.metrics.observe(e.Method, outcome, start)

	attrs := []any{
		slog.String("method", e.Method),
		slog.String("path", e.Path),
		slog.String("request_id", e.RequestID),
		slog.String("kind", e.Kind.String()),
	}

	switch e.Kind {
	case KindResponse:
		attrs = append(attrs, slog.Int("status", e.StatusCode))
		if e.StatusCode == http.StatusUnauthorized {
			c.expireSession(ctx, e)
		}
		if e.Message != "" {
			attrs = append(attrs, slog.String("message", e.Message))
		}
		c.logger.Warn("backend rejected request", attrs...)
	case KindNetwork:
		attrs = append(attrs, slog.String("error", e.Err.Error()))
		if errors.Is(e.Err, context.DeadlineExceeded) {
			attrs = append(attrs, slog.Bool("timeout", true))
		}
		c.logger.Warn("backend unreachable", attrs...)
	default:
		attrs = append(attrs, slog.String("error", e.Err.Error()))
		c.logger.Error("failed to send request", attrs...)
	}
	return e
}

// expireSession clears the session and moves to the login screen when a
// token was stored and the operation is not already on the login screen.
// In every other case a 401 changes nothing.
func (c *Client) expireSession(ctx context.Context, e *Error) {
	if _, ok := c.session.Token(ctx); !ok {
		return
	}
	if c.nav.Location(ctx) == c.loginPath {
		return
	}

	if err := c.session.Clear(ctx); err != nil {
		c.logger.Error("failed to clear expired session", slog.String("error", err.Error()))
	}
	c.nav.Navigate(ctx, c.loginPath)
	e.SessionExpired = true
	c.logger.Info("session expired", slog.String("request_id", e.RequestID))
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}
