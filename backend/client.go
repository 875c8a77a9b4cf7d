// Package backend is the HTTP client for the scheduling backend. The
// backend owns all business logic (slot computation, conflict detection,
// authorization); this client forwards calls, attaches the session's
// bearer token, and transparently refreshes it once when a call comes
// back 401.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/caredesk/go-admin-portal/internal/errors"
	"github.com/caredesk/go-admin-portal/internal/metrics"
	"github.com/caredesk/go-admin-portal/internal/utils"
	"github.com/caredesk/go-admin-portal/session"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json"

// Client issues authenticated REST calls to the scheduling backend on
// behalf of a browser session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Repo
	metrics    metrics.Recorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m metrics.Recorder) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a Client for the given backend base URL.
func New(baseURL string, sessions session.Repo, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		sessions:   sessions,
		metrics:    metrics.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is a non-2xx backend response surfaced to the caller.
// Auth failures are resolved inside the client; anything else propagates
// as a StatusError for the UI layer to render.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Detail)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return apperrors.As(err, &se) && se.Code == code
}

// Do performs a backend call for the given browser session. The body, if
// non-nil, is JSON encoded. On a 401 the stored refresh token is used to
// obtain a new access token and the original request is re-issued exactly
// once; a second 401 propagates without another refresh attempt. The
// caller owns the returned response body.
func (c *Client) Do(ctx context.Context, sessionID, method, path string, body any) (*http.Response, error) {
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("[Client Do] failed to encode request body: %w", err)
		}
	}

	resp, err := c.send(ctx, sessionID, method, path, encoded)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// One transparent refresh-and-retry, then give up.
	drain(resp)
	if err := c.refresh(ctx, sessionID); err != nil {
		if clearErr := c.sessions.Clear(sessionID); clearErr != nil {
			log.Err(clearErr).Msg("Failed to clear session after refresh failure")
		}
		return nil, apperrors.Wrapf(apperrors.ErrSessionExpired, "[Client Do] %s %s: %v", method, path, err)
	}

	return c.send(ctx, sessionID, method, path, encoded)
}

func (c *Client) send(ctx context.Context, sessionID, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("[Client send] failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	req.Header.Set("Accept", contentTypeJSON)

	sess, err := c.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("[Client send] failed to read session: %w", err)
	}
	if sess.HasToken() {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrBackendUnavailable, "[Client send] %s %s: %v", method, path, err)
	}
	return resp, nil
}

// refresh exchanges the stored refresh token for a new access token and
// overwrites the stored one. Missing refresh token or a non-200 from the
// backend both count as refresh failure.
func (c *Client) refresh(ctx context.Context, sessionID string) error {
	c.metrics.RecordRefreshAttempt()

	sess, err := c.sessions.Get(sessionID)
	if err != nil {
		return fmt.Errorf("[Client refresh] failed to read session: %w", err)
	}
	if sess.RefreshToken == "" {
		c.metrics.RecordRefreshFailure()
		return apperrors.ErrRefreshFailed
	}

	payload, err := json.Marshal(refreshRequest{RefreshToken: sess.RefreshToken})
	if err != nil {
		return fmt.Errorf("[Client refresh] failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("[Client refresh] failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordRefreshFailure()
		return apperrors.Wrapf(apperrors.ErrBackendUnavailable, "[Client refresh] %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordRefreshFailure()
		return apperrors.Wrapf(apperrors.ErrRefreshFailed, "[Client refresh] status %d", resp.StatusCode)
	}

	var refreshed refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&refreshed); err != nil || refreshed.AccessToken == "" {
		c.metrics.RecordRefreshFailure()
		return apperrors.Wrapf(apperrors.ErrRefreshFailed, "[Client refresh] invalid response")
	}

	update := session.Update{AccessToken: utils.Ptr(refreshed.AccessToken)}
	if refreshed.RefreshToken != "" {
		update.RefreshToken = utils.Ptr(refreshed.RefreshToken)
	}
	if err := c.sessions.Set(sessionID, update); err != nil {
		return fmt.Errorf("[Client refresh] failed to store new token: %w", err)
	}

	log.Debug().Msg("Access token refreshed")
	return nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// doJSON performs a call and decodes a 2xx JSON body into out. Non-2xx
// responses become StatusErrors carrying the backend's detail message.
func (c *Client) doJSON(ctx context.Context, sessionID, method, path string, body, out any) error {
	resp, err := c.Do(ctx, sessionID, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out == nil {
		drainBody(resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("[Client doJSON] failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// readDetail extracts the "detail" field the backend puts in error
// responses, falling back to the raw body.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(raw))
}

func drain(resp *http.Response) {
	drainBody(resp.Body)
	resp.Body.Close()
}

func drainBody(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
}
