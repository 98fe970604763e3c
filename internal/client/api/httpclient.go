package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/akimovd/wastepoint/internal/client/models"
	"github.com/akimovd/wastepoint/internal/common"
	"github.com/akimovd/wastepoint/internal/logging"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const (
	// maxResponseSize bounds how much of a response body is read.
	maxResponseSize = 1 << 20

	// transportRetries is the number of extra attempts for connection-level
	// failures. HTTP error statuses are never retried here.
	transportRetries = 2
)

// retriedKey marks a request context whose original request already went
// through the refresh-and-retry path. The marker lives on the context, not on
// a shared request object, so it cannot leak across requests.
type retriedKey struct{}

// requestSpec captures everything needed to (re)build a request, so the
// interceptor can re-issue it after a token refresh.
type requestSpec struct {
	method string
	path   string
	body   []byte
}

// HTTPClient is the production Client implementation over net/http.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger

	mu          sync.RWMutex
	accessToken string
	hook        RefreshHook
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *HTTPClient) SetUnauthorizedRetry(hook RefreshHook) {
	c.mu.Lock()
	c.hook = hook
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) refreshHook() RefreshHook {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hook
}

func (c *HTTPClient) newRequest(ctx context.Context, spec requestSpec, token string) (*http.Request, error) {
	var body io.Reader
	if spec.body != nil {
		body = bytes.NewReader(spec.body)
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, c.baseURL+spec.path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if spec.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}
	return req, nil
}

// sendWithToken issues the request, retrying connection-level failures with
// bounded exponential backoff. Each attempt rebuilds the request from spec.
func (c *HTTPClient) sendWithToken(ctx context.Context, spec requestSpec, token string) (*http.Response, error) {
	var resp *http.Response
	backoff := retry.WithMaxRetries(transportRetries, retry.NewExponential(200*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := c.newRequest(ctx, spec, token)
		if err != nil {
			return err
		}
		r, err := c.hc.Do(req)
		if err != nil {
			// The request never produced a status; safe to retry.
			return retry.RetryableError(err)
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	return resp, nil
}

// execute runs the request through the refresh-on-401 interceptor.
//
// A 401 on a bearer-authenticated request that has not been retried triggers
// the installed refresh hook exactly once; on success the original request is
// re-issued with the new token and its response returned to the caller. A 401
// on an already-retried request, on an unauthenticated request, or with no
// hook installed passes through unchanged. A failing refresh propagates its
// own error; the original request is not retried further.
func (c *HTTPClient) execute(ctx context.Context, spec requestSpec) (*http.Response, error) {
	token := c.currentToken()

	resp, err := c.sendWithToken(ctx, spec, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || token == "" {
		return resp, nil
	}
	if ctx.Value(retriedKey{}) != nil {
		return resp, nil
	}
	hook := c.refreshHook()
	if hook == nil {
		return resp, nil
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	c.log.Debug(ctx, "access token rejected, refreshing", "path", spec.path)

	fresh, err := hook(ctx)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	rctx := context.WithValue(ctx, retriedKey{}, true)
	return c.sendWithToken(rctx, spec, fresh)
}

// doJSON executes a JSON request/response exchange against path.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, payload, out any) error {
	spec := requestSpec{method: method, path: path}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		spec.body = b
	}

	resp, err := c.execute(ctx, spec)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return &APIError{Status: resp.StatusCode, Message: payload.Message}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) RegisterHousehold(ctx context.Context, reg models.Registration) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register/household", reg, nil)
}

func (c *HTTPClient) RegisterCollector(ctx context.Context, reg models.Registration) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register/collector", reg, nil)
}

func (c *HTTPClient) RegisterAdmin(ctx context.Context, reg models.Registration) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register/admin", reg, nil)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *HTTPClient) RefreshToken(ctx context.Context) (string, error) {
	// The refresh request must never re-enter the refresh interceptor.
	ctx = context.WithValue(ctx, retriedKey{}, true)

	var res struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", nil, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

func (c *HTTPClient) CurrentProfile(ctx context.Context) (*models.UserRecord, error) {
	var user models.UserRecord
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserRecord, error) {
	var user models.UserRecord
	if err := c.doJSON(ctx, http.MethodPut, "/users/me", upd, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}
