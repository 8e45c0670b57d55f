package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookit/internal/client/models"
	"github.com/dmitrijs2005/bookit/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	loginPath          = "/api/auth/login"
	registerPath       = "/api/auth/register"
	currentUserPath    = "/api/auth/me"
	profilePath        = "/api/users/profile"
	changePasswordPath = "/api/users/password"

	// upper bound on error bodies read for the message
	maxErrorBody = 64 << 10
)

// HTTPClient talks to the marketplace REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

type options struct {
	timeout   time.Duration
	rateLimit float64
	burst     int
	recorder  metrics.Recorder
	transport http.RoundTripper
}

type Option func(*options)

// WithTimeout bounds every request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRateLimit throttles outgoing requests to rps per second with the given
// burst. A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) { o.rateLimit, o.burst = rps, burst }
}

func WithMetrics(r metrics.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithTransport replaces the underlying round tripper (default
// http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// NewHTTPClient builds a client for the API rooted at baseURL,
// e.g. "http://127.0.0.1:5000".
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	o := options{
		timeout:   15 * time.Second,
		recorder:  metrics.Nop{},
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var rt http.RoundTripper = &metricsTransport{next: o.transport, recorder: o.recorder}
	if o.rateLimit > 0 {
		burst := o.burst
		if burst < 1 {
			burst = 1
		}
		rt = &throttleTransport{next: rt, limiter: rate.NewLimiter(rate.Limit(o.rateLimit), burst)}
	}
	rt = &bearerTransport{next: rt}

	return &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Transport: rt, Timeout: o.timeout},
	}, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, "login", http.MethodPost, loginPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, payload models.RegisterPayload) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "register", http.MethodPost, registerPath, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) FetchCurrentUser(ctx context.Context) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.do(ctx, "me", http.MethodGet, currentUserPath, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.do(ctx, "update_profile", http.MethodPut, profilePath, patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error) {
	var resp models.MessageResponse
	req := models.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	if err := c.do(ctx, "change_password", http.MethodPut, changePasswordPath, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, in, out any) error {
	ctx = context.WithValue(ctx, operationKey{}, op)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

// decodeAPIError builds an APIError from a {message} body, falling back to
// the HTTP status text when the body has none.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var m models.MessageResponse
	if err := json.Unmarshal(raw, &m); err == nil && m.Message != "" {
		apiErr.Message = m.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
