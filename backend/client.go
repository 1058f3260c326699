package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/hireloop/authgate/session"
)

// Config holds the REST client settings.
type Config struct {
	// BaseURL is the backend origin, e.g. "https://api.example.com".
	BaseURL string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the underlying client. When nil, a client with
	// a fresh cookie jar is created; the jar is where the HTTP-only
	// refresh-session cookie lives, invisible to callers.
	HTTPClient *http.Client
}

// DefaultTimeout bounds backend calls when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// Client consumes the auth endpoints of the marketplace backend. Every
// method classifies failures into the package sentinels; callers branch with
// errors.Is and never see raw transport errors.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient validates the base URL and builds a client.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend: invalid base url %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("backend: cookie jar: %w", err)
		}
		httpClient = &http.Client{Jar: jar}
	}
	if httpClient.Timeout == 0 {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient.Timeout = timeout
	}

	return &Client{
		base: base,
		http: httpClient,
	}, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleRequest struct {
	IDToken string `json:"idToken"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

type sessionResponse struct {
	Account     session.Account `json:"account"`
	AccessToken string          `json:"accessToken"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Login exchanges credentials for an account snapshot and access token. The
// refresh token arrives as a response cookie and stays in the jar.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var out sessionResponse
	err := c.post(ctx, "/auth/login", loginRequest{
		Email:    session.NormalizeEmail(email),
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return sessionFromResponse(out)
}

// GoogleLogin forwards the federated credential verbatim.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (*session.Session, error) {
	var out sessionResponse
	if err := c.post(ctx, "/auth/google", googleRequest{IDToken: idToken}, &out); err != nil {
		return nil, err
	}
	return sessionFromResponse(out)
}

// Logout invalidates the refresh cookie server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", struct{}{}, nil)
}

// Refresh trades the refresh cookie for a fresh access token and account
// snapshot.
func (c *Client) Refresh(ctx context.Context) (*session.Session, error) {
	var out sessionResponse
	if err := c.post(ctx, "/auth/refresh", struct{}{}, &out); err != nil {
		return nil, err
	}
	return sessionFromResponse(out)
}

// Register creates a pending account and triggers the verification OTP email.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.post(ctx, "/auth/register", registerRequest{
		Email:    session.NormalizeEmail(email),
		Password: password,
	}, nil)
}

// VerifyRegistration finalizes a pending account with the emailed code.
func (c *Client) VerifyRegistration(ctx context.Context, email, otp string) error {
	return c.post(ctx, "/auth/verify-registration", otpRequest{
		Email: session.NormalizeEmail(email),
		OTP:   otp,
	}, nil)
}

// ForgotPassword triggers the reset OTP email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/forgot-password", emailRequest{
		Email: session.NormalizeEmail(email),
	}, nil)
}

// VerifyOTP marks the reset code verified server-side.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	return c.post(ctx, "/auth/verify-otp", otpRequest{
		Email: session.NormalizeEmail(email),
		OTP:   otp,
	}, nil)
}

// ResetPassword sets the new password; requires a previously verified OTP.
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	return c.post(ctx, "/auth/reset-password", resetPasswordRequest{
		Email:       session.NormalizeEmail(email),
		NewPassword: newPassword,
	}, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("backend: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.String()+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
		}
		return nil
	}

	return c.classify(resp.StatusCode, data)
}

func (c *Client) classify(status int, data []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil {
		if mapped := errorForCode(envelope.Code); mapped != nil {
			return mapped
		}
	}
	if status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return fmt.Errorf("%w: status %d", ErrUnavailable, status)
}

func sessionFromResponse(out sessionResponse) (*session.Session, error) {
	sess := &session.Session{
		Account:     out.Account,
		AccessToken: out.AccessToken,
	}
	if !sess.Valid() {
		return nil, fmt.Errorf("%w: incomplete session payload", ErrUnavailable)
	}
	return sess, nil
}
