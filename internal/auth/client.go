package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"redviva-data/internal/config"
)

// TokenPair session tokens issued by the auth service.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

// Client talks to the hosted auth service's REST API. The service owns
// credentials and session lifecycle; we only consume it.
type Client struct {
	httpClient *resty.Client
	redirectTo string
	logger     *zap.Logger
}

func NewClient(cfg config.AuthConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("apikey", cfg.APIKey)

	return &Client{
		httpClient: client,
		redirectTo: cfg.RedirectURL,
		logger:     logger,
	}
}

type authError struct {
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e *authError) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	return "auth service error"
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	errBody := &authError{}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		SetError(errBody).
		Post(path)
	if err != nil {
		return fmt.Errorf("auth service unreachable: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("auth service: %s", errBody.text())
	}
	return nil
}

// PasswordLogin starts a session with email + password.
func (c *Client) PasswordLogin(ctx context.Context, email, password string) (*TokenPair, error) {
	tokens := &TokenPair{}
	err := c.post(ctx, "/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	}, tokens)
	if err != nil {
		c.logger.Warn("Password login failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}
	return tokens, nil
}

// SendMagicLink starts a passwordless session via a one-time link.
func (c *Client) SendMagicLink(ctx context.Context, email string) error {
	return c.post(ctx, "/magiclink", map[string]string{
		"email":       email,
		"redirect_to": c.redirectTo,
	}, &json.RawMessage{})
}

// ExchangeCode exchanges a redirect code for a session.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	tokens := &TokenPair{}
	if err := c.post(ctx, "/token?grant_type=authorization_code", map[string]string{"code": code}, tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// GetUser fetches the user behind an access token (remote session check).
func (c *Client) GetUser(ctx context.Context, accessToken string) (*TokenPair, error) {
	out := &TokenPair{}
	errBody := &authError{}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(out).
		SetError(errBody).
		Get("/user")
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("auth service: %s", errBody.text())
	}
	return out, nil
}

// SignOut destroys the session behind the token. Destructive and
// irreversible for the session; the role record is untouched.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	errBody := &authError{}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetError(errBody).
		Post("/logout")
	if err != nil {
		return fmt.Errorf("auth service unreachable: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("auth service: %s", errBody.text())
	}
	return nil
}

// UpdatePassword sets a new password for the session's user.
func (c *Client) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	errBody := &authError{}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(map[string]string{"password": newPassword}).
		SetError(errBody).
		Put("/user")
	if err != nil {
		return fmt.Errorf("auth service unreachable: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("auth service: %s", errBody.text())
	}
	return nil
}

// SendPasswordReset sends a password-recovery email.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "/recover", map[string]string{
		"email":       email,
		"redirect_to": c.redirectTo,
	}, &json.RawMessage{})
}
