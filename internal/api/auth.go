package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"assetdeck/internal/domain"
)

// DefaultLoginSentinel is the literal body the auth service returns on a
// successful login ("login succeeded"). Any other body means the login did
// not take effect, whatever the status code says.
const DefaultLoginSentinel = "로그인 성공"

// RegisterRequest is the signup payload. Validated client-side before the
// request leaves, so obviously broken input never reaches the backend.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"required"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CredentialSink receives the header-extracted credential on login and is
// cleared on logout. *session.Store satisfies it.
type CredentialSink interface {
	CredentialSource
	Save(domain.Credential) error
	Clear() error
}

// AuthClient talks to the auth service and owns the credential lifecycle:
// it is the only writer of the credential store.
type AuthClient struct {
	*client
	store    CredentialSink
	sentinel string
	validate *validator.Validate
}

// NewAuthClient creates an auth-service client. An empty sentinel falls back
// to DefaultLoginSentinel.
func NewAuthClient(baseURL string, timeout time.Duration, store CredentialSink, sentinel string) *AuthClient {
	if sentinel == "" {
		sentinel = DefaultLoginSentinel
	}
	return &AuthClient{
		client:   newClient(baseURL, timeout, store, HeaderAccessToken),
		store:    store,
		sentinel: sentinel,
		validate: validator.New(),
	}
}

// Register signs up a new user.
func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid signup request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/user/signup", nil, req, nil)
}

// Login authenticates and, when the response body equals the success
// sentinel, extracts the access token, refresh token, and user identity from
// the response headers into the store. Header fields absent from the
// response are skipped; a non-sentinel body stores nothing at all.
// The raw response body is returned either way.
func (c *AuthClient) Login(ctx context.Context, req LoginRequest) (string, error) {
	if err := c.validate.Struct(req); err != nil {
		return "", fmt.Errorf("invalid login request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/auth/login", nil, req)
	if err != nil {
		return "", err
	}

	body, headers, err := c.send(httpReq)
	if err != nil {
		return "", err
	}

	// Exact match only. A body that merely contains the sentinel, or carries
	// trailing whitespace, is not a successful login.
	text := string(body)
	if text != c.sentinel {
		return text, nil
	}

	cred := domain.Credential{
		AccessToken:  headers.Get("accessToken"),
		RefreshToken: headers.Get("refreshToken"),
		AuthUser:     headers.Get(HeaderAuthUser),
	}
	if err := c.store.Save(cred); err != nil {
		return text, fmt.Errorf("login succeeded but credential save failed: %w", err)
	}

	return text, nil
}

// Logout tells the auth service to end the session and clears the stored
// credential set.
func (c *AuthClient) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		return err
	}
	return c.store.Clear()
}

// Status asks the auth service whether the stored credential is still
// accepted. The body is returned verbatim; an authorization failure is
// surfaced unchanged; there is no retry-after-refresh.
func (c *AuthClient) Status(ctx context.Context) (string, error) {
	return c.doText(ctx, http.MethodGet, "/auth/status", nil, nil)
}
