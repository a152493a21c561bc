// Package api holds one thin client per backend domain. Each operation maps
// to a single endpoint; credentials are injected into every outgoing request
// from the session store, and responses decode into typed records.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"assetdeck/internal/domain"
)

// Header names vary per service: the auth service reads the token from
// "accesstoken", everything else from "Authorization". The user identity
// header is the same everywhere.
const (
	HeaderAuthorization = "Authorization"
	HeaderAccessToken   = "accesstoken"
	HeaderAuthUser      = "X-Auth-User"
)

const defaultTimeout = 5 * time.Second

// CredentialSource yields the credential injected into outgoing requests.
// *session.Store satisfies it.
type CredentialSource interface {
	Load() (domain.Credential, bool, error)
}

// client is the shared request machinery under every domain client.
type client struct {
	baseURL     string
	httpClient  *http.Client
	creds       CredentialSource
	tokenHeader string
}

func newClient(baseURL string, timeout time.Duration, creds CredentialSource, tokenHeader string) *client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: timeout},
		creds:       creds,
		tokenHeader: tokenHeader,
	}
}

// newRequest builds a request with JSON headers and, when a credential is
// stored, the token and user-identity headers. Requests go out anonymous
// when the store is empty or unreadable; public endpoints accept both.
func (c *client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.creds != nil {
		cred, ok, err := c.creds.Load()
		if err != nil {
			slog.Warn("Credential load failed, sending anonymous request", "err", err)
		} else if ok {
			req.Header.Set(c.tokenHeader, cred.AccessToken)
			req.Header.Set(HeaderAuthUser, cred.AuthUser)
		}
	}

	return req, nil
}

// send executes the request and returns the body and response headers.
// Non-2xx responses become *ServerError; transport failures are wrapped.
func (c *client) send(req *http.Request) ([]byte, http.Header, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: reading body: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.Header, &ServerError{Status: resp.StatusCode, Body: string(body)}
	}

	return body, resp.Header, nil
}

// do runs the request and decodes the response into out (skipped when nil).
func (c *client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	data, _, err := c.send(req)
	if err != nil {
		return err
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// doText runs the request and returns the raw response body. Used where the
// backend answers with a plain string instead of JSON.
func (c *client) doText(ctx context.Context, method, path string, query url.Values, body any) (string, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return "", err
	}

	data, _, err := c.send(req)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
