package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdeck/internal/domain"
)

func newLoginServer(t *testing.T, body string, headers map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		w.Write([]byte(body))
	}))
}

func TestLogin_SentinelStoresAllHeaderFields(t *testing.T) {
	server := newLoginServer(t, DefaultLoginSentinel, map[string]string{
		"accessToken":  "tok-123",
		"refreshToken": "ref-456",
		"X-Auth-User":  "user@example.com",
	})
	defer server.Close()

	store := &memStore{}
	client := NewAuthClient(server.URL, time.Second, store, "")

	body, err := client.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, DefaultLoginSentinel, body)

	cred, ok, _ := store.Load()
	require.True(t, ok)
	assert.Equal(t, "tok-123", cred.AccessToken)
	assert.Equal(t, "ref-456", cred.RefreshToken)
	assert.Equal(t, "user@example.com", cred.AuthUser)
}

func TestLogin_SentinelSkipsAbsentHeaders(t *testing.T) {
	server := newLoginServer(t, DefaultLoginSentinel, map[string]string{
		"accessToken": "tok-123",
		"X-Auth-User": "user@example.com",
		// no refresh token header
	})
	defer server.Close()

	store := &memStore{}
	client := NewAuthClient(server.URL, time.Second, store, "")

	_, err := client.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "secret"})
	require.NoError(t, err)

	cred, ok, _ := store.Load()
	require.True(t, ok)
	assert.Equal(t, "tok-123", cred.AccessToken)
	assert.Empty(t, cred.RefreshToken)
}

func TestLogin_NonSentinelBodyStoresNothing(t *testing.T) {
	server := newLoginServer(t, "비밀번호가 일치하지 않습니다", map[string]string{
		"accessToken": "tok-should-be-ignored",
	})
	defer server.Close()

	store := &memStore{}
	client := NewAuthClient(server.URL, time.Second, store, "")

	body, err := client.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "wrong"})
	require.NoError(t, err)
	assert.NotEqual(t, DefaultLoginSentinel, body)

	_, ok, _ := store.Load()
	assert.False(t, ok, "credential must not be stored on a non-sentinel body")
}

func TestLogin_NearSentinelBodyStoresNothing(t *testing.T) {
	// The comparison is exact: trailing whitespace or surrounding text makes
	// the body a failure message, not a success.
	for _, body := range []string{
		DefaultLoginSentinel + "\n",
		" " + DefaultLoginSentinel,
		DefaultLoginSentinel + "!",
	} {
		server := newLoginServer(t, body, map[string]string{
			"accessToken": "tok-should-be-ignored",
		})

		store := &memStore{}
		client := NewAuthClient(server.URL, time.Second, store, "")

		got, err := client.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, body, got)

		_, ok, _ := store.Load()
		assert.False(t, ok, "body %q must not store a credential", body)
		server.Close()
	}
}

func TestLogin_ValidationFailsBeforeNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := NewAuthClient(server.URL, time.Second, &memStore{}, "")

	_, err := client.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&calls), "invalid request must not reach the server")
}

func TestLogout_ClearsStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/logout", r.URL.Path)
		assert.Equal(t, "tok-123", r.Header.Get(HeaderAccessToken))
		assert.Equal(t, "user@example.com", r.Header.Get(HeaderAuthUser))
	}))
	defer server.Close()

	store := &memStore{}
	store.Save(testCredential())
	client := NewAuthClient(server.URL, time.Second, store, "")

	require.NoError(t, client.Logout(context.Background()))

	_, ok, _ := store.Load()
	assert.False(t, ok)
}

func TestRegister_Valid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/signup", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewAuthClient(server.URL, time.Second, &memStore{}, "")
	err := client.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "longenough",
		Nickname: "새내기",
	})
	assert.NoError(t, err)
}

func testCredential() domain.Credential {
	return domain.Credential{
		AccessToken:  "tok-123",
		RefreshToken: "ref-456",
		AuthUser:     "user@example.com",
	}
}
