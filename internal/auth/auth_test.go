package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"redviva-data/internal/config"
)

func TestTokenVerifier_Roundtrip(t *testing.T) {
	v := NewTokenVerifier("test-secret")

	token, err := v.SignForTest("user-1", "ana@example.org", time.Hour)
	require.NoError(t, err)

	session, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "ana@example.org", session.Email)
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestTokenVerifier_Expired(t *testing.T) {
	v := NewTokenVerifier("test-secret")

	token, err := v.SignForTest("user-1", "ana@example.org", -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenVerifier_WrongSecretAndEmpty(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	other := NewTokenVerifier("other-secret")

	token, err := other.SignForTest("user-1", "", time.Hour)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = v.Verify("")
	assert.ErrorIs(t, err, ErrNoToken)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.AuthConfig{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		RedirectURL: "http://localhost:3000/auth/callback",
	}
	return NewClient(cfg, zap.NewNop())
}

func TestClient_PasswordLogin(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.Equal(t, "password", r.URL.Query().Get("grant_type"))
		require.Equal(t, "test-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "s3cret" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(TokenPair{
			AccessToken: "at", RefreshToken: "rt", ExpiresIn: 3600, UserID: "u1", Email: body["email"],
		})
	}))

	tokens, err := c.PasswordLogin(context.Background(), "ana@example.org", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "at", tokens.AccessToken)
	assert.Equal(t, "u1", tokens.UserID)

	_, err = c.PasswordLogin(context.Background(), "ana@example.org", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestClient_SignOut(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/logout", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.SignOut(context.Background(), "the-token"))
	assert.Equal(t, "Bearer the-token", gotAuth)
}

func TestClient_SendMagicLink(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/magiclink", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "http://localhost:3000/auth/callback", body["redirect_to"])
		_, _ = w.Write([]byte(`{}`))
	}))

	require.NoError(t, c.SendMagicLink(context.Background(), "ana@example.org"))
}
