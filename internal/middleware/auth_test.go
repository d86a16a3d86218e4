package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	token *auth.Token
	err   error
	got   string
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	s.got = idToken
	return s.token, s.err
}

func serve(t *testing.T, mw func(http.Handler) http.Handler, header string) (*httptest.ResponseRecorder, *AuthUser) {
	t.Helper()
	var seen *AuthUser
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetAuthUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestWithAuth_NoVerifier(t *testing.T) {
	rec, _ := serve(t, WithAuth(nil), "Bearer abc")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "auth service not configured")
}

func TestWithAuth_MissingHeader(t *testing.T) {
	rec, _ := serve(t, WithAuth(&stubVerifier{}), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWithAuth_InvalidToken(t *testing.T) {
	rec, _ := serve(t, WithAuth(&stubVerifier{err: errors.New("expired")}), "Bearer abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestWithAuth_ValidToken(t *testing.T) {
	v := &stubVerifier{token: &auth.Token{UID: "u1", Claims: map[string]any{"email": "a@b.c"}}}

	rec, au := serve(t, WithAuth(v), "Bearer  tok123 ")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "tok123", v.got)
	require.NotNil(t, au)
	assert.Equal(t, "u1", au.UID)
	assert.Equal(t, "a@b.c", au.Email)
}

func TestRequireAdmin(t *testing.T) {
	admin := &stubVerifier{token: &auth.Token{UID: "u1", Claims: map[string]any{"admin": true}}}
	plain := &stubVerifier{token: &auth.Token{UID: "u2", Claims: map[string]any{}}}
	chain := func(v TokenVerifier) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler { return WithAuth(v)(RequireAdmin(next)) }
	}

	rec, _ := serve(t, chain(admin), "Bearer a")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = serve(t, chain(plain), "Bearer b")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, IsAdmin(nil))
	assert.True(t, IsAdmin(map[string]any{"admin": true}))
	assert.True(t, IsAdmin(map[string]any{"role": "admin"}))
	assert.True(t, IsAdmin(map[string]any{"roles": map[string]any{"admin": true}}))
	assert.True(t, IsAdmin(map[string]any{"roles": []any{"staff", "admin"}}))
	assert.False(t, IsAdmin(map[string]any{"roles": []any{"staff"}}))
	assert.False(t, IsAdmin(map[string]any{"role": "owner"}))
}
