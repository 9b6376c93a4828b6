package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteResolver_Resolve_OK(t *testing.T) {
	srv := newAuthServer(t, http.StatusOK, `{"id":"U2","role":"INVESTOR","email":"x@example.com"}`)
	r := NewRemoteResolver(srv.URL+"/", nil)

	id, err := r.Resolve(context.Background(), "tok-1")

	require.NoError(t, err)
	assert.Equal(t, "U2", id.UserID)
	assert.Equal(t, "INVESTOR", id.Role)
}

func TestRemoteResolver_Resolve_Rejected(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := newAuthServer(t, status, `{"error":"nope"}`)
		r := NewRemoteResolver(srv.URL, srv.Client())

		_, err := r.Resolve(context.Background(), "tok-1")

		assert.ErrorIs(t, err, ErrUnauthenticated)
	}
}

func TestRemoteResolver_Resolve_ServerError(t *testing.T) {
	srv := newAuthServer(t, http.StatusInternalServerError, ``)
	r := NewRemoteResolver(srv.URL, nil)

	_, err := r.Resolve(context.Background(), "tok-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}

func TestRemoteResolver_Resolve_MissingID(t *testing.T) {
	srv := newAuthServer(t, http.StatusOK, `{"role":"STARTUP"}`)
	r := NewRemoteResolver(srv.URL, nil)

	_, err := r.Resolve(context.Background(), "tok-1")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRemoteResolver_Resolve_EmptyToken(t *testing.T) {
	r := NewRemoteResolver("http://127.0.0.1:0", nil)

	_, err := r.Resolve(context.Background(), "")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}
