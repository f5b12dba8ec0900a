package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spesecasa/cassa/internal/api"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CASSA_TOKEN", "")
}

func TestLoginSuccess(t *testing.T) {
	isolateConfig(t)

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "mario", r.FormValue("username"))
			assert.Equal(t, "segreta", r.FormValue("password"))
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "token_type": "bearer"})
		case "/users/me":
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(api.User{ID: 1, Username: "mario", IsActive: true})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	s := New(api.New(srv.URL, ""))
	assert.Equal(t, Unauthenticated, s.State())

	require.NoError(t, s.Login(context.Background(), "mario", "segreta"))
	assert.Equal(t, Authenticated, s.State())
	require.NotNil(t, s.User())
	assert.Equal(t, "mario", s.User().Username)
}

func TestLoginBadCredentials(t *testing.T) {
	isolateConfig(t)

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
	})

	s := New(api.New(srv.URL, ""))
	err := s.Login(context.Background(), "mario", "sbagliata")

	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, Unauthenticated, s.State())
	assert.Nil(t, s.User())
}

func TestResumeValidToken(t *testing.T) {
	isolateConfig(t)

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-old", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(api.User{ID: 2, Username: "luigi", IsSuperuser: true})
	})

	s := New(api.New(srv.URL, "tok-old"))
	require.NoError(t, s.Resume(context.Background()))

	assert.Equal(t, Authenticated, s.State())
	assert.True(t, s.IsSuperuser())
}

func TestResumeExpiredTokenClearsSession(t *testing.T) {
	isolateConfig(t)

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	})

	s := New(api.New(srv.URL, "tok-expired"))
	err := s.Resume(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, Unauthenticated, s.State())
}

func TestLogout(t *testing.T) {
	isolateConfig(t)

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.User{ID: 1, Username: "mario"})
	})

	s := New(api.New(srv.URL, "tok-1"))
	require.NoError(t, s.Resume(context.Background()))
	require.Equal(t, Authenticated, s.State())

	require.NoError(t, s.Logout())
	assert.Equal(t, Unauthenticated, s.State())
	assert.Nil(t, s.User())
	assert.False(t, s.IsSuperuser())
}
