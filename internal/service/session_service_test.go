package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldconnect/api/internal/config"
	"goldconnect/api/internal/geo"
	"goldconnect/api/internal/models"
	"goldconnect/api/internal/security"
)

type fakeUserCreator struct {
	created []models.User
}

func (f *fakeUserCreator) Create(ctx context.Context, user models.User) error {
	f.created = append(f.created, user)
	return nil
}

func newSessionFixture(t *testing.T) (*SessionService, *fakeUserCreator, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"country":"FR"}`))
	}))

	cfg := &config.AppConfig{
		Session: config.SessionConfig{
			JWTSecret: "test-secret",
			TTL:       time.Hour,
			AdminName: "admin1234",
		},
	}
	resolver := geo.NewResolver(config.GeoConfig{
		LookupURL:   srv.URL,
		FlagURLBase: "https://flagsapi.com",
		Timeout:     time.Second,
	}, zerolog.Nop())

	users := &fakeUserCreator{}
	svc := NewSessionService(users, resolver, nil, cfg, zerolog.Nop())
	return svc, users, srv.Close
}

func TestLogin_CreatesOnePresenceRecord(t *testing.T) {
	svc, users, done := newSessionFixture(t)
	defer done()

	result, err := svc.Login(context.Background(), "Alice", "203.0.113.7")
	require.NoError(t, err)

	require.Len(t, users.created, 1)
	assert.Equal(t, "Alice", users.created[0].Name)
	assert.Equal(t, "France", users.created[0].Country)
	assert.False(t, result.Session.IsAdmin)
	assert.Equal(t, "France", result.Session.Country)

	claims, err := security.ParseSessionToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "Alice", claims.Name)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, result.Session.ID, claims.ID)
}

func TestLogin_AdminNameSkipsPresenceRecord(t *testing.T) {
	svc, users, done := newSessionFixture(t)
	defer done()

	result, err := svc.Login(context.Background(), "admin1234", "203.0.113.7")
	require.NoError(t, err)

	assert.Empty(t, users.created, "admin login must not create a users record")
	assert.True(t, result.Session.IsAdmin)

	claims, err := security.ParseSessionToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestLogin_EmptyNameRejected(t *testing.T) {
	svc, users, done := newSessionFixture(t)
	defer done()

	_, err := svc.Login(context.Background(), "   ", "203.0.113.7")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, users.created)
}

func TestLogin_GeoFailureStillLogsIn(t *testing.T) {
	cfg := &config.AppConfig{
		Session: config.SessionConfig{JWTSecret: "s", TTL: time.Hour, AdminName: "admin1234"},
	}
	resolver := geo.NewResolver(config.GeoConfig{
		LookupURL:   "http://127.0.0.1:1",
		FlagURLBase: "https://flagsapi.com",
		Timeout:     200 * time.Millisecond,
	}, zerolog.Nop())
	users := &fakeUserCreator{}
	svc := NewSessionService(users, resolver, nil, cfg, zerolog.Nop())

	result, err := svc.Login(context.Background(), "Bob", "203.0.113.7")
	require.NoError(t, err, "geolocation being down must not block login")

	require.Len(t, users.created, 1)
	assert.Equal(t, "Unknown", users.created[0].Country)
	assert.Equal(t, "Unknown", result.Session.Country)
}
