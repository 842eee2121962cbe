package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"goldconnect/api/internal/config"
)

func newTestResolver(lookupURL string) *Resolver {
	return NewResolver(config.GeoConfig{
		LookupURL:   lookupURL,
		FlagURLBase: "https://flagsapi.com",
		Timeout:     2 * time.Second,
	}, zerolog.Nop())
}

func TestResolve_KnownCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/203.0.113.7", r.URL.Path)
		w.Write([]byte(`{"ip":"203.0.113.7","country":"FR"}`))
	}))
	defer srv.Close()

	info := newTestResolver(srv.URL).Resolve(context.Background(), "203.0.113.7")

	assert.Equal(t, "France", info.Country)
	assert.Equal(t, "FR", info.CountryCode)
	assert.Equal(t, "https://flagsapi.com/FR/flat/32.png", info.Flag)
}

func TestResolve_UnmappedCodePassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"country":"JP"}`))
	}))
	defer srv.Close()

	info := newTestResolver(srv.URL).Resolve(context.Background(), "203.0.113.7")

	assert.Equal(t, "JP", info.Country)
	assert.Equal(t, "JP", info.CountryCode)
}

func TestResolve_ServerErrorYieldsUnknownSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	info := newTestResolver(srv.URL).Resolve(context.Background(), "203.0.113.7")

	assert.Equal(t, "Unknown", info.Country)
	assert.Equal(t, "XX", info.CountryCode)
	assert.Equal(t, "https://flagsapi.com/XX/flat/32.png", info.Flag)
}

func TestResolve_UnreachableYieldsUnknownSentinel(t *testing.T) {
	info := newTestResolver("http://127.0.0.1:1").Resolve(context.Background(), "203.0.113.7")

	assert.Equal(t, "Unknown", info.Country)
	assert.Equal(t, "XX", info.CountryCode)
}

func TestResolve_MalformedBodyYieldsUnknownSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	info := newTestResolver(srv.URL).Resolve(context.Background(), "203.0.113.7")

	assert.Equal(t, "Unknown", info.Country)
}
