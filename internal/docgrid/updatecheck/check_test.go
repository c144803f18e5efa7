package updatecheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docgrid/internal/core/kv"
	"github.com/colonyops/docgrid/internal/data/db"
	"github.com/colonyops/docgrid/internal/data/stores"
)

func newTestKVStore(t *testing.T) kv.KV {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewKVStore(database)
}

func cacheRelease(t *testing.T, store kv.KV, tag string) {
	t.Helper()
	cache := kv.Scoped[ReleaseInfo](store, cacheNamespace)
	err := cache.SetTTL(context.Background(), cacheKey, ReleaseInfo{TagName: tag}, cacheTTL)
	require.NoError(t, err)
}

// releaseServer serves body with status and counts requests.
func releaseServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestCheck_SkippedVersions(t *testing.T) {
	for _, v := range []string{"", "dev", "not-semver"} {
		t.Run(v, func(t *testing.T) {
			result, err := New(newTestKVStore(t), nil).Check(context.Background(), v)
			require.NoError(t, err)
			assert.Nil(t, result)
		})
	}
}

func TestCheck_NilStore(t *testing.T) {
	result, err := New(nil, nil).Check(context.Background(), "v1.0.0")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheck_Cached(t *testing.T) {
	tests := []struct {
		name    string
		current string
		cached  string
		want    *Result
	}{
		{"current is latest", "v1.3.0", "v1.3.0", nil},
		{"current is newer", "v2.0.0", "v1.0.0", nil},
		{"update available", "v1.0.0", "v2.0.0", &Result{Current: "v1.0.0", Latest: "v2.0.0"}},
		{"normalizes prefix", "1.2.3", "v1.3.0", &Result{Current: "v1.2.3", Latest: "v1.3.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestKVStore(t)
			cacheRelease(t, store, tt.cached)
			srv, calls := releaseServer(t, http.StatusOK, `{}`)

			result, err := New(store, srv.Client()).WithURL(srv.URL).Check(context.Background(), tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
			assert.Zero(t, calls.Load(), "cached release must not hit the network")
		})
	}
}

func TestCheck_FetchesAndCaches(t *testing.T) {
	store := newTestKVStore(t)
	srv, calls := releaseServer(t, http.StatusOK,
		`{"tag_name":"v0.5.0","html_url":"https://github.com/colonyops/docgrid/releases/v0.5.0"}`)
	checker := New(store, srv.Client()).WithURL(srv.URL)

	for range 2 {
		result, err := checker.Check(context.Background(), "v0.4.1")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "v0.5.0", result.Latest)
		assert.Contains(t, result.URL, "releases/v0.5.0")
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestCheck_FetchFailuresAreQuiet(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, ``},
		{"bad json", http.StatusOK, `{`},
		{"missing tag", http.StatusOK, `{"html_url":"x"}`},
		{"invalid tag", http.StatusOK, `{"tag_name":"latest"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := releaseServer(t, tt.status, tt.body)

			result, err := New(newTestKVStore(t), srv.Client()).WithURL(srv.URL).Check(context.Background(), "v1.0.0")
			require.NoError(t, err)
			assert.Nil(t, result)
		})
	}
}
