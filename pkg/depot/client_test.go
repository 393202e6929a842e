package depot

import (
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := New()
		require.NoError(t, err)
		require.Equal(t, DefaultURL, c.BaseURL().String())
	})

	t.Run("base URL is normalized", func(t *testing.T) {
		c, err := New(WithBaseURL("https://depot.example.com/v1/"))
		require.NoError(t, err)
		require.Equal(t, "https://depot.example.com/v1", c.BaseURL().String())
	})

	t.Run("rejects non-http schemes", func(t *testing.T) {
		_, err := New(WithBaseURL("ftp://depot.example.com"))
		require.Error(t, err)
	})
}

func TestGetRetries(t *testing.T) {
	t.Run("retries server errors", func(t *testing.T) {
		var calls atomic.Int32
		server := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		c := newTestClient(t, server)
		c.maxTries = 3

		available, err := c.OriginAvailable(t.Context(), "flaky")
		require.NoError(t, err)
		require.False(t, available)
		require.EqualValues(t, 3, calls.Load())
	})

	t.Run("gives up after max tries", func(t *testing.T) {
		var calls atomic.Int32
		server := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		})

		c := newTestClient(t, server)
		c.maxTries = 2

		_, err := c.OriginAvailable(t.Context(), "down")
		require.Error(t, err)
		require.EqualValues(t, 2, calls.Load())
	})

	t.Run("writes are never retried", func(t *testing.T) {
		var calls atomic.Int32
		server := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		})

		c := newTestClient(t, server)
		c.maxTries = 3

		_, err := c.CreateOrigin(t.Context(), "flaky")
		require.Error(t, err)
		require.EqualValues(t, 1, calls.Load())
	})
}

func TestListViews(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/views", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["stable","unstable"]`))
	}))

	views, err := c.ListViews(t.Context())
	require.NoError(t, err)
	require.Equal(t, []string{"stable", "unstable"}, views)
}

func TestPromotePackage(t *testing.T) {
	t.Run("promotes a release", func(t *testing.T) {
		var gotPath string
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusOK)
		}))

		ident, err := ParseIdent("core/redis/3.2.1/20240101120000")
		require.NoError(t, err)
		require.NoError(t, c.PromotePackage(t.Context(), "stable", ident))
		require.Equal(t, "/views/stable/pkgs/core/redis/3.2.1/20240101120000/promote", gotPath)
	})

	t.Run("requires a fully qualified ident", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		}))

		err := c.PromotePackage(t.Context(), "stable", PackageIdent{Origin: "core", Name: "redis"})
		require.Error(t, err)
	})
}
