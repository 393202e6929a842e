package depot

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(WithBaseURL(server.URL), WithMaxTries(1))
	require.NoError(t, err)
	return c
}

func TestValidOriginName(t *testing.T) {
	for _, name := range []string{"core", "my-origin", "my_origin", "0rigin"} {
		require.NoError(t, ValidOriginName(name), "name %q should be valid", name)
	}
	for _, name := range []string{"", "Core", "my origin", "-origin", "with/slash"} {
		require.Error(t, ValidOriginName(name), "name %q should be invalid", name)
	}
}

func TestCreateOrigin(t *testing.T) {
	t.Run("creates an origin", func(t *testing.T) {
		var gotPath string
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusCreated)
		}))

		origin, err := c.CreateOrigin(t.Context(), "myorigin")
		require.NoError(t, err)
		require.Equal(t, "myorigin", origin.Name)
		require.Equal(t, "/origins/myorigin/users", gotPath)
	})

	t.Run("surfaces a conflict", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))

		_, err := c.CreateOrigin(t.Context(), "myorigin")
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("attributes the request to the configured user", func(t *testing.T) {
		var gotUser string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUser = r.Header.Get(UserHeader)
			w.WriteHeader(http.StatusCreated)
		}))
		t.Cleanup(server.Close)

		c, err := New(WithBaseURL(server.URL), WithUser("alex"))
		require.NoError(t, err)

		_, err = c.CreateOrigin(t.Context(), "myorigin")
		require.NoError(t, err)
		require.Equal(t, "alex", gotUser)
	})

	t.Run("rejects an invalid name without calling the depot", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		}))

		_, err := c.CreateOrigin(t.Context(), "Not An Origin")
		require.Error(t, err)
	})
}

func TestOriginAvailable(t *testing.T) {
	t.Run("a 404 means the name is free", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/origins/unclaimed", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}))

		available, err := c.OriginAvailable(t.Context(), "unclaimed")
		require.NoError(t, err)
		require.True(t, available)
	})

	t.Run("a 200 means the name is taken", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		available, err := c.OriginAvailable(t.Context(), "taken")
		require.NoError(t, err)
		require.False(t, available)
	})

	t.Run("reads carry the user too", func(t *testing.T) {
		var gotUser string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUser = r.Header.Get(UserHeader)
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(server.Close)

		c, err := New(WithBaseURL(server.URL), WithUser("alex"))
		require.NoError(t, err)

		_, err = c.OriginAvailable(t.Context(), "unclaimed")
		require.NoError(t, err)
		require.Equal(t, "alex", gotUser)
	})

	t.Run("anything else is an error, not an answer", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))

		_, err := c.OriginAvailable(t.Context(), "forbidden")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	})
}

func TestGetOrigin(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"core","owner":"admin"}`))
	}))

	origin, err := c.GetOrigin(t.Context(), "core")
	require.NoError(t, err)
	require.Equal(t, Origin{Name: "core", Owner: "admin"}, origin)
}

func TestOriginMembers(t *testing.T) {
	var method, path string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, c.AddOriginMember(t.Context(), "core", "alex"))
	require.Equal(t, http.MethodPut, method)
	require.Equal(t, "/origins/core/users/alex", path)

	require.NoError(t, c.RemoveOriginMember(t.Context(), "core", "alex"))
	require.Equal(t, http.MethodDelete, method)
	require.Equal(t, "/origins/core/users/alex", path)
}
