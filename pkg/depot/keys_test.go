package depot

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadOriginKey(t *testing.T) {
	t.Run("uploads key material", func(t *testing.T) {
		var gotPath, gotBody string
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			w.WriteHeader(http.StatusCreated)
		}))

		err := c.UploadOriginKey(t.Context(), "core", "20240101120000", strings.NewReader("KEY MATERIAL"))
		require.NoError(t, err)
		require.Equal(t, "/origins/core/keys/20240101120000", gotPath)
		require.Equal(t, "KEY MATERIAL", gotBody)
	})

	t.Run("an existing revision conflicts", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))

		err := c.UploadOriginKey(t.Context(), "core", "20240101120000", strings.NewReader("KEY"))
		require.ErrorIs(t, err, ErrConflict)
	})
}

func TestUploadOriginSecretKey(t *testing.T) {
	t.Run("requires the public key first", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/origins/core/secret_keys/20240101120000", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}))

		err := c.UploadOriginSecretKey(t.Context(), "core", "20240101120000", strings.NewReader("SECRET"))
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDownloadOriginKey(t *testing.T) {
	t.Run("downloads a revision", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/origins/core/keys/20240101120000", r.URL.Path)
			w.Header().Set("X-Filename", "core-20240101120000.pub")
			_, _ = w.Write([]byte("KEY MATERIAL"))
		}))

		var buf bytes.Buffer
		filename, err := c.DownloadOriginKey(t.Context(), "core", "20240101120000", &buf)
		require.NoError(t, err)
		require.Equal(t, "core-20240101120000.pub", filename)
		require.Equal(t, "KEY MATERIAL", buf.String())
	})

	t.Run("latest resolves on the depot", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/origins/core/keys/latest", r.URL.Path)
			w.Header().Set("X-Filename", "core-20240301000000.pub")
			_, _ = w.Write([]byte("NEWEST KEY"))
		}))

		var buf bytes.Buffer
		filename, err := c.DownloadLatestOriginKey(t.Context(), "core", &buf)
		require.NoError(t, err)
		require.Equal(t, "core-20240301000000.pub", filename)
	})
}

func TestListOriginKeys(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/origins/core/keys", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"origin":"core","revision":"20240101120000","location":"/origins/core/keys/20240101120000"}]`))
	}))

	keys, err := c.ListOriginKeys(t.Context(), "core")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.Equal(t, "20240101120000", keys[0].Revision)
}
