package depotserver

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/packhaus/depot/pkg/depot"
)

func newServerAndClient(t *testing.T) *depot.Client {
	t.Helper()
	server := httptest.NewServer(New().Handler())
	t.Cleanup(server.Close)

	c, err := depot.New(depot.WithBaseURL(server.URL+"/v1"), depot.WithMaxTries(1))
	require.NoError(t, err)
	return c
}

func TestOriginLifecycle(t *testing.T) {
	ctx := t.Context()
	c := newServerAndClient(t)

	available, err := c.OriginAvailable(ctx, "core")
	require.NoError(t, err)
	require.True(t, available)

	_, err = c.CreateOrigin(ctx, "core")
	require.NoError(t, err)

	available, err = c.OriginAvailable(ctx, "core")
	require.NoError(t, err)
	require.False(t, available)

	_, err = c.CreateOrigin(ctx, "core")
	require.ErrorIs(t, err, depot.ErrConflict)

	origin, err := c.GetOrigin(ctx, "core")
	require.NoError(t, err)
	require.Equal(t, "core", origin.Name)

	require.NoError(t, c.AddOriginMember(ctx, "core", "alex"))
	require.NoError(t, c.RemoveOriginMember(ctx, "core", "alex"))
	require.ErrorIs(t, c.RemoveOriginMember(ctx, "core", "alex"), depot.ErrNotFound)

	require.NoError(t, c.DeleteOrigin(ctx, "core"))
	available, err = c.OriginAvailable(ctx, "core")
	require.NoError(t, err)
	require.True(t, available)
}

func TestOriginOwnerAttribution(t *testing.T) {
	ctx := t.Context()
	server := httptest.NewServer(New().Handler())
	t.Cleanup(server.Close)

	t.Run("the configured user becomes the owner", func(t *testing.T) {
		c, err := depot.New(depot.WithBaseURL(server.URL+"/v1"), depot.WithUser("alex"))
		require.NoError(t, err)

		_, err = c.CreateOrigin(ctx, "acme")
		require.NoError(t, err)

		origin, err := c.GetOrigin(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, "alex", origin.Owner)
	})

	t.Run("anonymous clients fall back to the default owner", func(t *testing.T) {
		c, err := depot.New(depot.WithBaseURL(server.URL + "/v1"))
		require.NoError(t, err)

		_, err = c.CreateOrigin(ctx, "anon")
		require.NoError(t, err)

		origin, err := c.GetOrigin(ctx, "anon")
		require.NoError(t, err)
		require.Equal(t, "depot", origin.Owner)
	})
}

func TestKeyLifecycle(t *testing.T) {
	ctx := t.Context()
	c := newServerAndClient(t)

	_, err := c.CreateOrigin(ctx, "core")
	require.NoError(t, err)

	// secret keys need their public half first
	err = c.UploadOriginSecretKey(ctx, "core", "20240101120000", strings.NewReader("SECRET"))
	require.ErrorIs(t, err, depot.ErrNotFound)

	require.NoError(t, c.UploadOriginKey(ctx, "core", "20240101120000", strings.NewReader("PUBLIC OLD")))
	require.NoError(t, c.UploadOriginKey(ctx, "core", "20240301000000", strings.NewReader("PUBLIC NEW")))
	err = c.UploadOriginKey(ctx, "core", "20240101120000", strings.NewReader("AGAIN"))
	require.ErrorIs(t, err, depot.ErrConflict)

	require.NoError(t, c.UploadOriginSecretKey(ctx, "core", "20240101120000", strings.NewReader("SECRET")))

	keys, err := c.ListOriginKeys(ctx, "core")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	require.Equal(t, "20240101120000", keys[0].Revision)

	var buf bytes.Buffer
	filename, err := c.DownloadLatestOriginKey(ctx, "core", &buf)
	require.NoError(t, err)
	require.Equal(t, "core-20240301000000.pub", filename)
	require.Equal(t, "PUBLIC NEW", buf.String())

	buf.Reset()
	_, err = c.DownloadOriginKey(ctx, "core", "20240101120000", &buf)
	require.NoError(t, err)
	require.Equal(t, "PUBLIC OLD", buf.String())
}

func TestPackageLifecycle(t *testing.T) {
	ctx := t.Context()
	c := newServerAndClient(t)

	_, err := c.CreateOrigin(ctx, "core")
	require.NoError(t, err)

	artifact := []byte("ARTIFACT BYTES")
	checksum, err := depot.Checksum(bytes.NewReader(artifact))
	require.NoError(t, err)

	older, err := depot.ParseIdent("core/redis/3.2.1/20240101120000")
	require.NoError(t, err)
	newer, err := depot.ParseIdent("core/redis/3.2.1/20240301000000")
	require.NoError(t, err)

	t.Run("upload verifies the checksum", func(t *testing.T) {
		_, err := c.UploadPackage(ctx, older, bytes.NewReader(artifact), "not the checksum")
		require.ErrorIs(t, err, depot.ErrUnprocessable)
	})

	location, err := c.UploadPackage(ctx, older, bytes.NewReader(artifact), checksum)
	require.NoError(t, err)
	require.Equal(t, "/pkgs/core/redis/3.2.1/20240101120000/download", location)

	_, err = c.UploadPackage(ctx, newer, bytes.NewReader(artifact), checksum)
	require.NoError(t, err)

	t.Run("re-uploading a release conflicts", func(t *testing.T) {
		_, err := c.UploadPackage(ctx, older, bytes.NewReader(artifact), checksum)
		require.ErrorIs(t, err, depot.ErrConflict)
	})

	t.Run("show resolves partial idents to latest", func(t *testing.T) {
		pkg, err := c.ShowPackage(ctx, depot.PackageIdent{Origin: "core", Name: "redis"})
		require.NoError(t, err)
		require.Equal(t, newer, pkg.Ident)
		require.Equal(t, checksum, pkg.Checksum)
	})

	t.Run("list by origin", func(t *testing.T) {
		idents, err := c.ListPackages(ctx, depot.PackageIdent{Origin: "core"})
		require.NoError(t, err)
		require.Equal(t, []depot.PackageIdent{older, newer}, idents)
	})

	t.Run("download round-trips the artifact", func(t *testing.T) {
		var buf bytes.Buffer
		filename, err := c.DownloadPackage(ctx, older, &buf)
		require.NoError(t, err)
		require.Equal(t, older.ArchiveName(), filename)
		require.Equal(t, artifact, buf.Bytes())
	})

	t.Run("promotion into views", func(t *testing.T) {
		views, err := c.ListViews(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"stable", "unstable"}, views)

		require.ErrorIs(t, c.PromotePackage(ctx, "nope", older), depot.ErrNotFound)
		require.NoError(t, c.PromotePackage(ctx, "stable", older))

		idents, err := c.ListViewPackages(ctx, "stable", depot.PackageIdent{Origin: "core"})
		require.NoError(t, err)
		require.Equal(t, []depot.PackageIdent{older}, idents)

		idents, err = c.ListViewPackages(ctx, "unstable", depot.PackageIdent{Origin: "core"})
		require.NoError(t, err)
		require.Empty(t, idents)
	})
}
