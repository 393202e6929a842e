package depot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Package is the depot's record of a published package artifact.
type Package struct {
	Ident    PackageIdent   `json:"ident"`
	Checksum string         `json:"checksum"`
	Manifest string         `json:"manifest,omitempty"`
	Deps     []PackageIdent `json:"deps,omitempty"`
	Exposes  []uint16       `json:"exposes,omitempty"`
}

// UploadPackage publishes a package artifact. The ident must be fully
// qualified and checksum must be the hex-encoded SHA-256 of the artifact;
// the depot verifies it server-side and rejects mismatches with
// ErrUnprocessable. Re-uploading an existing release fails with ErrConflict.
// The returned location is the depot download path for the new artifact.
func (c *Client) UploadPackage(ctx context.Context, ident PackageIdent, artifact io.Reader, checksum string) (string, error) {
	if !ident.FullyQualified() {
		return "", fmt.Errorf("uploading package: ident %q is not fully qualified", ident)
	}
	if checksum == "" {
		return "", fmt.Errorf("uploading package %q: checksum required", ident)
	}

	segs := append([]string{"pkgs"}, ident.segments()...)
	rawURL := c.apiURL(segs...) + "?" + url.Values{"checksum": []string{checksum}}.Encode()

	res, err := c.send(ctx, "pkg/upload", http.MethodPost, rawURL, artifact)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("uploading package %q: %w", ident, errorFromResponse(res))
	}
	if location := res.Header.Get("Location"); location != "" {
		return location, nil
	}
	// older depots put the download path in the body only
	location, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("uploading package %q: reading response: %w", ident, err)
	}
	return string(location), nil
}

// DownloadPackage fetches a package artifact, writing it to w. The ident
// must be fully qualified. It returns the canonical artifact file name
// reported by the depot.
func (c *Client) DownloadPackage(ctx context.Context, ident PackageIdent, w io.Writer) (string, error) {
	if !ident.FullyQualified() {
		return "", fmt.Errorf("downloading package: ident %q is not fully qualified", ident)
	}

	segs := append([]string{"pkgs"}, ident.segments()...)
	segs = append(segs, "download")

	res, err := c.get(ctx, "pkg/download", c.apiURL(segs...))
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading package %q: %w", ident, errorFromResponse(res))
	}

	filename := res.Header.Get("X-Filename")
	if filename == "" {
		filename = ident.ArchiveName()
	}
	if _, err := io.Copy(w, res.Body); err != nil {
		return "", fmt.Errorf("reading package %q: %w", ident, err)
	}
	return filename, nil
}

// ShowPackage fetches the depot record for a package. A partial ident
// resolves to the latest matching release.
func (c *Client) ShowPackage(ctx context.Context, ident PackageIdent) (Package, error) {
	segs := append([]string{"pkgs"}, ident.segments()...)
	if !ident.FullyQualified() {
		segs = append(segs, "latest")
	}

	res, err := c.get(ctx, "pkg/show", c.apiURL(segs...))
	if err != nil {
		return Package{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Package{}, fmt.Errorf("showing package %q: %w", ident, errorFromResponse(res))
	}

	var pkg Package
	if err := json.NewDecoder(res.Body).Decode(&pkg); err != nil {
		return Package{}, fmt.Errorf("decoding package %q: %w", ident, err)
	}
	return pkg, nil
}

// ListPackages returns the idents matching a partial ident, most precise
// segment first. Listing by origin alone returns everything published under
// it.
func (c *Client) ListPackages(ctx context.Context, ident PackageIdent) ([]PackageIdent, error) {
	segs := append([]string{"pkgs"}, ident.segments()...)

	res, err := c.get(ctx, "pkg/list", c.apiURL(segs...))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing packages %q: %w", ident, errorFromResponse(res))
	}

	var idents []PackageIdent
	if err := json.NewDecoder(res.Body).Decode(&idents); err != nil {
		return nil, fmt.Errorf("decoding package list %q: %w", ident, err)
	}
	return idents, nil
}
