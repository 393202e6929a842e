package depot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OriginKey describes one revision of an origin's public signing key.
type OriginKey struct {
	Origin   string `json:"origin"`
	Revision string `json:"revision"`
	Location string `json:"location"`
}

// ListOriginKeys returns all public key revisions published for the origin.
func (c *Client) ListOriginKeys(ctx context.Context, origin string) ([]OriginKey, error) {
	res, err := c.get(ctx, "key/list", c.apiURL("origins", origin, "keys"))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing keys for origin %q: %w", origin, errorFromResponse(res))
	}

	var keys []OriginKey
	if err := json.NewDecoder(res.Body).Decode(&keys); err != nil {
		return nil, fmt.Errorf("decoding keys for origin %q: %w", origin, err)
	}
	return keys, nil
}

// UploadOriginKey publishes a public key revision for the origin. The depot
// rejects a revision that already exists with ErrConflict.
func (c *Client) UploadOriginKey(ctx context.Context, origin, revision string, key io.Reader) error {
	res, err := c.send(ctx, "key/upload", http.MethodPost, c.apiURL("origins", origin, "keys", revision), key)
	if err != nil {
		return err
	}
	if err := expectStatus(res, http.StatusCreated); err != nil {
		return fmt.Errorf("uploading key %s-%s: %w", origin, revision, err)
	}
	return nil
}

// UploadOriginSecretKey stores a secret key revision for the origin. The
// matching public key revision must already have been uploaded, otherwise
// the depot responds with ErrNotFound.
func (c *Client) UploadOriginSecretKey(ctx context.Context, origin, revision string, key io.Reader) error {
	res, err := c.send(ctx, "key/upload-secret", http.MethodPost, c.apiURL("origins", origin, "secret_keys", revision), key)
	if err != nil {
		return err
	}
	if err := expectStatus(res, http.StatusCreated); err != nil {
		return fmt.Errorf("uploading secret key %s-%s: %w", origin, revision, err)
	}
	return nil
}

// DownloadOriginKey fetches a public key revision, writing the key material
// to w. It returns the canonical file name reported by the depot.
func (c *Client) DownloadOriginKey(ctx context.Context, origin, revision string, w io.Writer) (string, error) {
	return c.downloadKey(ctx, origin, revision, c.apiURL("origins", origin, "keys", revision), w)
}

// DownloadLatestOriginKey fetches the most recent public key revision for
// the origin, writing the key material to w. It returns the canonical file
// name reported by the depot.
func (c *Client) DownloadLatestOriginKey(ctx context.Context, origin string, w io.Writer) (string, error) {
	return c.downloadKey(ctx, origin, "latest", c.apiURL("origins", origin, "keys", "latest"), w)
}

func (c *Client) downloadKey(ctx context.Context, origin, revision, rawURL string, w io.Writer) (string, error) {
	res, err := c.get(ctx, "key/download", rawURL)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading key %s-%s: %w", origin, revision, errorFromResponse(res))
	}

	filename := res.Header.Get("X-Filename")
	if _, err := io.Copy(w, res.Body); err != nil {
		return "", fmt.Errorf("reading key %s-%s: %w", origin, revision, err)
	}
	return filename, nil
}
