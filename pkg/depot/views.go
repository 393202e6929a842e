package depot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListViews returns the names of all views on the depot.
func (c *Client) ListViews(ctx context.Context) ([]string, error) {
	res, err := c.get(ctx, "view/list", c.apiURL("views"))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing views: %w", errorFromResponse(res))
	}

	var views []string
	if err := json.NewDecoder(res.Body).Decode(&views); err != nil {
		return nil, fmt.Errorf("decoding views: %w", err)
	}
	return views, nil
}

// ListViewPackages returns the idents in a view matching a partial ident.
func (c *Client) ListViewPackages(ctx context.Context, view string, ident PackageIdent) ([]PackageIdent, error) {
	segs := append([]string{"views", view, "pkgs"}, ident.segments()...)

	res, err := c.get(ctx, "view/pkg/list", c.apiURL(segs...))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing packages in view %q: %w", view, errorFromResponse(res))
	}

	var idents []PackageIdent
	if err := json.NewDecoder(res.Body).Decode(&idents); err != nil {
		return nil, fmt.Errorf("decoding packages in view %q: %w", view, err)
	}
	return idents, nil
}

// PromotePackage associates a published package with a view. The ident must
// be fully qualified and both the view and the package must already exist.
func (c *Client) PromotePackage(ctx context.Context, view string, ident PackageIdent) error {
	if !ident.FullyQualified() {
		return fmt.Errorf("promoting package: ident %q is not fully qualified", ident)
	}

	segs := append([]string{"views", view, "pkgs"}, ident.segments()...)
	segs = append(segs, "promote")

	res, err := c.send(ctx, "pkg/promote", http.MethodPost, c.apiURL(segs...), nil)
	if err != nil {
		return err
	}
	if err := expectStatus(res, http.StatusOK); err != nil {
		return fmt.Errorf("promoting %q to view %q: %w", ident, view, err)
	}
	return nil
}
