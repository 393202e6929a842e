package depot

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Option is an option configuring a Client.
type Option func(c *Client) error

// WithBaseURL configures the API root the client talks to, e.g.
// "https://depot.example.com/v1". A trailing slash is ignored.
func WithBaseURL(rawURL string) Option {
	return func(c *Client) error {
		u, err := url.Parse(strings.TrimSuffix(rawURL, "/"))
		if err != nil {
			return fmt.Errorf("parsing depot URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("depot URL %q: scheme must be http or https", rawURL)
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient configures the http.Client used for requests. Use this to
// install a traced or timeout-bound transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = httpClient
		return nil
	}
}

// WithUser attributes requests to a user name. It is sent to the depot in
// the X-Depot-User header and becomes the owner of created origins.
func WithUser(user string) Option {
	return func(c *Client) error {
		c.user = user
		return nil
	}
}

// WithMaxTries configures how many attempts are made for idempotent
// requests before giving up.
func WithMaxTries(n uint) Option {
	return func(c *Client) error {
		if n == 0 {
			return fmt.Errorf("max tries must be at least 1")
		}
		c.maxTries = n
		return nil
	}
}
