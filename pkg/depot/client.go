// Package depot is a client for the depot HTTP API: origins, origin keys,
// packages and views.
package depot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/cenkalti/backoff/v5"
	logging "github.com/ipfs/go-log/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	log    = logging.Logger("pkg/depot")
	tracer = otel.Tracer("github.com/packhaus/depot/pkg/depot")
)

// DefaultURL is the API root of a depot running locally with default
// settings. The path component is the API version mount point.
const DefaultURL = "http://localhost:9636/v1"

// DefaultMaxTries is the number of attempts made for idempotent requests
// before giving up.
const DefaultMaxTries = 3

// Client talks to a depot over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	maxTries   uint
	user       string
}

// New creates a new depot client. With no options it talks to DefaultURL
// using http.DefaultClient.
func New(options ...Option) (*Client, error) {
	base, err := url.Parse(DefaultURL)
	if err != nil {
		panic(err)
	}

	c := Client{
		baseURL:    base,
		httpClient: http.DefaultClient,
		maxTries:   DefaultMaxTries,
	}

	for _, opt := range options {
		if err := opt(&c); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// apiURL builds a request URL by appending escaped path segments to the base
// URL.
func (c *Client) apiURL(segments ...string) string {
	u := *c.baseURL
	p := u.EscapedPath()
	for _, seg := range segments {
		p = p + "/" + url.PathEscape(seg)
	}
	u.RawPath = ""
	u.Path = p
	return u.String()
}

// get performs a GET request, retrying transport errors and 5xx responses.
// Responses with any other status are returned to the caller for
// interpretation; the caller owns the response body.
func (c *Client) get(ctx context.Context, op, rawURL string) (*http.Response, error) {
	ctx, span := tracer.Start(ctx, "depot "+op, trace.WithAttributes(
		attribute.String("depot.operation", op),
		attribute.String("http.url", rawURL),
	))
	defer span.End()

	res, err := backoff.Retry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		c.setUser(req)
		res, err := c.httpClient.Do(req)
		if err != nil {
			log.Debugw("retrying request", "op", op, "url", rawURL, "error", err)
			return nil, err
		}
		if res.StatusCode >= http.StatusInternalServerError {
			err := errorFromResponse(res)
			res.Body.Close()
			return nil, err
		}
		return res, nil
	}, backoff.WithMaxTries(c.maxTries))
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	return res, nil
}

// send performs a non-idempotent request (POST, PUT, DELETE). Request bodies
// may not be replayable, so no retries are attempted. The caller owns the
// response body.
func (c *Client) send(ctx context.Context, op, method, rawURL string, body io.Reader) (*http.Response, error) {
	ctx, span := tracer.Start(ctx, "depot "+op, trace.WithAttributes(
		attribute.String("depot.operation", op),
		attribute.String("http.url", rawURL),
	))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	c.setUser(req)
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	return res, nil
}

// UserHeader is the request header carrying the name depot operations are
// attributed to.
const UserHeader = "X-Depot-User"

func (c *Client) setUser(req *http.Request) {
	if c.user != "" {
		req.Header.Set(UserHeader, c.user)
	}
}

// expectStatus drains and closes the response body, returning an error
// unless the response status is one of want.
func expectStatus(res *http.Response, want ...int) error {
	for _, code := range want {
		if res.StatusCode == code {
			io.Copy(io.Discard, res.Body)
			res.Body.Close()
			return nil
		}
	}
	defer res.Body.Close()
	return errorFromResponse(res)
}
