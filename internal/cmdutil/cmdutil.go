// Package cmdutil provides utility functions specifically for the depot CLI.
package cmdutil

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/packhaus/depot/pkg/config"
	"github.com/packhaus/depot/pkg/depot"
)

var tracedHttpClient = &http.Client{
	Transport: otelhttp.NewTransport(http.DefaultTransport),
}

// MustGetClient creates a depot API client for the CLI from the loaded
// config.
func MustGetClient(cfg config.DepotConfig, options ...depot.Option) *depot.Client {
	opts := []depot.Option{
		depot.WithBaseURL(cfg.URL),
		depot.WithHTTPClient(tracedHttpClient),
	}
	if cfg.User != "" {
		opts = append(opts, depot.WithUser(cfg.User))
	}
	opts = append(opts, options...)

	c, err := depot.New(opts...)
	if err != nil {
		log.Fatalf("creating depot client: %s", err)
	}
	return c
}

func NewHandledCliError(err error) HandledCliError {
	return HandledCliError{err}
}

// HandledCliError is an error which has already been presented to the user. If
// a HandledCliError is returned from a command, the process should exit with
// a non-zero exit code, but no further error message should be printed.
type HandledCliError struct {
	error
}

func (e HandledCliError) Unwrap() error {
	return e.error
}

// TranslateError rewords depot API errors into messages that make sense at
// the command line. Errors it does not recognize pass through unchanged.
func TranslateError(err error) error {
	switch {
	case errors.Is(err, depot.ErrNotFound):
		return fmt.Errorf("not found on the depot: %w", err)
	case errors.Is(err, depot.ErrConflict):
		return fmt.Errorf("already exists on the depot: %w", err)
	case errors.Is(err, depot.ErrUnprocessable):
		return fmt.Errorf("rejected by the depot, the artifact may be corrupt: %w", err)
	default:
		return err
	}
}
