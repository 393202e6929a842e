package depot

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Sentinel errors mapped from depot response statuses. Match with errors.Is.
var (
	// ErrBadRequest is returned when the depot rejects a request as
	// malformed (HTTP 400).
	ErrBadRequest = errors.New("depot: bad request")
	// ErrNotFound is returned when the requested entity does not exist
	// (HTTP 404).
	ErrNotFound = errors.New("depot: not found")
	// ErrConflict is returned when the entity already exists (HTTP 409).
	ErrConflict = errors.New("depot: already exists")
	// ErrUnprocessable is returned when an upload is rejected, typically
	// for a checksum or ident mismatch (HTTP 422).
	ErrUnprocessable = errors.New("depot: unprocessable entity")
)

// APIError is an error response from the depot.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("depot: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("depot: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Is maps status codes onto the package sentinel errors so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrUnprocessable:
		return e.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}

// errorFromResponse reads a bounded amount of the response body into an
// APIError. It does not close the body.
func errorFromResponse(res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return &APIError{
		StatusCode: res.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
