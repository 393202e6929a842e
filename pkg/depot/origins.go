package depot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Origin is a namespace in a depot under which keys and packages are
// published.
type Origin struct {
	Name  string `json:"name"`
	Owner string `json:"owner,omitempty"`
}

var validate = newValidate()

var originNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

func newValidate() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("originname", func(fl validator.FieldLevel) bool {
		return originNameRe.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// ValidOriginName reports whether name is usable as an origin name:
// lowercase alphanumeric with interior dashes and underscores.
func ValidOriginName(name string) error {
	if err := validate.Var(name, "required,max=255,originname"); err != nil {
		return fmt.Errorf("invalid origin name %q: must be lowercase letters, digits, '-' or '_'", name)
	}
	return nil
}

// CreateOrigin reserves the origin name on the depot, with the requesting
// user as initial member.
func (c *Client) CreateOrigin(ctx context.Context, name string) (Origin, error) {
	if err := ValidOriginName(name); err != nil {
		return Origin{}, err
	}

	res, err := c.send(ctx, "origin/create", http.MethodPost, c.apiURL("origins", name, "users"), nil)
	if err != nil {
		return Origin{}, err
	}
	if err := expectStatus(res, http.StatusCreated); err != nil {
		return Origin{}, fmt.Errorf("creating origin %q: %w", name, err)
	}
	return Origin{Name: name}, nil
}

// OriginAvailable reports whether the origin name is still unclaimed. A 200
// response means the origin exists and the name is taken; a 404 means it is
// available. Any other response is an error.
func (c *Client) OriginAvailable(ctx context.Context, name string) (bool, error) {
	if err := ValidOriginName(name); err != nil {
		return false, err
	}

	res, err := c.get(ctx, "origin/available", c.apiURL("origins", name))
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return false, nil
	case http.StatusNotFound:
		return true, nil
	default:
		return false, fmt.Errorf("checking origin %q: %w", name, errorFromResponse(res))
	}
}

// GetOrigin fetches an origin by name.
func (c *Client) GetOrigin(ctx context.Context, name string) (Origin, error) {
	res, err := c.get(ctx, "origin/get", c.apiURL("origins", name))
	if err != nil {
		return Origin{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Origin{}, fmt.Errorf("getting origin %q: %w", name, errorFromResponse(res))
	}

	var origin Origin
	if err := json.NewDecoder(res.Body).Decode(&origin); err != nil {
		return Origin{}, fmt.Errorf("decoding origin %q: %w", name, err)
	}
	return origin, nil
}

// DeleteOrigin removes the origin and everything published under it.
func (c *Client) DeleteOrigin(ctx context.Context, name string) error {
	res, err := c.send(ctx, "origin/delete", http.MethodDelete, c.apiURL("origins", name), nil)
	if err != nil {
		return err
	}
	if err := expectStatus(res, http.StatusOK); err != nil {
		return fmt.Errorf("deleting origin %q: %w", name, err)
	}
	return nil
}

// AddOriginMember grants user membership of the origin.
func (c *Client) AddOriginMember(ctx context.Context, origin, user string) error {
	res, err := c.send(ctx, "origin/member/add", http.MethodPut, c.apiURL("origins", origin, "users", user), nil)
	if err != nil {
		return err
	}
	if err := expectStatus(res, http.StatusOK); err != nil {
		return fmt.Errorf("adding %q to origin %q: %w", user, origin, err)
	}
	return nil
}

// RemoveOriginMember revokes user membership of the origin.
func (c *Client) RemoveOriginMember(ctx context.Context, origin, user string) error {
	res, err := c.send(ctx, "origin/member/remove", http.MethodDelete, c.apiURL("origins", origin, "users", user), nil)
	if err != nil {
		return err
	}
	if err := expectStatus(res, http.StatusOK); err != nil {
		return fmt.Errorf("removing %q from origin %q: %w", user, origin, err)
	}
	return nil
}
