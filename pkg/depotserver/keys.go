package depotserver

import (
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/packhaus/depot/pkg/depot"
)

func (s *Server) listOriginKeys(c echo.Context) error {
	origin := c.Param("origin")

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.origins[origin]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}

	keys := make([]depot.OriginKey, 0, len(rec.keys))
	for revision := range rec.keys {
		keys = append(keys, depot.OriginKey{
			Origin:   origin,
			Revision: revision,
			Location: fmt.Sprintf("/origins/%s/keys/%s", origin, revision),
		})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Revision < keys[j].Revision })
	return c.JSON(http.StatusOK, keys)
}

func (s *Server) uploadOriginKey(c echo.Context) error {
	origin := c.Param("origin")
	revision := c.Param("revision")

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.origins[origin]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if _, ok := rec.keys[revision]; ok {
		return c.NoContent(http.StatusConflict)
	}
	rec.keys[revision] = body
	log.Debugw("origin key uploaded", "origin", origin, "revision", revision)
	return c.String(http.StatusCreated, fmt.Sprintf("/origins/%s/keys/%s", origin, revision))
}

// uploadOriginSecretKey requires the matching public key revision to already
// be present; secret keys are never served back out.
func (s *Server) uploadOriginSecretKey(c echo.Context) error {
	origin := c.Param("origin")
	revision := c.Param("revision")

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.origins[origin]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if _, ok := rec.keys[revision]; !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if _, ok := rec.secretKeys[revision]; ok {
		return c.NoContent(http.StatusConflict)
	}
	rec.secretKeys[revision] = body
	return c.NoContent(http.StatusCreated)
}

func (s *Server) downloadOriginKey(c echo.Context) error {
	return s.serveKey(c, c.Param("origin"), c.Param("revision"))
}

func (s *Server) downloadLatestOriginKey(c echo.Context) error {
	origin := c.Param("origin")

	s.mu.RLock()
	rec, ok := s.origins[origin]
	var latest string
	if ok {
		for revision := range rec.keys {
			if revision > latest {
				latest = revision
			}
		}
	}
	s.mu.RUnlock()

	if latest == "" {
		return c.NoContent(http.StatusNotFound)
	}
	return s.serveKey(c, origin, latest)
}

func (s *Server) serveKey(c echo.Context, origin, revision string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.origins[origin]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	body, ok := rec.keys[revision]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}

	filename := fmt.Sprintf("%s-%s.pub", origin, revision)
	c.Response().Header().Set("X-Filename", filename)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, body)
}
