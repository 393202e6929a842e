package depotserver

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/packhaus/depot/pkg/depot"
)

func identFromParams(c echo.Context) depot.PackageIdent {
	return depot.PackageIdent{
		Origin:  c.Param("origin"),
		Name:    c.Param("pkg"),
		Version: c.Param("version"),
		Release: c.Param("release"),
	}
}

func (s *Server) uploadPackage(c echo.Context) error {
	ident := identFromParams(c)
	if !ident.FullyQualified() {
		return c.NoContent(http.StatusBadRequest)
	}
	checksum := c.QueryParam("checksum")
	if checksum == "" {
		return c.NoContent(http.StatusBadRequest)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	computed, err := depot.Checksum(bytes.NewReader(body))
	if err != nil {
		return c.NoContent(http.StatusInternalServerError)
	}
	if computed != checksum {
		return c.String(http.StatusUnprocessableEntity,
			fmt.Sprintf("checksum mismatch: expected %s, got %s", checksum, computed))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.origins[ident.Origin]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if _, ok := rec.packages[ident.String()]; ok {
		return c.NoContent(http.StatusConflict)
	}
	rec.packages[ident.String()] = &packageRecord{
		pkg:  depot.Package{Ident: ident, Checksum: checksum},
		data: body,
	}
	log.Debugw("package uploaded", "ident", ident.String(), "bytes", len(body))

	location := fmt.Sprintf("/pkgs/%s/download", ident)
	c.Response().Header().Set("Location", location)
	return c.String(http.StatusCreated, location)
}

func (s *Server) downloadPackage(c echo.Context) error {
	ident := identFromParams(c)

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.origins[ident.Origin]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	pr, ok := rec.packages[ident.String()]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}

	filename := ident.ArchiveName()
	c.Response().Header().Set("X-Filename", filename)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, pr.data)
}

func (s *Server) showPackage(c echo.Context) error {
	ident := identFromParams(c)

	s.mu.RLock()
	defer s.mu.RUnlock()

	pr := s.resolve(ident, nil)
	if pr == nil {
		return c.NoContent(http.StatusNotFound)
	}
	c.Response().Header().Set("ETag", pr.pkg.Checksum)
	return c.JSON(http.StatusOK, pr.pkg)
}

func (s *Server) listPackages(c echo.Context) error {
	ident := identFromParams(c)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.origins[ident.Origin]; !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, s.matching(ident, nil))
}

func (s *Server) listViews(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Views())
}

func (s *Server) listViewPackages(c echo.Context) error {
	ident := identFromParams(c)

	s.mu.RLock()
	defer s.mu.RUnlock()

	members, ok := s.views[c.Param("view")]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, s.matching(ident, members))
}

func (s *Server) showViewPackage(c echo.Context) error {
	ident := identFromParams(c)

	s.mu.RLock()
	defer s.mu.RUnlock()

	members, ok := s.views[c.Param("view")]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	pr := s.resolve(ident, members)
	if pr == nil {
		return c.NoContent(http.StatusNotFound)
	}
	c.Response().Header().Set("ETag", pr.pkg.Checksum)
	return c.JSON(http.StatusOK, pr.pkg)
}

func (s *Server) promotePackage(c echo.Context) error {
	ident := identFromParams(c)
	view := c.Param("view")

	s.mu.Lock()
	defer s.mu.Unlock()

	members, ok := s.views[view]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	rec, ok := s.origins[ident.Origin]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if _, ok := rec.packages[ident.String()]; !ok {
		return c.NoContent(http.StatusNotFound)
	}
	members[ident.String()] = struct{}{}
	log.Debugw("package promoted", "ident", ident.String(), "view", view)
	return c.NoContent(http.StatusOK)
}

// matching returns the idents satisfying a partial ident, sorted. A non-nil
// view set further restricts results to its members. Callers hold s.mu.
func (s *Server) matching(ident depot.PackageIdent, view map[string]struct{}) []depot.PackageIdent {
	idents := []depot.PackageIdent{}
	rec, ok := s.origins[ident.Origin]
	if !ok {
		return idents
	}
	for key, pr := range rec.packages {
		if view != nil {
			if _, ok := view[key]; !ok {
				continue
			}
		}
		if ident.Satisfies(pr.pkg.Ident) || ident.Name == "" {
			idents = append(idents, pr.pkg.Ident)
		}
	}
	sort.Slice(idents, func(i, j int) bool { return idents[i].String() < idents[j].String() })
	return idents
}

// resolve finds the package for an ident, taking the lexically greatest
// version and release when the ident is partial. Callers hold s.mu.
func (s *Server) resolve(ident depot.PackageIdent, view map[string]struct{}) *packageRecord {
	rec, ok := s.origins[ident.Origin]
	if !ok {
		return nil
	}
	var best *packageRecord
	for key, pr := range rec.packages {
		if view != nil {
			if _, ok := view[key]; !ok {
				continue
			}
		}
		if !ident.Satisfies(pr.pkg.Ident) {
			continue
		}
		if best == nil || pr.pkg.Ident.String() > best.pkg.Ident.String() {
			best = pr
		}
	}
	return best
}
