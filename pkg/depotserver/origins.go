package depotserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/packhaus/depot/pkg/depot"
)

func (s *Server) getOrigin(c echo.Context) error {
	name := c.Param("origin")

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.origins[name]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, rec.origin)
}

func (s *Server) createOrigin(c echo.Context) error {
	name := c.Param("origin")
	if err := depot.ValidOriginName(name); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	owner := c.Request().Header.Get("X-Depot-User")
	if owner == "" {
		owner = "depot"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.origins[name]; ok {
		return c.NoContent(http.StatusConflict)
	}
	s.origins[name] = &originRecord{
		origin:     depot.Origin{Name: name, Owner: owner},
		members:    map[string]struct{}{owner: {}},
		keys:       make(map[string][]byte),
		secretKeys: make(map[string][]byte),
		packages:   make(map[string]*packageRecord),
	}
	log.Debugw("origin created", "origin", name, "owner", owner)
	return c.String(http.StatusCreated, "/origins/"+name)
}

func (s *Server) deleteOrigin(c echo.Context) error {
	name := c.Param("origin")

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.origins[name]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	for view := range s.views {
		for key := range rec.packages {
			delete(s.views[view], key)
		}
	}
	delete(s.origins, name)
	log.Debugw("origin deleted", "origin", name)
	return c.NoContent(http.StatusOK)
}

func (s *Server) addOriginMember(c echo.Context) error {
	name := c.Param("origin")
	user := c.Param("user")

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.origins[name]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	rec.members[user] = struct{}{}
	return c.NoContent(http.StatusOK)
}

func (s *Server) removeOriginMember(c echo.Context) error {
	name := c.Param("origin")
	user := c.Param("user")

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.origins[name]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if _, ok := rec.members[user]; !ok {
		return c.NoContent(http.StatusNotFound)
	}
	delete(rec.members, user)
	return c.NoContent(http.StatusOK)
}
