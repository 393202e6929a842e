// Package depotserver is an in-memory depot, suitable for local development
// and integration tests. It speaks the same HTTP API that pkg/depot
// consumes, with the depot's status conventions: 201 on create, 409 on
// duplicate uploads, 422 on checksum mismatch, 404 everywhere an entity is
// missing.
package depotserver

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/packhaus/depot/pkg/depot"
)

var log = logging.Logger("pkg/depotserver")

// DefaultViews are the views present on a freshly started depot.
var DefaultViews = []string{"stable", "unstable"}

// Server is an in-memory depot.
type Server struct {
	mu      sync.RWMutex
	origins map[string]*originRecord
	views   map[string]map[string]struct{}
	echo    *echo.Echo
}

type originRecord struct {
	origin     depot.Origin
	members    map[string]struct{}
	keys       map[string][]byte
	secretKeys map[string][]byte
	packages   map[string]*packageRecord
}

type packageRecord struct {
	pkg  depot.Package
	data []byte
}

// Option is an option configuring a Server.
type Option func(s *Server)

// WithViews replaces the default set of views.
func WithViews(names ...string) Option {
	return func(s *Server) {
		s.views = make(map[string]map[string]struct{}, len(names))
		for _, name := range names {
			s.views[name] = make(map[string]struct{})
		}
	}
}

// New creates a new in-memory depot.
func New(options ...Option) *Server {
	s := &Server{
		origins: make(map[string]*originRecord),
		views:   make(map[string]map[string]struct{}),
	}
	for _, name := range DefaultViews {
		s.views[name] = make(map[string]struct{})
	}

	for _, opt := range options {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	// the depot is consumed by browser clients too
	e.Use(middleware.CORS())

	g := e.Group("/v1")

	g.GET("/origins/:origin", s.getOrigin)
	g.POST("/origins/:origin/users", s.createOrigin)
	g.DELETE("/origins/:origin", s.deleteOrigin)
	g.PUT("/origins/:origin/users/:user", s.addOriginMember)
	g.DELETE("/origins/:origin/users/:user", s.removeOriginMember)

	g.GET("/origins/:origin/keys", s.listOriginKeys)
	g.GET("/origins/:origin/keys/latest", s.downloadLatestOriginKey)
	g.GET("/origins/:origin/keys/:revision", s.downloadOriginKey)
	g.POST("/origins/:origin/keys/:revision", s.uploadOriginKey)
	g.POST("/origins/:origin/secret_keys/:revision", s.uploadOriginSecretKey)

	g.GET("/pkgs/:origin", s.listPackages)
	g.GET("/pkgs/:origin/:pkg", s.listPackages)
	g.GET("/pkgs/:origin/:pkg/latest", s.showPackage)
	g.GET("/pkgs/:origin/:pkg/:version", s.listPackages)
	g.GET("/pkgs/:origin/:pkg/:version/latest", s.showPackage)
	g.GET("/pkgs/:origin/:pkg/:version/:release", s.showPackage)
	g.GET("/pkgs/:origin/:pkg/:version/:release/download", s.downloadPackage)
	g.POST("/pkgs/:origin/:pkg/:version/:release", s.uploadPackage)

	g.GET("/views", s.listViews)
	g.GET("/views/:view/pkgs/:origin", s.listViewPackages)
	g.GET("/views/:view/pkgs/:origin/:pkg", s.listViewPackages)
	g.GET("/views/:view/pkgs/:origin/:pkg/latest", s.showViewPackage)
	g.GET("/views/:view/pkgs/:origin/:pkg/:version", s.listViewPackages)
	g.GET("/views/:view/pkgs/:origin/:pkg/:version/latest", s.showViewPackage)
	g.GET("/views/:view/pkgs/:origin/:pkg/:version/:release", s.showViewPackage)
	g.POST("/views/:view/pkgs/:origin/:pkg/:version/:release/promote", s.promotePackage)

	s.echo = e
	return s
}

// Handler exposes the server as an http.Handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start runs the server on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Views returns the sorted view names.
func (s *Server) Views() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.views))
	for name := range s.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func requestLogger(log *logging.ZapEventLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Debugw("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
			)
			return err
		}
	}
}
