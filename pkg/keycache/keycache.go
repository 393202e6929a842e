// Package keycache stores origin public keys on disk so signatures can be
// verified without asking the depot for the same key twice. Keys are plain
// files named origin-revision.pub under a single directory.
package keycache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/afero"
)

var log = logging.Logger("pkg/keycache")

// ErrKeyNotFound indicates the requested key revision is not cached.
var ErrKeyNotFound = errors.New("key not found in cache")

// Cache is a directory of cached origin public keys.
type Cache struct {
	fs  afero.Fs
	dir string
}

// Option is an option configuring a Cache.
type Option func(c *Cache)

// WithFs substitutes the filesystem the cache operates on. Tests use an
// in-memory filesystem.
func WithFs(fs afero.Fs) Option {
	return func(c *Cache) {
		c.fs = fs
	}
}

// New creates a key cache rooted at dir, creating the directory if needed.
func New(dir string, options ...Option) (*Cache, error) {
	c := &Cache{fs: afero.NewOsFs(), dir: dir}
	for _, opt := range options {
		opt(c)
	}
	if err := c.fs.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating key cache dir: %w", err)
	}
	return c, nil
}

func keyFileName(origin, revision string) string {
	return fmt.Sprintf("%s-%s.pub", origin, revision)
}

// Put stores a key revision and returns the path it was written to.
// Overwriting an existing revision is allowed; key material for a revision
// never changes, so a rewrite is harmless.
func (c *Cache) Put(origin, revision string, key []byte) (string, error) {
	path := c.path(origin, revision)
	if err := afero.WriteFile(c.fs, path, key, 0600); err != nil {
		return "", fmt.Errorf("caching key %s-%s: %w", origin, revision, err)
	}
	log.Debugw("key cached", "origin", origin, "revision", revision, "path", path)
	return path, nil
}

// Get returns the cached key material for a revision.
func (c *Cache) Get(origin, revision string) ([]byte, error) {
	body, err := afero.ReadFile(c.fs, c.path(origin, revision))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached key %s-%s: %w", origin, revision, err)
	}
	return body, nil
}

// Latest returns the highest cached revision for an origin and its key
// material. Revisions are timestamps, so lexical order is recency order.
func (c *Cache) Latest(origin string) (string, []byte, error) {
	revisions, err := c.List(origin)
	if err != nil {
		return "", nil, err
	}
	if len(revisions) == 0 {
		return "", nil, ErrKeyNotFound
	}
	latest := revisions[len(revisions)-1]
	body, err := c.Get(origin, latest)
	if err != nil {
		return "", nil, err
	}
	return latest, body, nil
}

// List returns the cached revisions for an origin in ascending order.
func (c *Cache) List(origin string) ([]string, error) {
	entries, err := afero.ReadDir(c.fs, c.dir)
	if err != nil {
		return nil, fmt.Errorf("listing key cache: %w", err)
	}

	prefix := origin + "-"
	var revisions []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".pub") {
			continue
		}
		revision := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".pub")
		// origins may themselves contain dashes; a revision never does
		if revision == "" || strings.Contains(revision, "-") {
			continue
		}
		revisions = append(revisions, revision)
	}
	sort.Strings(revisions)
	return revisions, nil
}

func (c *Cache) path(origin, revision string) string {
	return filepath.Join(c.dir, keyFileName(origin, revision))
}
