// Package repo opens the local state directory and hands out its stores.
package repo

import (
	"fmt"
	"os"

	"github.com/packhaus/depot/pkg/bus"
	"github.com/packhaus/depot/pkg/config"
	"github.com/packhaus/depot/pkg/history"
	"github.com/packhaus/depot/pkg/keycache"
)

// FsRepo is a repo rooted at a directory on disk.
type FsRepo struct {
	cfg config.RepoConfig
	bus bus.Bus
}

// Open opens the repo directory, creating it if it does not exist.
func Open(cfg config.RepoConfig) (*FsRepo, error) {
	stat, err := os.Stat(cfg.Dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(cfg.Dir, 0700); err != nil {
			return nil, fmt.Errorf("creating repo dir: %w", err)
		}
		return &FsRepo{cfg: cfg, bus: bus.New()}, nil
	}
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("repo '%s' is not a directory", cfg.Dir)
	}
	return &FsRepo{cfg: cfg, bus: bus.New()}, nil
}

// Bus returns the repo's process-local event bus.
func (r *FsRepo) Bus() bus.Bus {
	return r.bus
}

// KeyCache opens the origin key cache under the repo dir.
func (r *FsRepo) KeyCache() (*keycache.Cache, error) {
	return keycache.New(r.cfg.KeyCachePath())
}

// History opens the upload history database under the repo dir. Events for
// recorded uploads are published on the repo's bus.
func (r *FsRepo) History() (*history.Store, error) {
	return history.Open(r.cfg.DatabasePath(), history.WithEventBus(r.bus))
}
