package config

import (
	"fmt"
	"path/filepath"
)

// RepoConfig locates the local state directory: the key cache and the
// upload history database live under it.
type RepoConfig struct {
	Dir string `mapstructure:"data_dir" yaml:"data_dir"`
}

func (r RepoConfig) Validate() error {
	if r.Dir == "" {
		return fmt.Errorf("repo data dir required")
	}
	return nil
}

func (r RepoConfig) DatabasePath() string {
	return filepath.Join(r.Dir, "history.db")
}

func (r RepoConfig) KeyCachePath() string {
	return filepath.Join(r.Dir, "keys")
}
