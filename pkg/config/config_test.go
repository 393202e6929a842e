package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads a valid config", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("repo.data_dir", t.TempDir())
		viper.Set("depot.url", "http://localhost:9636/v1")
		viper.Set("depot.user", "alex")

		cfg, err := Load[Config]()
		require.NoError(t, err)
		require.Equal(t, "http://localhost:9636/v1", cfg.Depot.URL)
		require.Equal(t, "alex", cfg.Depot.User)
	})

	t.Run("rejects a missing depot URL", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("repo.data_dir", t.TempDir())

		_, err := Load[Config]()
		require.Error(t, err)
	})

	t.Run("rejects a malformed depot URL", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("repo.data_dir", t.TempDir())
		viper.Set("depot.url", "not a url")

		_, err := Load[Config]()
		require.Error(t, err)
	})

	t.Run("rejects a missing data dir", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("depot.url", "http://localhost:9636/v1")

		_, err := Load[Config]()
		require.Error(t, err)
	})
}

func TestRepoPaths(t *testing.T) {
	r := RepoConfig{Dir: "/data/depot"}
	require.Equal(t, "/data/depot/history.db", r.DatabasePath())
	require.Equal(t, "/data/depot/keys", r.KeyCachePath())
}
