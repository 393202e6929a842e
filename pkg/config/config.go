// Package config holds the depot CLI's configuration, loaded from the config
// file, environment and flags via viper.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Repo  RepoConfig  `mapstructure:"repo" yaml:"repo"`
	Depot DepotConfig `mapstructure:"depot" yaml:"depot"`
}

func (c Config) Validate() error {
	if err := c.Repo.Validate(); err != nil {
		return err
	}
	return c.Depot.Validate()
}

// Validatable is any config struct that can check itself after decoding.
type Validatable interface {
	Validate() error
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateConfig(c any) error {
	return validate.Struct(c)
}

// Load decodes the current viper state into a config struct and validates
// it. Flags and environment variables bound by the command layer take
// precedence over the config file.
func Load[T Validatable]() (T, error) {
	var out T
	if err := viper.Unmarshal(&out); err != nil {
		return out, fmt.Errorf("unable to decode config, %w", err)
	}
	if err := out.Validate(); err != nil {
		return out, fmt.Errorf("invalid config, %w", err)
	}
	return out, nil
}
