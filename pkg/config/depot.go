package config

// DepotConfig points the CLI at a depot API.
type DepotConfig struct {
	// URL is the base URL of the depot API, including the /v1 prefix.
	URL string `mapstructure:"url" yaml:"url" validate:"required,url"`
	// User is the name uploads and origin operations are attributed to.
	User string `mapstructure:"user" yaml:"user"`
}

func (c DepotConfig) Validate() error {
	return validateConfig(c)
}
