package cookie

import (
	"time"
)

// Config holds manager defaults loaded from the environment.
type Config struct {
	Path          string        `env:"COOKIE_PATH" envDefault:""`
	Domain        string        `env:"COOKIE_DOMAIN" envDefault:""`
	MaxAge        int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure        bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly      bool          `env:"COOKIE_HTTP_ONLY" envDefault:"false"`
	SameSite      string        `env:"COOKIE_SAME_SITE" envDefault:""` // lax, strict or none
	StoragePrefix string        `env:"COOKIE_STORAGE_PREFIX" envDefault:""`
	OptionsTTL    time.Duration `env:"COOKIE_OPTIONS_TTL" envDefault:"0s"`
}

// DefaultConfig returns a config that adds nothing to the manager defaults.
func DefaultConfig() Config {
	return Config{}
}

// Attributes returns the default attributes described by the config.
// Only non-zero fields are included. An empty Path keeps the path taken
// from the transport.
func (c Config) Attributes() (Attributes, error) {
	attrs := make(Attributes, 0, 6)

	if c.Path != "" {
		attrs = append(attrs, Path(c.Path))
	}
	if c.Domain != "" {
		attrs = append(attrs, Domain(c.Domain))
	}
	if c.MaxAge != 0 {
		attrs = append(attrs, MaxAge(c.MaxAge))
	}
	if c.Secure {
		attrs = append(attrs, Secure(true))
	}
	if c.HttpOnly {
		attrs = append(attrs, HTTPOnly(true))
	}
	if c.SameSite != "" {
		mode, err := StringToSameSite(c.SameSite)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, SameSite(mode))
	}

	return attrs, nil
}

// NewFromConfig creates a Manager with defaults from cfg. Additional options
// are applied after the config ones.
func NewFromConfig(t Transport, s Storage, cfg Config, opts ...Option) (*Manager, error) {
	attrs, err := cfg.Attributes()
	if err != nil {
		return nil, err
	}

	configOpts := make([]Option, 0, 3+len(opts))
	if len(attrs) > 0 {
		configOpts = append(configOpts, WithDefaults(attrs...))
	}
	if cfg.StoragePrefix != "" {
		configOpts = append(configOpts, WithStoragePrefix(cfg.StoragePrefix))
	}
	if cfg.OptionsTTL > 0 {
		configOpts = append(configOpts, WithOptionsTTL(cfg.OptionsTTL))
	}

	configOpts = append(configOpts, opts...)

	return New(t, s, configOpts...), nil
}
