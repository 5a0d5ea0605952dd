package finfo

import (
	"fmt"

	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Default oplist used when none is given on the command line
	Info string `env:"FINFO_INFO,default:stat"`

	// Digest settings
	DigestAlgorithm string `env:"FINFO_DIGEST_ALGORITHM,default:sha256"`
	ReadBufferSize  int    `env:"FINFO_READ_BUFFER_SIZE,default:32768"`

	// Logging (debug, info, warn, error); empty keeps the profile's level
	LogLevel       string `env:"FINFO_LOG_LEVEL"`
	LogDevelopment bool   `env:"FINFO_LOG_DEVELOPMENT,default:false"`

	// Base-name glob applied to change events in watch mode
	WatchFilter string `env:"FINFO_WATCH_FILTER,default:*"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig returns config loaded from environment variables carrying prefix
// instead of the default one
func LoadConfig(prefix string) (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: prefix}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the default oplist parses and the digest settings are
// usable.
func (c *Config) Validate() error {
	if _, err := ParseInfo(c.Info); err != nil {
		return err
	}
	if _, err := NewHasher(ChecksumAlgorithm(c.DigestAlgorithm)); err != nil {
		return err
	}
	if c.ReadBufferSize <= 0 {
		return fmt.Errorf("%w: read buffer size must be positive, got %d", ErrInvalidArgument, c.ReadBufferSize)
	}
	return nil
}

// Options converts the digest settings into Describer options.
func (c *Config) Options() []Option {
	return []Option{
		WithChecksum(ChecksumAlgorithm(c.DigestAlgorithm)),
		WithReadBufferSize(c.ReadBufferSize),
	}
}
