// Package config loads the ldlf2dfa server's configuration from a TOML
// file, the same format (and library, github.com/BurntSushi/toml) the
// teacher uses for its world-data files.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config is the top-level configuration for the ldlf2dfa HTTP service.
type Config struct {
	// ListenAddress is the address the server binds to, e.g. ":8080".
	ListenAddress string `toml:"listen_address"`

	// TokenSecret signs and validates JWT bearer tokens. Must be at least
	// MinSecretSize bytes once decoded from its TOML string form.
	TokenSecret string `toml:"token_secret"`

	// CachePath is the path to the sqlite database internal/store uses to
	// cache compiled DFAs.
	CachePath string `toml:"cache_path"`

	// DefaultAlphabet, if non-empty, fixes the atom ordering new formulas
	// are compiled against instead of the order internal/ldlf.FindAtoms
	// discovers them in; atoms not listed here are appended in discovery
	// order after it.
	DefaultAlphabet []string `toml:"default_alphabet"`
}

const (
	// MinSecretSize is the minimum allowed length, in bytes, of a
	// TokenSecret.
	MinSecretSize = 32

	defaultListenAddress = ":8080"
	defaultCachePath     = "ldlf2dfa-cache.db"
)

// Load reads and parses the TOML configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML-formatted configuration data.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := unmarshalTOML(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// FillDefaults returns a copy of cfg with unset fields replaced by their
// defaults.
func (cfg Config) FillDefaults() Config {
	filled := cfg
	if filled.ListenAddress == "" {
		filled.ListenAddress = defaultListenAddress
	}
	if filled.CachePath == "" {
		filled.CachePath = defaultCachePath
	}
	return filled
}

// Validate reports whether cfg has the fields required to run the server
// set to acceptable values.
func (cfg Config) Validate() error {
	if len(cfg.TokenSecret) < MinSecretSize {
		return fmt.Errorf("token_secret: must be at least %d bytes, but is %d", MinSecretSize, len(cfg.TokenSecret))
	}
	if strings.TrimSpace(cfg.CachePath) == "" {
		return fmt.Errorf("cache_path: must not be empty")
	}
	if strings.TrimSpace(cfg.ListenAddress) == "" {
		return fmt.Errorf("listen_address: must not be empty")
	}
	return nil
}
