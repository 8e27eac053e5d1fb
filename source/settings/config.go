package settings

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// The project configuration, read from a welang.yaml file at the root of the project if
// there is one.
type Config struct {
	Extension string      `yaml:"extension"`
	Workers   int         `yaml:"workers"` // How many independent module trees may be typed at once.
	Colour    bool        `yaml:"colour"`
	Store     StoreConfig `yaml:"store"`
}

// Where the signature store lives. An empty driver means there is no store.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

func DefaultConfig() *Config {
	return &Config{Extension: FILE_EXTENSION, Workers: 4, Colour: true}
}

// Reads the configuration at the path. A file that doesn't exist gives the defaults; a
// file that exists but can't be read or decoded is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading configuration %s", path)
	}
	if err := ParseConfig(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "decoding configuration %s", path)
	}
	return cfg, nil
}

// Decodes YAML over the top of the configuration supplied, so that absent keys keep
// their existing values.
func ParseConfig(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if cfg.Extension == "" {
		cfg.Extension = FILE_EXTENSION
	}
	if cfg.Extension[0] != '.' {
		cfg.Extension = "." + cfg.Extension
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return nil
}
