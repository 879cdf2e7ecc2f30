// Package config loads dread's settings from an optional YAML file overlaid by
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/h0rv/dread/internal/logging"
	"github.com/h0rv/dread/internal/slot"
)

// ErrUnknownBackend indicates a storage backend name that is not supported.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the supported storage backends.
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

const (
	defaultDirName = ".dread"
	configFileName = "config.yml"
	logFileName    = "dread.log"
	dbFileName     = "dread.db"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" env:"DREAD_STORAGE" env-default:"file"`
	Dir     string `yaml:"dir" env:"DREAD_DIR"`
	Key     string `yaml:"key" env:"DREAD_STORAGE_KEY" env-default:"horror_game_dev_data"`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"DREAD_LOG_LEVEL" env-default:"info"`
	Encoding string `yaml:"encoding" env:"DREAD_LOG_ENCODING" env-default:"console"`
	Output   string `yaml:"output" env:"DREAD_LOG_OUTPUT"` // defaults to <dir>/dread.log
}

// Load reads the config file named by $DREAD_CONFIG, or config.yml in the
// data dir, then applies environment variables and defaults. A missing
// config file is not an error.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, statErr := os.Stat(path); statErr == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from env: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configPath() (string, error) {
	if path := os.Getenv("DREAD_CONFIG"); path != "" {
		return path, nil
	}
	dir := os.Getenv("DREAD_DIR")
	if dir == "" {
		var err error
		if dir, err = defaultDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, configFileName), nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home dir: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}

// finish fills derived defaults and validates the result.
func (c *Config) finish() error {
	if c.Storage.Dir == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		c.Storage.Dir = dir
	}
	return c.Validate()
}

// Validate checks the backend name and slot key.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: %q (want one of %v)", ErrUnknownBackend, c.Storage.Backend, Backends)
	}
	if c.Storage.Key == "" {
		return errors.New("storage key must not be empty")
	}
	return nil
}

// Logging returns the logger settings, placing the log file in the data
// dir unless an output was configured.
func (c *Config) Logging() logging.Config {
	output := c.Log.Output
	if output == "" {
		output = filepath.Join(c.Storage.Dir, logFileName)
	}
	return logging.Config{
		Level:      c.Log.Level,
		Encoding:   c.Log.Encoding,
		OutputPath: output,
	}
}

// OpenSlot opens the storage slot the config selects.
func (c *Config) OpenSlot() (slot.Slot, error) {
	switch c.Storage.Backend {
	case BackendFile:
		return slot.NewFile(c.Storage.Dir, c.Storage.Key), nil
	case BackendSQLite:
		s, err := slot.OpenSQLite(filepath.Join(c.Storage.Dir, dbFileName), c.Storage.Key)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return slot.NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}
}
