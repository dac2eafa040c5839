package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete tapcalc configuration.
type Config struct {
	// Endpoint is the remote evaluation service
	Endpoint struct {
		// URL receives POST {"expression": ...}
		URL string `env:"TAPCALC_ENDPOINT" env-default:"http://127.0.0.1:5000/calculate" yaml:"url"`
		// Timeout bounds a single evaluation; zero waits indefinitely
		Timeout time.Duration `env:"TAPCALC_ENDPOINT_TIMEOUT" env-default:"0s" yaml:"timeout"`
	} `yaml:"endpoint"`

	Display struct {
		// HighlightThreshold is the expression length at which appends flash
		HighlightThreshold int           `env:"TAPCALC_HIGHLIGHT_THRESHOLD" env-default:"20" yaml:"highlightThreshold"`
		HighlightDuration  time.Duration `env:"TAPCALC_HIGHLIGHT_DURATION" env-default:"300ms" yaml:"highlightDuration"`
		ErrorDuration      time.Duration `env:"TAPCALC_ERROR_DURATION" env-default:"500ms" yaml:"errorDuration"`
	} `yaml:"display"`

	Keypad struct {
		// ResetAfterError starts a new expression when a literal is pressed
		// while "Error" is shown
		ResetAfterError bool `env:"TAPCALC_RESET_AFTER_ERROR" env-default:"false" yaml:"resetAfterError"`
	} `yaml:"keypad"`

	Log struct {
		// Level is one of debug, info, warn, error; empty disables logging
		Level string `env:"TAPCALC_LOG_LEVEL" yaml:"level"`
		// File receives log output; empty means stderr
		File string `env:"TAPCALC_LOG_FILE" yaml:"file"`
	} `yaml:"log"`

	Discovery struct {
		Service string        `env:"TAPCALC_DISCOVERY_SERVICE" env-default:"_calculate._tcp" yaml:"service"`
		Domain  string        `env:"TAPCALC_DISCOVERY_DOMAIN" env-default:"local." yaml:"domain"`
		Timeout time.Duration `env:"TAPCALC_DISCOVERY_TIMEOUT" env-default:"5s" yaml:"timeout"`
	} `yaml:"discovery"`
}

// Mutex for file writes
var fileMutex sync.Mutex

// Default returns the configuration made of defaults and environment
// variables only.
func Default() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "could not read environment")
	}
	return &cfg, nil
}

// Load reads the yaml file at configPath, applying environment overrides.
// A missing file falls back to Default.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default()
	}
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return Default()
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, errors.Wrap(err, "could not read config")
	}
	return &cfg, nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "marshal config")
	}
	return data, nil
}

// Save writes cfg to configPath atomically, creating the directory when
// needed.
func (c *Config) Save(configPath string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	header := []byte(`# tapcalc configuration file
# Every setting can be overridden by its TAPCALC_* environment variable.
#
# Location: ` + configPath + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return errors.Wrap(err, "write temporary config file")
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "save config file")
	}
	return nil
}
