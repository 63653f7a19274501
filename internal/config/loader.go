package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".loanqa"

// XDGConfigFile is the configuration file name inside the XDG config directory.
const XDGConfigFile = "config.yaml"

// EnvPrefix is the prefix of every environment variable read by LoadEnv.
const EnvPrefix = "LOANQA"

// LoadConfigFile loads and validates a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := validator.New().Struct(&cf); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, fmt.Errorf("%w: %s: %s fails %q", ErrInvalidConfigFile, path, fe.Namespace(), fe.Tag())
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfigFile, path, err)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .loanqa in the current directory
// 3. Look for .loanqa in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(XDGConfigDir(), XDGConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// Env holds the configuration read from LOANQA_* environment variables.
// Unset variables leave their pointer fields nil.
type Env struct {
	DataPath         *string  `envconfig:"DATA_PATH"`
	NumRecords       *int     `envconfig:"NUM_RECORDS"`
	Seed             *int64   `envconfig:"SEED"`
	ReportTitle      *string  `envconfig:"REPORT_TITLE"`
	ProfilePath      *string  `envconfig:"PROFILE_PATH"`
	MissingColumns   []string `envconfig:"MISSING_COLUMNS"`
	HistogramColumns []string `envconfig:"HISTOGRAM_COLUMNS"`
	HistogramBins    *int     `envconfig:"HISTOGRAM_BINS"`
	ChartsDir        *string  `envconfig:"CHARTS_DIR"`
	Verbose          *bool    `envconfig:"VERBOSE"`
	LogJSON          *bool    `envconfig:"LOG_JSON"`
}

// LoadEnv reads the LOANQA_* environment variables.
// List values are comma-separated.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return &env, nil
}

// ApplyTo overrides the fields of cfg that are set in the environment.
func (e *Env) ApplyTo(cfg *Config) {
	if e.DataPath != nil {
		cfg.DataPath = *e.DataPath
	}
	if e.NumRecords != nil {
		cfg.NumRecords = *e.NumRecords
	}
	if e.Seed != nil {
		cfg.Seed = *e.Seed
	}
	if e.ReportTitle != nil {
		cfg.ReportTitle = *e.ReportTitle
	}
	if e.ProfilePath != nil {
		cfg.ProfilePath = *e.ProfilePath
	}
	if len(e.MissingColumns) > 0 {
		cfg.MissingColumns = e.MissingColumns
	}
	if len(e.HistogramColumns) > 0 {
		cfg.HistogramColumns = e.HistogramColumns
	}
	if e.HistogramBins != nil {
		cfg.HistogramBins = *e.HistogramBins
	}
	if e.ChartsDir != nil {
		cfg.ChartsDir = *e.ChartsDir
	}
	if e.Verbose != nil {
		cfg.Verbose = *e.Verbose
	}
	if e.LogJSON != nil {
		cfg.LogJSON = *e.LogJSON
	}
}

// Load builds a Config from the defaults, the configuration file and the
// environment, in increasing precedence. configPath names the file
// explicitly; an explicit path that does not exist is ErrConfigNotFound.
// The result is not validated so that callers can still apply flags.
func Load(configPath string) (*Config, error) {
	cfg := NewConfig()

	path := FindConfigFile(configPath)
	if configPath != "" && path == "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}
	if path != "" {
		cf, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cf.ApplyTo(cfg)
		cfg.ConfigFilePath = path
	}

	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	env.ApplyTo(cfg)

	return cfg, nil
}
