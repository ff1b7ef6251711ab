// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/devlaunch"
	"github.com/platform-engineering-labs/devlaunch/internal/logging"
	"github.com/platform-engineering-labs/devlaunch/internal/util"
)

const (
	ConfigFileName  = "devlaunch.yaml"
	ConfigDirectory = ".config/devlaunch"

	EnvPort        = "PORT"
	EnvDomain      = "DOMINO_DOMAIN"
	EnvRunHostPath = "DOMINO_RUN_HOST_PATH"
	EnvFlaskApp    = "FLASK_APP"
	EnvFlaskEnv    = "FLASK_ENV"
)

const (
	InspectorAuto = "auto"
	InspectorLsof = "lsof"
	InspectorProc = "proc"
	InspectorNone = "none"
)

var inspectors = []string{InspectorAuto, InspectorLsof, InspectorProc, InspectorNone}

// Config holds everything a launch needs. File values are overlaid on the
// defaults, then the environment is overlaid on both.
type Config struct {
	Domain       string        `yaml:"domain"`
	DefaultPort  string        `yaml:"default_port"`
	Host         string        `yaml:"host"`
	Runner       string        `yaml:"runner"`
	FlaskApp     string        `yaml:"flask_app"`
	FlaskEnv     string        `yaml:"flask_env"`
	Settle       time.Duration `yaml:"settle"`
	StrayPattern string        `yaml:"stray_pattern"`
	Inspector    string        `yaml:"inspector"`
	LogFile      string        `yaml:"log_file"`
	LogLevel     string        `yaml:"log_level"`
	HealthPath   string        `yaml:"health_path"`

	// RunHostPath only ever comes from the environment.
	RunHostPath string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Domain:       devlaunch.DefaultDomain,
		DefaultPort:  devlaunch.DefaultPort,
		Host:         devlaunch.DefaultHost,
		Runner:       "flask",
		FlaskApp:     "app.py",
		FlaskEnv:     "development",
		Settle:       time.Second,
		StrayPattern: "flask run",
		Inspector:    InspectorAuto,
		LogLevel:     "info",
		HealthPath:   "/_stcore/health",
	}
}

func DefaultConfigPath() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, ConfigDirectory, ConfigFileName)
}

// Load reads the YAML file at path over the defaults and applies the
// environment read through getenv. A missing file is only an error when the
// caller asked for it explicitly.
func Load(path string, explicit bool, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		path = util.ExpandHomePath(path)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}

	if v := getenv(EnvDomain); v != "" {
		c.Domain = v
	}
	c.RunHostPath = getenv(EnvRunHostPath)
}

func (c *Config) Validate() error {
	if !slices.Contains(inspectors, c.Inspector) {
		return fmt.Errorf("inspector must be one of %v, got %q", inspectors, c.Inspector)
	}
	if c.Settle < 0 {
		return fmt.Errorf("settle must not be negative, got %s", c.Settle)
	}
	if c.Runner == "" {
		return fmt.Errorf("runner must not be empty")
	}
	if c.DefaultPort == "" {
		return fmt.Errorf("default_port must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}
