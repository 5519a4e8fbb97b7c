package config

import (
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/goccy/go-yaml"
	"github.com/mcpify/mcpify-install/pkg/spec"
	"github.com/pkg/errors"
)

const (
	// DefaultConfigPath is looked up in the working directory and its parents
	DefaultConfigPath = ".config/mcpify-install.yml"

	EnvReleaseTag = "MCPIFY_RELEASE_TAG"
	EnvInstallDir = "MCPIFY_INSTALL_DIR"
)

// ErrNotFound is returned by Discover when no config file exists.
var ErrNotFound = errors.New("no mcpify-install config found")

// Load reads and parses an installer config file from the given path.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (*spec.InstallSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}

	var cfg spec.InstallSpec
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file: %s", path)
	}

	return &cfg, nil
}

// Discover searches for a config file in the current directory
// and parent directories
func Discover() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get current directory")
	}

	for {
		configPath := filepath.Join(dir, filepath.FromSlash(DefaultConfigPath))
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrNotFound
}

// LoadOrDiscover loads a config from the given path, or discovers one if
// path is empty. A missing discovered config is not an error: the returned
// spec is empty and the returned path is "".
func LoadOrDiscover(configPath string) (*spec.InstallSpec, string, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = Discover()
		if errors.Is(err, ErrNotFound) {
			log.Debug("no config file found, using built-in defaults")
			return &spec.InstallSpec{}, "", nil
		}
		if err != nil {
			return nil, "", err
		}
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// ApplyEnv overlays the MCPIFY_* environment variables onto cfg.
func ApplyEnv(cfg *spec.InstallSpec, getenv func(string) string) {
	if tag := getenv(EnvReleaseTag); tag != "" {
		log.Debugf("%s=%s", EnvReleaseTag, tag)
		cfg.ReleaseTag = tag
	}
	if dir := getenv(EnvInstallDir); dir != "" {
		log.Debugf("%s=%s", EnvInstallDir, dir)
		cfg.InstallDir = dir
	}
}

// Resolve builds the effective InstallSpec: config file (explicit or
// discovered), then environment, then defaults. The result is validated.
func Resolve(configPath string, getenv func(string) string) (*spec.InstallSpec, error) {
	cfg, path, err := LoadOrDiscover(configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Debugf("Loaded config from %s", path)
	}

	ApplyEnv(cfg, getenv)
	cfg.SetDefaults()

	if err := cfg.ValidateAllFields(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
