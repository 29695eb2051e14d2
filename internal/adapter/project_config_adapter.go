package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// Configuration file names in order of precedence within one directory.
const (
	HiddenConfigFileName = ".antiseptic.toml"
	ConfigFileName       = "antiseptic.toml"
	PyprojectFileName    = "pyproject.toml"
)

// ErrConfigNotFound is returned when no directory between the start path and
// the filesystem root holds an antiseptic configuration.
var ErrConfigNotFound = errors.New("no antiseptic configuration found")

// ConfigError reports a configuration file that exists but cannot be used.
type ConfigError struct {
	Path m.Path
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ProjectConfig is a discovered configuration file and its antiseptic settings.
type ProjectConfig struct {
	// Path is the file the settings were read from.
	Path m.Path
	// Dir is the directory holding the file; relative paths in the settings
	// resolve against it.
	Dir m.Path
	// Settings holds the antiseptic table, keyed like the viper configuration.
	Settings map[string]any
}

// ProjectConfigAdapter locates and decodes repository configuration.
type ProjectConfigAdapter interface {
	// Find searches start and its ancestors for a configuration file.
	Find(start m.Path) (ProjectConfig, error)
}

// LocalProjectConfigAdapter reads configuration files from the local disk.
type LocalProjectConfigAdapter struct {
	// Logger receives discovery diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// NewLocalProjectConfigAdapter constructs a LocalProjectConfigAdapter.
func NewLocalProjectConfigAdapter() *LocalProjectConfigAdapter {
	return &LocalProjectConfigAdapter{}
}

func (a *LocalProjectConfigAdapter) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}

	return slog.Default()
}

// Find walks from start up to the filesystem root. In every directory
// .antiseptic.toml wins over antiseptic.toml, which wins over a pyproject.toml
// carrying a [tool.antiseptic] table. A pyproject.toml without that table is
// ignored and the search continues upwards.
func (a *LocalProjectConfigAdapter) Find(start m.Path) (ProjectConfig, error) {
	dir, err := filepath.Abs(string(start))
	if err != nil {
		return ProjectConfig{}, err
	}

	for {
		for _, name := range []string{HiddenConfigFileName, ConfigFileName} {
			candidate := filepath.Join(dir, name)
			if !fileExists(candidate) {
				continue
			}

			settings, err := a.decode(candidate)
			if err != nil {
				return ProjectConfig{}, err
			}

			return newProjectConfig(candidate, settings), nil
		}

		pyproject := filepath.Join(dir, PyprojectFileName)
		if fileExists(pyproject) {
			settings, found, err := a.decodePyproject(pyproject)
			if err != nil {
				return ProjectConfig{}, err
			}

			if found {
				return newProjectConfig(pyproject, settings), nil
			}

			a.logger().Debug("pyproject.toml without [tool.antiseptic], continuing", "path", pyproject)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ProjectConfig{}, ErrConfigNotFound
		}

		dir = parent
	}
}

func (a *LocalProjectConfigAdapter) decode(path string) (map[string]any, error) {
	// #nosec G304 - configuration path is discovered from the working directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: m.Path(path), Err: err}
	}

	settings := map[string]any{}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, &ConfigError{Path: m.Path(path), Err: err}
	}

	return settings, nil
}

func (a *LocalProjectConfigAdapter) decodePyproject(path string) (map[string]any, bool, error) {
	// #nosec G304 - configuration path is discovered from the working directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, &ConfigError{Path: m.Path(path), Err: err}
	}

	var doc struct {
		Tool struct {
			Antiseptic map[string]any `toml:"antiseptic"`
		} `toml:"tool"`
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		// An unrelated broken pyproject.toml should not stop the search.
		a.logger().Warn("unparseable pyproject.toml", "path", path, "error", err)
		return nil, false, nil
	}

	if doc.Tool.Antiseptic == nil {
		return nil, false, nil
	}

	return doc.Tool.Antiseptic, true, nil
}

func newProjectConfig(path string, settings map[string]any) ProjectConfig {
	return ProjectConfig{
		Path:     m.Path(path),
		Dir:      m.Path(filepath.Dir(path)),
		Settings: settings,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
