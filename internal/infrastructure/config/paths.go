package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appName      = "plume"
	databaseName = "plume.sqlite"
)

// ConfigDir returns the XDG config directory for plume. PLUME_ENV=dev uses
// a .dev directory under the current working directory instead, keeping
// development state out of the real profile.
func ConfigDir() (string, error) {
	if os.Getenv("PLUME_ENV") == "dev" {
		return devDir()
	}
	return filepath.Join(xdg.ConfigHome, appName), nil
}

// DataDir returns the XDG data directory for plume.
func DataDir() (string, error) {
	if os.Getenv("PLUME_ENV") == "dev" {
		return devDir()
	}
	return filepath.Join(xdg.DataHome, appName), nil
}

func devDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, ".dev", appName), nil
}

// ConfigFile returns the path of the TOML configuration file.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DatabaseFile returns the path of the history database.
func DatabaseFile() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, databaseName), nil
}

// EnsureDirectories creates the config and data directories if missing.
func EnsureDirectories() error {
	for _, get := range []func() (string, error){ConfigDir, DataDir} {
		dir, err := get()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}
