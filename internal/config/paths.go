package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "hourglass"

// GetConfigDir returns the per-user directory holding the config file, the
// optional sqlite database and the debug log.
func GetConfigDir() (string, error) {
	if override := os.Getenv("HOURGLASS_CONFIG"); override != "" {
		return filepath.Dir(override), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", appName), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appName), nil
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the path to the JSON config file.
// HOURGLASS_CONFIG overrides the platform default.
func GetConfigPath() (string, error) {
	if override := os.Getenv("HOURGLASS_CONFIG"); override != "" {
		return override, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetDBPath returns the default sqlite database path.
func GetDBPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".db"), nil
}

// GetLogPath returns the debug log path.
func GetLogPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".log"), nil
}
