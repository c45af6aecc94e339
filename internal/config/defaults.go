package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigPath returns the default path for the denobench config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "denobench", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "denobench")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "denobench")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "denobench")
		}
		return filepath.Join(home, ".config", "denobench")
	}
}

// DefaultWeightsPath returns the default path for the pretrained weights directory.
func DefaultWeightsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "denobench", "weights")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "denobench", "weights")
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "denobench", "weights")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "denobench", "weights")
		}
		return filepath.Join(home, ".cache", "denobench", "weights")
	}
}
