package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath is read before any config is parsed, to locate the .env file.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("SALESDASH_RUNTIME_PATH"))
}

// GetEnvPath is where init writes and start reads the configuration.
func GetEnvPath() string {
	return filepath.Join(GetRuntimePath(), ".env")
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".salesdash"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
