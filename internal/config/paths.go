package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectConfigPath is the default local config file, relative to the
// working directory.
const ProjectConfigPath = ".profilecheck/config.json"

// UserConfigPath returns the per-user config file:
// $XDG_CONFIG_HOME/profilecheck/config.json on Linux, the platform
// equivalent elsewhere.
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(dir, "profilecheck", "config.json"), nil
}
