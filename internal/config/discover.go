package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// relPath is the config file location relative to an XDG config directory.
const relPath = "plexfind/config.toml"

const systemPath = "/etc/plexfind/config.toml"

// DefaultPath returns the config path under the user's XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, filepath.FromSlash(relPath))
}

// Discover finds the config file. Search order:
//  1. PLEXFIND_CONFIG environment variable
//  2. ./config.toml
//  3. $XDG_CONFIG_HOME/plexfind/config.toml, then each of $XDG_CONFIG_DIRS
//  4. /etc/plexfind/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv("PLEXFIND_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("PLEXFIND_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	if _, err := os.Stat("./config.toml"); err == nil {
		return "./config.toml", nil
	}
	if p, err := xdg.SearchConfigFile(relPath); err == nil {
		return p, nil
	}
	if _, err := os.Stat(systemPath); err == nil {
		return systemPath, nil
	}

	return "", fmt.Errorf("config not found, checked: %s", strings.Join(searchPaths(), ", "))
}

func searchPaths() []string {
	paths := []string{"./config.toml", DefaultPath()}
	for _, dir := range xdg.ConfigDirs {
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(relPath)))
	}
	return append(paths, systemPath)
}
