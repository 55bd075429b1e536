// Package config loads tagedit settings from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Display width bounds for wrapped tag values.
const (
	DefaultWidth = 80
	MinWidth     = 60
)

const appName = "tagedit"

type Config struct {
	Width    int    `koanf:"width"`     // display width for -format (default: 80, min: 60)
	Format   bool   `koanf:"format"`    // wrap long values in the report
	Silent   bool   `koanf:"silent"`    // suppress the per-file report
	Editor   string `koanf:"editor"`    // command used by -edit, may carry arguments
	KeepTime bool   `koanf:"keep_time"` // restore modification time after saving
}

// Load reads the user configuration files, then each of extra in order.
// Later files override earlier ones. Missing user files are skipped; a
// missing extra file is an error.
func Load(extra ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	for _, path := range extra {
		path = expandPath(path)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{
		Width: DefaultWidth,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Width = ClampWidth(cfg.Width)

	return cfg, nil
}

// ClampWidth raises w to MinWidth when it is smaller.
func ClampWidth(w int) int {
	return max(w, MinWidth)
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/tagedit/config.toml
	if xdg.ConfigHome != "" {
		paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))
	}

	// 2. ~/.config/tagedit/config.toml, unless it is the same file
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", appName, "config.toml")
		if len(paths) == 0 || paths[0] != p {
			paths = append(paths, p)
		}
	}

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
