package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ithacaplayer/bankgen/internal/paths"
)

// DefaultVolume is the default preview playback volume (0-100).
const DefaultVolume = 100

// Config holds the optional settings read from bankgen-config.json.
type Config struct {
	OutputDir     string `json:"output_dir,omitempty"`     // bank directory override
	DefaultVolume int    `json:"default_volume,omitempty"` // preview volume 0-100
	Manifest      bool   `json:"manifest,omitempty"`       // record runs in the manifest db
}

// UnmarshalJSON sets defaults then decodes the JSON structure. Go's
// json.Unmarshal merges into existing struct fields, so only values present
// in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	c.DefaultVolume = DefaultVolume
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{DefaultVolume: DefaultVolume}
}

// Load reads the config file. It tries, in order:
//  1. explicitPath (if non-empty; missing file is an error here)
//  2. bankgen-config.json next to the running binary
//  3. ~/.config/bankgen/bankgen-config.json (or %APPDATA%\bankgen)
//
// The config file is optional: if none is found, Default() is returned.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// User config directory
	home, err := os.UserHomeDir()
	if err == nil {
		var p string
		if runtime.GOOS == "windows" {
			p = filepath.Join(home, "AppData", "Roaming", paths.AppDirName, paths.ConfigFileName)
		} else {
			p = filepath.Join(home, ".config", paths.AppDirName, paths.ConfigFileName)
		}
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	return Default(), nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
