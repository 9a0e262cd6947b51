package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths are the locations blogctl uses when no config says otherwise.
type Paths struct {
	ConfigPath string // the TOML config file
	BaseDir    string // session token, age keys and journal live below it
	LogDir     string
}

// GetDefaults resolves the default paths. Each location is taken from the
// first source that is set:
//   - config file: BLOG_CONFIG_PATH, $XDG_CONFIG_HOME/blogctl.toml, ~/.config/blogctl.toml
//   - data dir: BLOG_HOME, $XDG_DATA_HOME/blogctl, ~/.local/share/blogctl
func GetDefaults() (Paths, error) {
	configPath, err := resolvePath("BLOG_CONFIG_PATH", "XDG_CONFIG_HOME", "blogctl.toml", ".config")
	if err != nil {
		return Paths{}, err
	}
	baseDir, err := resolvePath("BLOG_HOME", "XDG_DATA_HOME", "blogctl", ".local", "share")
	if err != nil {
		return Paths{}, err
	}
	return Paths{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
	}, nil
}

// resolvePath returns $override, else $xdgVar/name, else ~/homeParts.../name.
func resolvePath(override, xdgVar, name string, homeParts ...string) (string, error) {
	if p := os.Getenv(override); p != "" {
		return p, nil
	}
	if dir := os.Getenv(xdgVar); dir != "" {
		return filepath.Join(dir, name), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	parts := append([]string{homeDir}, homeParts...)
	return filepath.Join(append(parts, name)...), nil
}
