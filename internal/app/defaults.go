package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths locates the jt config file and the per-user data tree.
type Paths struct {
	ConfigFile string
	BaseDir    string
	LogDir     string // jt.log
	DataDir    string // <owner>.db stores
}

// DefaultPaths resolves where jt keeps its files. Lookup order, first hit wins:
//
//	config: $JT_CONFIG_PATH, $XDG_CONFIG_HOME/jt.toml, ~/.config/jt.toml
//	data:   $JT_HOME, $XDG_DATA_HOME/jt, ~/.local/share/jt
func DefaultPaths() (Paths, error) {
	configFile, err := resolve("JT_CONFIG_PATH", "XDG_CONFIG_HOME", "jt.toml", ".config")
	if err != nil {
		return Paths{}, err
	}
	baseDir, err := resolve("JT_HOME", "XDG_DATA_HOME", "jt", filepath.Join(".local", "share"))
	if err != nil {
		return Paths{}, err
	}

	return Paths{
		ConfigFile: configFile,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
		DataDir:    filepath.Join(baseDir, "db"),
	}, nil
}

// resolve returns $override, else name under $xdgVar, else name under
// homeRel in the user's home directory.
func resolve(override, xdgVar, name, homeRel string) (string, error) {
	if p := os.Getenv(override); p != "" {
		return p, nil
	}
	if dir := os.Getenv(xdgVar); dir != "" {
		return filepath.Join(dir, name), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating %s: no %s and no home directory: %w", name, override, err)
	}
	return filepath.Join(home, homeRel, name), nil
}
