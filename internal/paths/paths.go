package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "dsquery"

type Paths struct {
	ConfigDir string
}

// GetPaths returns all base paths respecting environment variables
func GetPaths() Paths {
	return Paths{
		ConfigDir: getConfigDir(),
	}
}

func getConfigDir() string {
	// 1. Check dsquery-specific env
	if dir := os.Getenv("DSQUERY_CONFIG_HOME"); dir != "" {
		return dir
	}

	// 2. XDG resolution (XDG_CONFIG_HOME, then platform default)
	xdg.Reload()
	if xdg.ConfigHome != "" {
		return filepath.Join(xdg.ConfigHome, appName)
	}

	// 3. Fall back to the home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".config", appName)
}

// GetConfigFilePath returns the default location of the YAML config file
func GetConfigFilePath() string {
	return filepath.Join(GetPaths().ConfigDir, "config.yaml")
}
