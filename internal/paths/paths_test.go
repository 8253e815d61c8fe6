package paths

import (
	"strings"
	"testing"
)

func TestGetPaths(t *testing.T) {
	p := GetPaths()

	if p.ConfigDir == "" {
		t.Error("ConfigDir should not be empty")
	}
	if !strings.Contains(p.ConfigDir, "dsquery") {
		t.Errorf("ConfigDir should contain 'dsquery', got %q", p.ConfigDir)
	}
}

func TestGetPathsWithEnv(t *testing.T) {
	t.Setenv("DSQUERY_CONFIG_HOME", "/custom/config")

	p := GetPaths()
	if p.ConfigDir != "/custom/config" {
		t.Errorf("expected ConfigDir '/custom/config', got %q", p.ConfigDir)
	}
}

func TestGetPathsWithXDGEnv(t *testing.T) {
	t.Setenv("DSQUERY_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	p := GetPaths()
	if p.ConfigDir != "/xdg/config/dsquery" {
		t.Errorf("expected ConfigDir '/xdg/config/dsquery', got %q", p.ConfigDir)
	}
}

func TestGetConfigFilePath(t *testing.T) {
	t.Setenv("DSQUERY_CONFIG_HOME", "/custom/config")

	path := GetConfigFilePath()
	if path != "/custom/config/config.yaml" {
		t.Errorf("expected '/custom/config/config.yaml', got %q", path)
	}
}
