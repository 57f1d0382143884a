// Package config holds readmegen's settings: where user-level files live and
// the per-session options read from YAML.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnvConfigHome overrides the user-level directory outright.
const EnvConfigHome = "READMEGEN_CONFIG_HOME"

const appName = "readmegen"

// Dir returns the directory for user-level files: global templates and the
// env file. $READMEGEN_CONFIG_HOME is used as is; otherwise the directory is
// "readmegen" under $XDG_CONFIG_HOME, %AppData% (Windows only) or ~/.config,
// whichever is found first. Empty when none can be resolved.
func Dir() string {
	if dir := os.Getenv(EnvConfigHome); dir != "" {
		return dir
	}
	if root := configRoot(); root != "" {
		return filepath.Join(root, appName)
	}
	return ""
}

func configRoot() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	if appData := os.Getenv("APPDATA"); appData != "" && runtime.GOOS == "windows" {
		return appData
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// TemplatesDir is the global templates folder, searched after the project's.
func TemplatesDir() string {
	return inDir("templates")
}

// EnvFile is the user-level env file, loaded after the project's .env files.
func EnvFile() string {
	return inDir("env")
}

func inDir(name string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}
