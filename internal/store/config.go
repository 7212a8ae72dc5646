package store

import (
	"os"
	"path/filepath"
	"strings"
)

const settingsFileName = "settings.sqlite"

// ConfigDir returns the directory holding jot's per-user state.
func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.jot).
	if v := strings.TrimSpace(os.Getenv("JOT_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".jot"), nil
}

// DefaultSettings resolves the standard settings store location.
func DefaultSettings() (Settings, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Settings{}, err
	}
	return Settings{Dir: dir}, nil
}

// DocumentsDir returns the platform-standard documents directory, falling
// back to the temp dir when the home directory is unavailable. It never
// fails: a writable default folder must always exist.
func DocumentsDir() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return os.TempDir()
	}
	return filepath.Join(home, "Documents")
}
