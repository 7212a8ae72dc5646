package store

import (
	"os"
	"path/filepath"
	"strings"
)

// FileStore is the file access boundary for documents. Read reports a missing
// file through an error satisfying errors.Is(err, os.ErrNotExist); Write
// creates missing parent directories and replaces the target atomically, so a
// partially written file is never observable at path.
type FileStore interface {
	Exists(path string) bool
	Read(path string) (string, error)
	Write(path string, text string) error
}

// OSFileStore is the FileStore backed by the local filesystem.
type OSFileStore struct{}

func NewOSFileStore() OSFileStore {
	return OSFileStore{}
}

func (OSFileStore) Exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func (OSFileStore) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (OSFileStore) Write(path string, text string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// Unique temp file name + rename so concurrent writers never leave a
	// truncated file at path.
	return atomicWriteFile(dir, filepath.Base(path)+".*.tmp", path, []byte(text), 0o644)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// ExpandHome resolves a leading "~" or "~/" against the user's home
// directory. Paths without the shorthand (and paths like "~user") are
// returned unchanged, as is everything when the home dir cannot be resolved.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
