package document

import (
	"context"
	"testing"
	"time"

	"jot-cli/internal/store"
)

func newSessionManager(t *testing.T, fs *memStore, dir string) *Manager {
	t.Helper()
	m := NewManager(context.Background(), Options{
		FileStore:     fs,
		Settings:      store.Settings{Dir: dir},
		AutosaveDelay: 20 * time.Millisecond,
	})
	t.Cleanup(m.Shutdown)
	return m
}

func TestManager_SessionRestoresOpenDocumentsAndActive(t *testing.T) {
	dir := t.TempDir()
	fs := newMemStore()
	fs.put("/n/a.txt", "alpha")
	fs.put("/n/b.txt", "beta")
	fs.put("/n/c.txt", "gamma")

	m := newSessionManager(t, fs, dir)
	for _, p := range []string{"/n/a.txt", "/n/b.txt", "/n/c.txt"} {
		if _, err := m.Open(p); err != nil {
			t.Fatalf("Open(%s): %v", p, err)
		}
	}
	// Activate the middle document so restore has something non-default.
	m.PrevTab()
	if got := m.Active().Path(); got != "/n/b.txt" {
		t.Fatalf("setup: active = %q", got)
	}
	m.Shutdown()

	restored := newSessionManager(t, fs, dir)
	var paths []string
	for _, d := range restored.Documents() {
		paths = append(paths, d.Path())
	}
	want := []string{"/n/a.txt", "/n/b.txt", "/n/c.txt"}
	if len(paths) != len(want) {
		t.Fatalf("restored %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("restored order %v, want %v", paths, want)
		}
	}
	if got := restored.Active().Path(); got != "/n/b.txt" {
		t.Fatalf("restored active = %q, want /n/b.txt", got)
	}
	if got := restored.Documents()[0].Content(); got != "alpha" {
		t.Fatalf("restored content = %q", got)
	}
}

func TestManager_SessionSkipsVanishedPaths(t *testing.T) {
	dir := t.TempDir()
	fs := newMemStore()
	fs.put("/n/keep.txt", "kept")
	fs.put("/n/gone.txt", "doomed")

	m := newSessionManager(t, fs, dir)
	if _, err := m.Open("/n/keep.txt"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := m.Open("/n/gone.txt"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	m.Shutdown()

	// The file disappears between sessions.
	delete(fs.files, "/n/gone.txt")

	restored := newSessionManager(t, fs, dir)
	for _, d := range restored.Documents() {
		if d.Path() == "/n/gone.txt" {
			t.Fatal("vanished path must be dropped from the restored session")
		}
	}
	if got := len(restored.Documents()); got != 1 {
		t.Fatalf("want 1 restored document, got %d", got)
	}
	if got := restored.Active().Path(); got != "/n/keep.txt" {
		t.Fatalf("active = %q", got)
	}
}

func TestManager_SessionNeverPersistsUntitled(t *testing.T) {
	dir := t.TempDir()
	fs := newMemStore()
	fs.put("/n/a.txt", "a")

	m := newSessionManager(t, fs, dir)
	if _, err := m.Open("/n/a.txt"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	m.New() // untitled, active
	m.Shutdown()

	sess, err := store.Settings{Dir: dir}.LoadSession(context.Background())
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if len(sess.OpenPaths) != 1 || sess.OpenPaths[0] != "/n/a.txt" {
		t.Fatalf("persisted paths = %v, want only /n/a.txt", sess.OpenPaths)
	}
	// The untitled active document has no path to persist.
	if sess.ActivePath != "" {
		t.Fatalf("persisted active = %q, want empty", sess.ActivePath)
	}

	restored := newSessionManager(t, fs, dir)
	if got := restored.Active().Path(); got != "/n/a.txt" {
		t.Fatalf("first restored document should be active, got %q", got)
	}
}

func TestManager_SessionRestoreEmptyCreatesUntitled(t *testing.T) {
	restored := newSessionManager(t, newMemStore(), t.TempDir())
	docs := restored.Documents()
	if len(docs) != 1 || !docs[0].IsUntitled() {
		t.Fatal("empty session must restore to one untitled document")
	}
	if restored.Active() == nil {
		t.Fatal("the untitled document must be active")
	}
}

func TestManager_SessionPersistsDefaultFolder(t *testing.T) {
	dir := t.TempDir()
	fs := newMemStore()

	m := newSessionManager(t, fs, dir)
	m.SelectDefaultFolder("/n/notes")
	m.Shutdown()

	restored := newSessionManager(t, fs, dir)
	if got := restored.DefaultFolder(); got != "/n/notes" {
		t.Fatalf("restored default folder = %q", got)
	}
}
