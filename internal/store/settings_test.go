package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSettings_SessionRoundTrip(t *testing.T) {
	s := Settings{Dir: t.TempDir()}
	ctx := context.Background()

	in := &Session{
		DefaultFolder: "/home/user/Documents",
		OpenPaths:     []string{"/n/b.txt", "/n/a.txt", "/n/c.txt"},
		ActivePath:    "/n/a.txt",
	}
	if err := s.SaveSession(ctx, in); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	out, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if out.DefaultFolder != in.DefaultFolder {
		t.Fatalf("default folder = %q, want %q", out.DefaultFolder, in.DefaultFolder)
	}
	if out.ActivePath != in.ActivePath {
		t.Fatalf("active = %q, want %q", out.ActivePath, in.ActivePath)
	}
	if len(out.OpenPaths) != len(in.OpenPaths) {
		t.Fatalf("paths = %v, want %v", out.OpenPaths, in.OpenPaths)
	}
	for i := range in.OpenPaths {
		if out.OpenPaths[i] != in.OpenPaths[i] {
			t.Fatalf("order not preserved: %v, want %v", out.OpenPaths, in.OpenPaths)
		}
	}
}

func TestSettings_LoadMissingIsEmptySession(t *testing.T) {
	s := Settings{Dir: filepath.Join(t.TempDir(), "never-created")}
	sess, err := s.LoadSession(context.Background())
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if sess.DefaultFolder != "" || sess.ActivePath != "" || len(sess.OpenPaths) != 0 {
		t.Fatalf("want empty session, got %+v", sess)
	}
}

func TestSettings_SaveReplacesOpenDocuments(t *testing.T) {
	s := Settings{Dir: t.TempDir()}
	ctx := context.Background()

	if err := s.SaveSession(ctx, &Session{OpenPaths: []string{"/n/a.txt", "/n/b.txt", "/n/c.txt"}}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := s.SaveSession(ctx, &Session{OpenPaths: []string{"/n/c.txt"}}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	sess, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if len(sess.OpenPaths) != 1 || sess.OpenPaths[0] != "/n/c.txt" {
		t.Fatalf("stale rows survived the replace: %v", sess.OpenPaths)
	}
}

func TestSettings_EmptyDirIsNoop(t *testing.T) {
	s := Settings{}
	ctx := context.Background()
	if err := s.SaveSession(ctx, &Session{OpenPaths: []string{"/n/a.txt"}}); err != nil {
		t.Fatalf("SaveSession on zero Settings: %v", err)
	}
	sess, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession on zero Settings: %v", err)
	}
	if len(sess.OpenPaths) != 0 {
		t.Fatalf("zero Settings should hold nothing, got %v", sess.OpenPaths)
	}
}

func TestSettings_CorruptStoreLoadsEmpty(t *testing.T) {
	dir := t.TempDir()
	s := Settings{Dir: dir}
	if err := os.WriteFile(filepath.Join(dir, settingsFileName), []byte("not a database"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	sess, err := s.LoadSession(context.Background())
	if err != nil {
		t.Fatalf("a corrupt settings store must not error, got %v", err)
	}
	if len(sess.OpenPaths) != 0 {
		t.Fatalf("want empty session, got %v", sess.OpenPaths)
	}
}

func TestConfigDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOT_CONFIG_DIR", dir)
	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if got != dir {
		t.Fatalf("ConfigDir = %q, want %q", got, dir)
	}
}

func TestDocumentsDir_NeverEmpty(t *testing.T) {
	if DocumentsDir() == "" {
		t.Fatal("DocumentsDir must always resolve somewhere")
	}
}
