package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Settings persists the small per-user state that survives restarts: the
// default folder and the session (which documents were open, which was
// active).
//
// Loads are intentionally "best effort": a missing or unreadable store yields
// an empty session rather than an error, so startup never fails on state we
// can regenerate.
type Settings struct {
	Dir string
}

// Session is the persisted record of open documents.
//
// OpenPaths holds path-bound documents only, in tab order; untitled documents
// are never persisted. ActivePath is empty when the active document was
// untitled.
type Session struct {
	DefaultFolder string
	OpenPaths     []string
	ActivePath    string
}

func (s Settings) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Settings) settingsPath() string {
	return filepath.Join(s.Dir, settingsFileName)
}

func (s Settings) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.settingsPath())
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage. WAL enables one writer + many
	// readers; busy_timeout avoids "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSettings(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSettings(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS open_documents (
			position INTEGER PRIMARY KEY,
			path TEXT NOT NULL
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// LoadSession reads the persisted session. Missing or corrupt state is
// treated as empty, never as an error.
func (s Settings) LoadSession(ctx context.Context) (*Session, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &Session{}, nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		// Best-effort: a corrupt settings db should not block startup.
		return &Session{}, nil
	}
	defer db.Close()

	sess := &Session{}
	rows, err := db.QueryContext(ctx, `SELECT k, v FROM settings`)
	if err != nil {
		return &Session{}, nil
	}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			_ = rows.Close()
			return &Session{}, nil
		}
		switch k {
		case "default_folder":
			sess.DefaultFolder = v
		case "active_document_path":
			sess.ActivePath = v
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return &Session{}, nil
	}
	_ = rows.Close()

	rows, err = db.QueryContext(ctx, `SELECT path FROM open_documents ORDER BY position ASC`)
	if err != nil {
		return &Session{}, nil
	}
	defer rows.Close()
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return &Session{}, nil
		}
		if strings.TrimSpace(p) != "" {
			sess.OpenPaths = append(sess.OpenPaths, p)
		}
	}
	if err := rows.Err(); err != nil {
		return &Session{}, nil
	}
	return sess, nil
}

// SaveSession replaces the persisted session in one transaction.
func (s Settings) SaveSession(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	kv := map[string]string{
		"default_folder":       sess.DefaultFolder,
		"active_document_path": sess.ActivePath,
	}
	for k, v := range kv {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO settings(k, v) VALUES(?, ?)`, k, v); err != nil {
			return err
		}
	}

	// Replace-all keeps the position column dense and the write logic simple.
	if _, err := tx.ExecContext(ctx, `DELETE FROM open_documents`); err != nil {
		return err
	}
	for i, p := range sess.OpenPaths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO open_documents(position, path) VALUES(?, ?)`, i, p); err != nil {
			return err
		}
	}

	return tx.Commit()
}
