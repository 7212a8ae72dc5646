package document

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"jot-cli/internal/store"
)

// UntitledName is the display name for documents with no backing file.
const UntitledName = "Untitled"

// Document is one open text buffer with an optional backing file.
//
// Identity is the opaque id assigned at creation; never compare documents by
// path or content. The dirty flag is a one-way ratchet: it is cleared only by
// a completed Load or Save, and set by the first content change after either.
type Document struct {
	id string
	fs store.FileStore

	mu      sync.Mutex
	path    string // "" means untitled
	content string
	dirty   bool

	// onChange is invoked (outside mu) after each SetContent. The manager
	// uses it to arm the autosave debouncer.
	onChange func(*Document)
}

// newID returns doc-<suffix> where suffix is 8 chars of base32 (lowercase, no
// padding), ~40 bits from crypto/rand.
func newID() string {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing means the platform is broken; ids are not
		// security sensitive, so fall back to the zero bytes rather than
		// propagate an error through every construction site.
		return "doc-00000000"
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return "doc-" + strings.ToLower(enc.EncodeToString(b[:]))
}

func newDocument(fs store.FileStore, path string) *Document {
	return &Document{
		id:   newID(),
		fs:   fs,
		path: path,
	}
}

func (d *Document) ID() string { return d.id }

func (d *Document) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

func (d *Document) IsUntitled() bool {
	return d.Path() == ""
}

// FileName returns the last path segment, or "Untitled" for documents without
// a backing file.
func (d *Document) FileName() string {
	p := d.Path()
	if p == "" {
		return UntitledName
	}
	return filepath.Base(p)
}

func (d *Document) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

func (d *Document) IsDirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// SetContent stores text and marks the document dirty. Every content mutation
// goes through here; the change callback re-arms the manager's autosave
// debounce for path-bound documents.
func (d *Document) SetContent(text string) {
	d.mu.Lock()
	d.content = text
	d.dirty = true
	cb := d.onChange
	d.mu.Unlock()
	if cb != nil {
		cb(d)
	}
}

// MarkDirty sets the dirty flag unconditionally. Idempotent.
func (d *Document) MarkDirty() {
	d.mu.Lock()
	d.dirty = true
	d.mu.Unlock()
}

// setPath rebinds the backing file. It does not touch the dirty flag.
func (d *Document) setPath(path string) {
	d.mu.Lock()
	d.path = path
	d.mu.Unlock()
}

func (d *Document) setObserver(fn func(*Document)) {
	d.mu.Lock()
	d.onChange = fn
	d.mu.Unlock()
}

// Load replaces content from the backing file and clears the dirty flag.
//
// A missing file leaves content unchanged and returns an error satisfying
// errors.Is(err, os.ErrNotExist); callers opening a new path treat that as
// "start empty". Read failures also leave content unchanged.
func (d *Document) Load() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.path == "" {
		return ErrNoPath
	}
	text, err := d.fs.Read(store.ExpandHome(d.path))
	if err != nil {
		return err
	}
	d.content = text
	d.dirty = false
	return nil
}

// Save writes content to the backing file atomically, creating parent
// directories as needed, and clears the dirty flag on success. On failure the
// dirty flag is left as it was.
//
// Untitled documents are a no-op: callers resolve a path first.
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.path == "" {
		return nil
	}
	if err := d.fs.Write(store.ExpandHome(d.path), d.content); err != nil {
		return err
	}
	d.dirty = false
	return nil
}

// IsNotFound reports whether err represents a missing file on load.
func IsNotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
