package document

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"jot-cli/internal/store"
)

// Decision is the outcome of the interactive close confirmation.
type Decision int

const (
	// DecisionSave writes the document before closing. Untitled documents go
	// through the save-as picker first.
	DecisionSave Decision = iota
	// DecisionDiscard closes without saving.
	DecisionDiscard
	// DecisionCancel aborts the close; nothing changes.
	DecisionCancel
)

// Prompter is the external collaborator for the two interactive flows the
// manager depends on. Implementations block until the user decides.
type Prompter interface {
	// ConfirmClose presents the three-way save/discard/cancel choice for a
	// dirty document.
	ConfirmClose(name string) (Decision, error)

	// PickSavePath resolves a destination for an untitled document. It
	// returns ErrCancelled (or an empty path) when the user aborts.
	PickSavePath(dir string, suggested string) (string, error)
}

// Options configures a Manager. Zero values fall back to the OS file store,
// the default settings location, and DefaultAutosaveDelay.
type Options struct {
	FileStore     store.FileStore
	Settings      store.Settings
	AutosaveDelay time.Duration
}

// Manager owns the ordered collection of open documents, the active-document
// selection, the default folder, and session persistence. All lifecycle
// transitions go through it.
//
// Exported methods are safe for concurrent use; in practice callers drive the
// manager from one goroutine and the mutex exists to order autosave timer
// fires with user operations.
type Manager struct {
	fs            store.FileStore
	settings      store.Settings
	autosaveDelay time.Duration

	mu            sync.Mutex
	docs          []*Document
	activeID      string
	defaultFolder string
	timers        map[string]*debouncer
}

// NewManager builds a manager and restores the previous session: the default
// folder (falling back to the documents dir, then temp), then every persisted
// open path that still exists on disk. When nothing restores, one fresh
// untitled document is created so the collection is never empty.
func NewManager(ctx context.Context, opts Options) *Manager {
	fs := opts.FileStore
	if fs == nil {
		fs = store.NewOSFileStore()
	}
	m := &Manager{
		fs:            fs,
		settings:      opts.Settings,
		autosaveDelay: opts.AutosaveDelay,
		timers:        map[string]*debouncer{},
	}

	sess, err := m.settings.LoadSession(ctx)
	if err != nil || sess == nil {
		sess = &store.Session{}
	}

	m.defaultFolder = strings.TrimSpace(sess.DefaultFolder)
	if m.defaultFolder == "" {
		m.defaultFolder = store.DocumentsDir()
	}

	m.restoreSession(sess)
	if len(m.docs) == 0 {
		doc := newDocument(m.fs, "")
		m.observe(doc)
		m.docs = append(m.docs, doc)
		m.activeID = doc.ID()
	}
	return m
}

// restoreSession appends a document per persisted path that still exists.
// Vanished paths are dropped silently; they are not errors.
func (m *Manager) restoreSession(sess *store.Session) {
	for _, p := range sess.OpenPaths {
		resolved := resolvePath(p)
		if resolved == "" || m.findByPath(resolved) != nil {
			continue
		}
		if !m.fs.Exists(store.ExpandHome(resolved)) {
			continue
		}
		doc := newDocument(m.fs, resolved)
		_ = doc.Load() // best effort; an unreadable file restores empty
		m.observe(doc)
		m.docs = append(m.docs, doc)
		if resolved == resolvePath(sess.ActivePath) {
			m.activeID = doc.ID()
		}
	}
	if m.activeID == "" && len(m.docs) > 0 {
		m.activeID = m.docs[0].ID()
	}
}

// resolvePath normalizes a path for identity comparisons: home expansion,
// then absolute + clean.
func resolvePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	path = store.ExpandHome(path)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Documents returns the open documents in tab order.
func (m *Manager) Documents() []*Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Document, len(m.docs))
	copy(out, m.docs)
	return out
}

// Active returns the active document. It is nil only transiently during
// construction; after NewManager returns there is always one.
func (m *Manager) Active() *Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeLocked()
}

func (m *Manager) activeLocked() *Document {
	for _, d := range m.docs {
		if d.ID() == m.activeID {
			return d
		}
	}
	return nil
}

// DefaultFolder returns the starting location for open/save-as flows.
func (m *Manager) DefaultFolder() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaultFolder
}

// SelectDefaultFolder sets and persists the default folder.
func (m *Manager) SelectDefaultFolder(path string) {
	resolved := resolvePath(path)
	if resolved == "" {
		return
	}
	m.mu.Lock()
	m.defaultFolder = resolved
	m.persistLocked()
	m.mu.Unlock()
}

// New appends a fresh empty untitled document and makes it active. It always
// succeeds regardless of existing state.
func (m *Manager) New() *Document {
	doc := newDocument(m.fs, "")
	m.observe(doc)

	m.mu.Lock()
	m.docs = append(m.docs, doc)
	m.activeID = doc.ID()
	m.persistLocked()
	m.mu.Unlock()
	return doc
}

// Open opens path, activating the existing document if one is already bound
// to it (the in-memory content wins over the disk copy; no reload happens).
//
// Opening is best effort: a missing or unreadable file still yields an
// appended, active document with empty content. The returned error reports a
// read failure for the caller/UI; the document is valid either way.
func (m *Manager) Open(path string) (*Document, error) {
	resolved := resolvePath(path)
	if resolved == "" {
		return m.New(), nil
	}

	m.mu.Lock()
	if existing := m.findByPath(resolved); existing != nil {
		m.activeID = existing.ID()
		m.persistLocked()
		m.mu.Unlock()
		return existing, nil
	}
	m.mu.Unlock()

	doc := newDocument(m.fs, resolved)
	err := doc.Load()
	if IsNotFound(err) {
		err = nil
	}
	m.observe(doc)

	m.mu.Lock()
	// Re-check: path may have been opened while we were reading.
	if existing := m.findByPath(resolved); existing != nil {
		m.activeID = existing.ID()
		m.persistLocked()
		m.mu.Unlock()
		return existing, nil
	}
	m.docs = append(m.docs, doc)
	m.activeID = doc.ID()
	m.persistLocked()
	m.mu.Unlock()
	return doc, err
}

func (m *Manager) findByPath(resolved string) *Document {
	for _, d := range m.docs {
		if p := d.Path(); p != "" && p == resolved {
			return d
		}
	}
	return nil
}

// SetActive makes doc the active document if it is part of the collection;
// otherwise it is a no-op.
func (m *Manager) SetActive(doc *Document) {
	if doc == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.ID() == doc.ID() {
			m.activeID = d.ID()
			m.persistLocked()
			return
		}
	}
}

// NextTab activates the document after the active one, wrapping to the first
// past the end. Fewer than two documents is a no-op.
func (m *Manager) NextTab() { m.cycle(1) }

// PrevTab activates the document before the active one, wrapping to the last
// before the start. Fewer than two documents is a no-op.
func (m *Manager) PrevTab() { m.cycle(-1) }

func (m *Manager) cycle(step int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.docs)
	if n < 2 {
		return
	}
	idx := m.activeIndexLocked()
	if idx < 0 {
		idx = 0
	}
	idx = ((idx+step)%n + n) % n
	m.activeID = m.docs[idx].ID()
	m.persistLocked()
}

func (m *Manager) activeIndexLocked() int {
	for i, d := range m.docs {
		if d.ID() == m.activeID {
			return i
		}
	}
	return -1
}

// Close removes doc from the collection. Unknown documents are ignored.
//
// When prompt is non-nil and the document is dirty, the three-way
// confirmation runs first: save (via the save-as picker for untitled
// documents), discard, or cancel. Cancel — including aborting the save-as
// picker — returns ErrCancelled with no state changed. A failed save also
// aborts the close. A nil prompt closes non-interactively, discarding unsaved
// changes.
func (m *Manager) Close(doc *Document, prompt Prompter) error {
	if doc == nil {
		return nil
	}

	m.mu.Lock()
	idx := -1
	for i, d := range m.docs {
		if d.ID() == doc.ID() {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return nil
	}
	defaultFolder := m.defaultFolder
	m.mu.Unlock()

	if prompt != nil && doc.IsDirty() {
		decision, err := prompt.ConfirmClose(doc.FileName())
		if err != nil {
			return err
		}
		switch decision {
		case DecisionCancel:
			return ErrCancelled
		case DecisionSave:
			if doc.IsUntitled() {
				if err := m.saveAsViaPrompt(doc, prompt, defaultFolder); err != nil {
					return err
				}
			} else if err := m.saveDocument(doc); err != nil {
				return err
			}
		case DecisionDiscard:
			// Fall through to removal.
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Recompute the index: the save prompt may have run for a while.
	idx = -1
	for i, d := range m.docs {
		if d.ID() == doc.ID() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	m.stopObservingLocked(doc)
	wasActive := doc.ID() == m.activeID
	m.docs = append(m.docs[:idx], m.docs[idx+1:]...)

	if len(m.docs) == 0 {
		fresh := newDocument(m.fs, "")
		m.observe(fresh)
		m.docs = append(m.docs, fresh)
		m.activeID = fresh.ID()
	} else if wasActive {
		// Prefer the document that slid into the removed slot, falling back
		// to the new last element.
		next := idx
		if next > len(m.docs)-1 {
			next = len(m.docs) - 1
		}
		m.activeID = m.docs[next].ID()
	}

	m.persistLocked()
	return nil
}

// CloseActive closes the active document. See Close.
func (m *Manager) CloseActive(prompt Prompter) error {
	return m.Close(m.Active(), prompt)
}

// saveAsViaPrompt runs the save-as picker for an untitled document and saves
// to the chosen path. All-or-nothing: on any failure the document keeps its
// untitled state.
func (m *Manager) saveAsViaPrompt(doc *Document, prompt Prompter, defaultFolder string) error {
	path, err := prompt.PickSavePath(defaultFolder, doc.FileName())
	if err != nil {
		return err
	}
	resolved := resolvePath(path)
	if resolved == "" {
		return ErrCancelled
	}
	return m.rebindAndSave(doc, resolved)
}

// rebindAndSave points doc at resolved and writes it. The path change is
// rolled back if the write fails, and rejected outright if another open
// document already owns the path.
func (m *Manager) rebindAndSave(doc *Document, resolved string) error {
	m.mu.Lock()
	if existing := m.findByPath(resolved); existing != nil && existing.ID() != doc.ID() {
		m.mu.Unlock()
		return errPathInUse(resolved)
	}
	// Cancel any pending autosave before the path changes so a stale timer
	// cannot write to the old target.
	if t := m.timers[doc.ID()]; t != nil {
		t.Cancel()
	}
	m.mu.Unlock()

	prev := doc.Path()
	doc.setPath(resolved)
	if err := doc.Save(); err != nil {
		doc.setPath(prev)
		return err
	}

	m.mu.Lock()
	m.persistLocked()
	m.mu.Unlock()
	return nil
}

// SaveActive saves the active document. An untitled active document goes
// through the save-as picker; prompt may be nil when the caller knows the
// document is path-bound.
func (m *Manager) SaveActive(prompt Prompter) error {
	doc := m.Active()
	if doc == nil {
		return nil
	}
	if doc.IsUntitled() {
		if prompt == nil {
			return ErrNoPath
		}
		m.mu.Lock()
		dir := m.defaultFolder
		m.mu.Unlock()
		return m.saveAsViaPrompt(doc, prompt, dir)
	}
	return m.saveDocument(doc)
}

// SaveActiveAs saves the active document to an explicit path, rebinding it.
// The same collision rule as the interactive flow applies: a path owned by
// another open document is rejected with ErrPathInUse semantics.
func (m *Manager) SaveActiveAs(path string) error {
	doc := m.Active()
	if doc == nil {
		return nil
	}
	resolved := resolvePath(path)
	if resolved == "" {
		return ErrNoPath
	}
	return m.rebindAndSave(doc, resolved)
}

// saveDocument is the manual-save path: it cancels any pending debounced save
// first so the two cannot interleave.
func (m *Manager) saveDocument(doc *Document) error {
	m.mu.Lock()
	if t := m.timers[doc.ID()]; t != nil {
		t.Cancel()
	}
	m.mu.Unlock()
	return doc.Save()
}

// Shutdown cancels all pending autosaves without waiting for them.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.timers {
		t.Cancel()
	}
	m.timers = map[string]*debouncer{}
}

// observe arms dirty tracking: every SetContent re-arms the per-document
// autosave debouncer. Untitled documents have nowhere to autosave, so their
// changes only flip the dirty flag until a path is bound.
func (m *Manager) observe(doc *Document) {
	doc.setObserver(func(d *Document) {
		if d.Path() == "" {
			return
		}
		m.mu.Lock()
		t := m.timers[d.ID()]
		if t == nil {
			t = newDebouncer(m.autosaveDelay, func() { _ = d.Save() })
			m.timers[d.ID()] = t
		}
		m.mu.Unlock()
		t.Notify()
	})
}

func (m *Manager) stopObservingLocked(doc *Document) {
	doc.setObserver(nil)
	if t := m.timers[doc.ID()]; t != nil {
		t.Cancel()
		delete(m.timers, doc.ID())
	}
}

// persistLocked writes the session snapshot: path-bound documents in tab
// order plus the active path. Best effort; a failed persist never fails the
// operation that triggered it.
func (m *Manager) persistLocked() {
	sess := &store.Session{
		DefaultFolder: m.defaultFolder,
	}
	for _, d := range m.docs {
		if p := d.Path(); p != "" {
			sess.OpenPaths = append(sess.OpenPaths, p)
		}
	}
	if active := m.activeLocked(); active != nil {
		sess.ActivePath = active.Path()
	}
	_ = m.settings.SaveSession(context.Background(), sess)
}
