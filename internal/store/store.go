package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/connexo-app/backend/internal/types"
)

var (
	// ErrNotFound is returned by Persistence implementations when no
	// document has been saved for the user yet.
	ErrNotFound = errors.New("store: document not found")

	// ErrBadIndex is returned by ReorderLinks for out-of-range indices.
	ErrBadIndex = errors.New("store: link index out of range")
)

// DefaultSaveDelay is the trailing-edge debounce applied to automatic
// persistence. Bursts of edits inside the window coalesce into one write.
const DefaultSaveDelay = 500 * time.Millisecond

// Persistence reads and writes one serialized ProfileDocument per user.
// The username is passed alongside the payload so adapters can index
// documents by page address.
type Persistence interface {
	LoadDocument(ctx context.Context, userID uuid.UUID) ([]byte, error)
	SaveDocument(ctx context.Context, userID uuid.UUID, username string, data []byte) error
}

// UsernameIndex is implemented by persistence adapters that can find
// the owner of a document by its page address.
type UsernameIndex interface {
	FindUserByUsername(ctx context.Context, username string) (uuid.UUID, error)
}

// Option configures a Store.
type Option func(*Store)

// WithClock substitutes the scheduler clock, letting tests drive the
// debounce with a virtual clock.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clk = c }
}

// WithSaveDelay overrides the debounce window.
func WithSaveDelay(d time.Duration) Option {
	return func(s *Store) { s.saveDelay = d }
}

// WithOnChange installs a hook invoked after every mutation on any
// session, with a snapshot of the updated document.
func WithOnChange(fn func(userID uuid.UUID, doc types.ProfileDocument)) Option {
	return func(s *Store) { s.onChange = fn }
}

// Store is the single source of truth for profile documents. It keeps
// one in-memory Session per user; the dashboard and the public page
// read the same session, so both always render identical state.
type Store struct {
	persist   Persistence
	clk       clock.Clock
	saveDelay time.Duration
	onChange  func(uuid.UUID, types.ProfileDocument)

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// New creates a Store backed by the given persistence adapter.
func New(persist Persistence, opts ...Option) *Store {
	s := &Store{
		persist:   persist,
		clk:       clock.New(),
		saveDelay: DefaultSaveDelay,
		sessions:  map[uuid.UUID]*Session{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns the in-memory document session for the user, loading
// the persisted copy on first access. Loading never fails outward: a
// missing or unparseable document falls back to the defaults.
func (s *Store) Session(ctx context.Context, userID uuid.UUID) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if se, ok := s.sessions[userID]; ok {
		return se
	}
	se := &Session{
		userID: userID,
		store:  s,
		doc:    s.load(ctx, userID),
	}
	s.sessions[userID] = se
	return se
}

func (s *Store) load(ctx context.Context, userID uuid.UUID) types.ProfileDocument {
	data, err := s.persist.LoadDocument(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("profile store: loading document for %s: %v, using defaults", userID, err)
		}
		return types.DefaultDocument()
	}
	var doc types.ProfileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("profile store: corrupt document for %s: %v, using defaults", userID, err)
		return types.DefaultDocument()
	}
	doc.Normalize()
	return doc
}

// Resolve finds the session whose document carries the given username.
// Loaded sessions are checked first so unsaved username changes are
// visible immediately; otherwise the persistence index is consulted.
func (s *Store) Resolve(ctx context.Context, username string) (*Session, bool) {
	s.mu.Lock()
	for _, se := range s.sessions {
		if se.Document().Username == username {
			s.mu.Unlock()
			return se, true
		}
	}
	s.mu.Unlock()

	idx, ok := s.persist.(UsernameIndex)
	if !ok {
		return nil, false
	}
	userID, err := idx.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, false
	}
	return s.Session(ctx, userID), true
}

// FlushAll force-saves every dirty session, for shutdown.
func (s *Store) FlushAll(ctx context.Context) error {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, se := range s.sessions {
		sessions = append(sessions, se)
	}
	s.mu.Unlock()

	var firstErr error
	for _, se := range sessions {
		if err := se.Flush(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Session is one user's live document plus its save scheduling. All
// mutations replace a whole sub-record; there is no field-level handle.
type Session struct {
	userID uuid.UUID
	store  *Store

	mu      sync.Mutex
	doc     types.ProfileDocument
	gen     uint64
	dirty   bool
	saveErr error
	timer   *clock.Timer
	subs    []func(types.ProfileDocument)
}

// UserID returns the owning user.
func (se *Session) UserID() uuid.UUID { return se.userID }

// Document returns a deep copy of the current document.
func (se *Session) Document() types.ProfileDocument {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.doc.Clone()
}

// Subscribe registers a function called synchronously with a snapshot
// after every mutation.
func (se *Session) Subscribe(fn func(types.ProfileDocument)) {
	se.mu.Lock()
	defer se.mu.Unlock()
	se.subs = append(se.subs, fn)
}

// UpdateUsername replaces the document username. No format or
// uniqueness validation happens here; that belongs to the account layer.
func (se *Session) UpdateUsername(username string) {
	se.mutate(func(doc *types.ProfileDocument) {
		doc.Username = username
	})
}

// UpdateLinks replaces the whole link list. Callers keep IDs stable for
// existing links and assign fresh ones for new links.
func (se *Session) UpdateLinks(links []types.Link) {
	copied := make([]types.Link, len(links))
	copy(copied, links)
	for i := range copied {
		if copied[i].Icon == "" {
			copied[i].Icon = types.DefaultIcon
		}
	}
	se.mutate(func(doc *types.ProfileDocument) {
		doc.Links = copied
	})
}

// ReorderLinks moves the link at index from to index to, keeping the
// rest of the order intact.
func (se *Session) ReorderLinks(from, to int) error {
	var badIndex bool
	se.mutate(func(doc *types.ProfileDocument) {
		if from < 0 || from >= len(doc.Links) || to < 0 || to >= len(doc.Links) {
			badIndex = true
			return
		}
		link := doc.Links[from]
		doc.Links = append(doc.Links[:from], doc.Links[from+1:]...)
		doc.Links = append(doc.Links[:to], append([]types.Link{link}, doc.Links[to:]...)...)
	})
	if badIndex {
		return ErrBadIndex
	}
	return nil
}

// UpdateContactData replaces the contact record.
func (se *Session) UpdateContactData(contact types.ContactInfo) {
	se.mutate(func(doc *types.ProfileDocument) {
		doc.ContactData = contact
	})
}

// UpdateAppearance replaces the appearance theme.
func (se *Session) UpdateAppearance(appearance types.AppearanceTheme) {
	se.mutate(func(doc *types.ProfileDocument) {
		doc.Appearance = appearance
	})
}

func (se *Session) mutate(apply func(*types.ProfileDocument)) {
	se.mu.Lock()
	apply(&se.doc)
	se.gen++
	se.dirty = true
	se.scheduleLocked()
	snapshot := se.doc.Clone()
	subs := make([]func(types.ProfileDocument), len(se.subs))
	copy(subs, se.subs)
	se.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	if se.store.onChange != nil {
		se.store.onChange(se.userID, snapshot)
	}
}

// scheduleLocked restarts the debounce timer. One timer per document:
// edits to any sub-record within the window coalesce into one write.
func (se *Session) scheduleLocked() {
	if se.timer == nil {
		se.timer = se.store.clk.AfterFunc(se.store.saveDelay, se.autosave)
		return
	}
	se.timer.Reset(se.store.saveDelay)
}

func (se *Session) autosave() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := se.flush(ctx); err != nil {
		// The in-memory edit is kept and the write retried; the
		// failure stays visible through SaveState.
		log.Printf("profile store: background save for %s failed: %v", se.userID, err)
		se.mu.Lock()
		se.scheduleLocked()
		se.mu.Unlock()
	}
}

// Flush persists the document immediately, bypassing the debounce. On
// failure the debounce timer is restarted so the dirty document is
// still retried even if no further edits arrive.
func (se *Session) Flush(ctx context.Context) error {
	se.mu.Lock()
	if se.timer != nil {
		se.timer.Stop()
	}
	se.mu.Unlock()

	err := se.flush(ctx)
	if err != nil {
		se.mu.Lock()
		if se.dirty {
			se.scheduleLocked()
		}
		se.mu.Unlock()
	}
	return err
}

func (se *Session) flush(ctx context.Context) error {
	se.mu.Lock()
	if !se.dirty {
		se.mu.Unlock()
		return nil
	}
	gen := se.gen
	doc := se.doc.Clone()
	se.mu.Unlock()

	data, err := json.Marshal(doc)
	if err == nil {
		err = se.store.persist.SaveDocument(ctx, se.userID, doc.Username, data)
	}

	se.mu.Lock()
	se.saveErr = err
	if err == nil && se.gen == gen {
		se.dirty = false
	}
	se.mu.Unlock()
	return err
}

// SaveState reports whether unsaved edits exist and the last
// persistence error, if any. Persistence failures are never fatal to
// the editor; they surface here as a non-blocking notification.
func (se *Session) SaveState() (dirty bool, err error) {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.dirty, se.saveErr
}
