package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connexo-app/backend/internal/types"
)

type fakePersistence struct {
	mu      sync.Mutex
	docs    map[uuid.UUID][]byte
	names   map[string]uuid.UUID
	writes  int
	failing bool
}

func newFakePersistence() *fakePersistence {
	return &fakePersistence{
		docs:  map[uuid.UUID][]byte{},
		names: map[string]uuid.UUID{},
	}
}

func (f *fakePersistence) LoadDocument(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.docs[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (f *fakePersistence) SaveDocument(ctx context.Context, userID uuid.UUID, username string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("storage quota exceeded")
	}
	f.writes++
	f.docs[userID] = append([]byte(nil), data...)
	f.names[username] = userID
	return nil
}

func (f *fakePersistence) FindUserByUsername(ctx context.Context, username string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.names[username]
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	return id, nil
}

func (f *fakePersistence) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func TestSessionInstallsDefaultsWhenAbsent(t *testing.T) {
	s := New(newFakePersistence())
	sess := s.Session(context.Background(), uuid.New())

	assert.Equal(t, types.DefaultDocument(), sess.Document())
}

func TestSessionInstallsDefaultsWhenCorrupt(t *testing.T) {
	persist := newFakePersistence()
	userID := uuid.New()
	persist.docs[userID] = []byte("{not json")

	s := New(persist)
	sess := s.Session(context.Background(), userID)

	assert.Equal(t, types.DefaultDocument(), sess.Document())
}

func TestFlushThenReloadRoundTrip(t *testing.T) {
	persist := newFakePersistence()
	userID := uuid.New()

	s := New(persist)
	sess := s.Session(context.Background(), userID)
	sess.UpdateUsername("janedoe")
	sess.UpdateLinks([]types.Link{
		{ID: "10", Title: "Blog", URL: "https://blog.example.com", Icon: "globe", IsActive: true},
		{ID: "11", Title: "Shop", URL: "https://shop.example.com", Icon: "shop", IsActive: false},
	})
	sess.UpdateContactData(types.ContactInfo{Email: "jane@x.com", Phone: "+1 555 0100", Location: "Caracas"})
	require.NoError(t, sess.Flush(context.Background()))

	reloaded := New(persist).Session(context.Background(), userID)
	assert.Equal(t, sess.Document(), reloaded.Document())
}

func TestDebounceCoalescesBursts(t *testing.T) {
	persist := newFakePersistence()
	mock := clock.NewMock()
	s := New(persist, WithClock(mock))
	sess := s.Session(context.Background(), uuid.New())

	theme := types.DefaultDocument().Appearance
	for i := 0; i < 10; i++ {
		theme.Title = fmt.Sprintf("Revision %d", i)
		sess.UpdateAppearance(theme)
	}
	assert.Equal(t, 0, persist.writeCount())

	mock.Add(DefaultSaveDelay)
	assert.Equal(t, 1, persist.writeCount())

	reloaded := New(persist).Session(context.Background(), sess.UserID())
	assert.Equal(t, "Revision 9", reloaded.Document().Appearance.Title)
}

func TestDebounceRestartsOnEachUpdate(t *testing.T) {
	persist := newFakePersistence()
	mock := clock.NewMock()
	s := New(persist, WithClock(mock))
	sess := s.Session(context.Background(), uuid.New())

	sess.UpdateUsername("first")
	mock.Add(DefaultSaveDelay / 2)
	sess.UpdateUsername("second")
	mock.Add(DefaultSaveDelay / 2)
	assert.Equal(t, 0, persist.writeCount())

	mock.Add(DefaultSaveDelay / 2)
	assert.Equal(t, 1, persist.writeCount())
}

func TestExplicitFlushBypassesDebounce(t *testing.T) {
	persist := newFakePersistence()
	mock := clock.NewMock()
	s := New(persist, WithClock(mock))
	sess := s.Session(context.Background(), uuid.New())

	sess.UpdateUsername("eager")
	require.NoError(t, sess.Flush(context.Background()))
	assert.Equal(t, 1, persist.writeCount())

	// The pending timer was cancelled and the document is clean.
	mock.Add(2 * DefaultSaveDelay)
	assert.Equal(t, 1, persist.writeCount())

	dirty, saveErr := sess.SaveState()
	assert.False(t, dirty)
	assert.NoError(t, saveErr)
}

func TestFailedSaveIsRetriedAndSurfaced(t *testing.T) {
	persist := newFakePersistence()
	persist.failing = true
	mock := clock.NewMock()
	s := New(persist, WithClock(mock))
	sess := s.Session(context.Background(), uuid.New())

	sess.UpdateUsername("fragile")
	mock.Add(DefaultSaveDelay)

	dirty, saveErr := sess.SaveState()
	assert.True(t, dirty)
	assert.Error(t, saveErr)
	assert.Equal(t, 0, persist.writeCount())

	persist.mu.Lock()
	persist.failing = false
	persist.mu.Unlock()

	mock.Add(DefaultSaveDelay)
	assert.Equal(t, 1, persist.writeCount())

	dirty, saveErr = sess.SaveState()
	assert.False(t, dirty)
	assert.NoError(t, saveErr)
}

func TestFailedExplicitFlushIsRetried(t *testing.T) {
	persist := newFakePersistence()
	persist.failing = true
	mock := clock.NewMock()
	s := New(persist, WithClock(mock))
	sess := s.Session(context.Background(), uuid.New())

	sess.UpdateUsername("stubborn")
	require.Error(t, sess.Flush(context.Background()))

	dirty, saveErr := sess.SaveState()
	assert.True(t, dirty)
	assert.Error(t, saveErr)

	// No further edits; the rescheduled timer retries on its own.
	persist.mu.Lock()
	persist.failing = false
	persist.mu.Unlock()

	mock.Add(DefaultSaveDelay)
	assert.Equal(t, 1, persist.writeCount())

	dirty, saveErr = sess.SaveState()
	assert.False(t, dirty)
	assert.NoError(t, saveErr)
}

func TestReorderLinksKeepsIdentity(t *testing.T) {
	s := New(newFakePersistence())
	sess := s.Session(context.Background(), uuid.New())
	sess.UpdateLinks([]types.Link{
		{ID: "a", Title: "A", URL: "x", IsActive: true},
		{ID: "b", Title: "B", URL: "y", IsActive: true},
		{ID: "c", Title: "C", URL: "z", IsActive: true},
	})

	require.NoError(t, sess.ReorderLinks(0, 2))
	ids := []string{}
	for _, l := range sess.Document().Links {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids)

	assert.ErrorIs(t, sess.ReorderLinks(0, 5), ErrBadIndex)
	assert.ErrorIs(t, sess.ReorderLinks(-1, 0), ErrBadIndex)
}

func TestEditingLinkFieldsDoesNotReorder(t *testing.T) {
	s := New(newFakePersistence())
	sess := s.Session(context.Background(), uuid.New())
	links := []types.Link{
		{ID: "a", Title: "A", URL: "x", IsActive: true},
		{ID: "b", Title: "B", URL: "y", IsActive: true},
	}
	sess.UpdateLinks(links)

	// Edit the first link's title in place, IDs untouched.
	links[0].Title = "A renamed"
	sess.UpdateLinks(links)

	got := sess.Document().Links
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "A renamed", got[0].Title)
	assert.Equal(t, "b", got[1].ID)
}

func TestUpdateLinksDefaultsEmptyIcon(t *testing.T) {
	s := New(newFakePersistence())
	sess := s.Session(context.Background(), uuid.New())
	sess.UpdateLinks([]types.Link{{ID: "a", Title: "A", URL: "x", IsActive: true}})

	assert.Equal(t, types.DefaultIcon, sess.Document().Links[0].Icon)
}

func TestSubscribersSeeEveryMutation(t *testing.T) {
	s := New(newFakePersistence())
	sess := s.Session(context.Background(), uuid.New())

	var seen []string
	sess.Subscribe(func(doc types.ProfileDocument) {
		seen = append(seen, doc.Username)
	})

	sess.UpdateUsername("one")
	sess.UpdateUsername("two")
	assert.Equal(t, []string{"one", "two"}, seen)
}

func TestResolvePrefersLoadedSessions(t *testing.T) {
	persist := newFakePersistence()
	s := New(persist)
	sess := s.Session(context.Background(), uuid.New())
	sess.UpdateUsername("unsaved-name")

	// Not yet flushed, still resolvable.
	got, ok := s.Resolve(context.Background(), "unsaved-name")
	require.True(t, ok)
	assert.Equal(t, sess.UserID(), got.UserID())

	_, ok = s.Resolve(context.Background(), "nobody")
	assert.False(t, ok)
}

func TestResolveFallsBackToPersistenceIndex(t *testing.T) {
	persist := newFakePersistence()
	userID := uuid.New()

	s1 := New(persist)
	sess := s1.Session(context.Background(), userID)
	sess.UpdateUsername("saved-name")
	require.NoError(t, sess.Flush(context.Background()))

	// Fresh store with no loaded sessions.
	s2 := New(persist)
	got, ok := s2.Resolve(context.Background(), "saved-name")
	require.True(t, ok)
	assert.Equal(t, userID, got.UserID())
}
