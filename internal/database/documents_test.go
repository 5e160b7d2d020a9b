package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/connexo-app/backend/internal/store"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	docs := NewDocumentStore(setupTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	_, err := docs.LoadDocument(ctx, userID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	payload := []byte(`{"username":"janedoe","links":[]}`)
	require.NoError(t, docs.SaveDocument(ctx, userID, "janedoe", payload))

	got, err := docs.LoadDocument(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDocumentStoreUpsertsOnSecondSave(t *testing.T) {
	docs := NewDocumentStore(setupTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, docs.SaveDocument(ctx, userID, "first", []byte(`{"username":"first"}`)))
	require.NoError(t, docs.SaveDocument(ctx, userID, "second", []byte(`{"username":"second"}`)))

	got, err := docs.LoadDocument(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"username":"second"}`), got)

	id, err := docs.FindUserByUsername(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, userID, id)

	_, err = docs.FindUserByUsername(ctx, "first")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFindUserByUsernameMissing(t *testing.T) {
	docs := NewDocumentStore(setupTestDB(t))

	_, err := docs.FindUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
