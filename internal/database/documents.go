package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/connexo-app/backend/internal/models"
	"github.com/connexo-app/backend/internal/store"
)

// DocumentStore persists profile documents as one JSON row per user.
type DocumentStore struct {
	db *gorm.DB
}

var _ store.Persistence = (*DocumentStore)(nil)
var _ store.UsernameIndex = (*DocumentStore)(nil)

// NewDocumentStore creates a DocumentStore on the given connection.
func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (d *DocumentStore) LoadDocument(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	var record models.ProfileRecord
	if err := d.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return []byte(record.Document), nil
}

func (d *DocumentStore) SaveDocument(ctx context.Context, userID uuid.UUID, username string, data []byte) error {
	record := models.ProfileRecord{
		UserID:   userID,
		Username: username,
		Document: string(data),
	}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "document", "updated_at"}),
	}).Create(&record).Error
}

func (d *DocumentStore) FindUserByUsername(ctx context.Context, username string) (uuid.UUID, error) {
	var record models.ProfileRecord
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, store.ErrNotFound
		}
		return uuid.Nil, err
	}
	return record.UserID, nil
}

// RedisDocuments is a key-value adapter storing the serialized document
// under a fixed per-user key.
type RedisDocuments struct {
	client *redis.Client
	ttl    time.Duration
}

var _ store.Persistence = (*RedisDocuments)(nil)

// NewRedisDocuments creates a RedisDocuments adapter. A zero TTL keeps
// entries until evicted.
func NewRedisDocuments(client *redis.Client, ttl time.Duration) *RedisDocuments {
	return &RedisDocuments{client: client, ttl: ttl}
}

func documentKey(userID uuid.UUID) string {
	return fmt.Sprintf("profile:document:%s", userID)
}

func (r *RedisDocuments) LoadDocument(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	data, err := r.client.Get(ctx, documentKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisDocuments) SaveDocument(ctx context.Context, userID uuid.UUID, username string, data []byte) error {
	return r.client.Set(ctx, documentKey(userID), data, r.ttl).Err()
}

// LayeredDocuments writes through to both the row store and the cache,
// and reads from the cache first. The row store is authoritative: a
// cache failure on write is logged, a row-store failure is returned.
type LayeredDocuments struct {
	cache *RedisDocuments
	rows  *DocumentStore
}

var _ store.Persistence = (*LayeredDocuments)(nil)
var _ store.UsernameIndex = (*LayeredDocuments)(nil)

// NewLayeredDocuments combines a Redis cache with the GORM row store.
func NewLayeredDocuments(cache *RedisDocuments, rows *DocumentStore) *LayeredDocuments {
	return &LayeredDocuments{cache: cache, rows: rows}
}

func (l *LayeredDocuments) LoadDocument(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	data, err := l.cache.LoadDocument(ctx, userID)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("document cache: read for %s failed: %v", userID, err)
	}

	data, err = l.rows.LoadDocument(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cerr := l.cache.SaveDocument(ctx, userID, "", data); cerr != nil {
		log.Printf("document cache: backfill for %s failed: %v", userID, cerr)
	}
	return data, nil
}

func (l *LayeredDocuments) SaveDocument(ctx context.Context, userID uuid.UUID, username string, data []byte) error {
	if err := l.rows.SaveDocument(ctx, userID, username, data); err != nil {
		return err
	}
	if err := l.cache.SaveDocument(ctx, userID, username, data); err != nil {
		log.Printf("document cache: write for %s failed: %v", userID, err)
	}
	return nil
}

func (l *LayeredDocuments) FindUserByUsername(ctx context.Context, username string) (uuid.UUID, error) {
	return l.rows.FindUserByUsername(ctx, username)
}
