package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileRecord is the persisted copy of one user's ProfileDocument,
// stored as a single JSON blob. Username is denormalized from the
// document so public pages can be looked up by address.
type ProfileRecord struct {
	UserID    uuid.UUID `gorm:"type:varchar(36);primarykey" json:"user_id"`
	Username  string    `gorm:"size:50;index" json:"username"`
	Document  string    `gorm:"type:text;not null" json:"document"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
