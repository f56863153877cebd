package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table. Only the token hash is stored.
type SessionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	TokenHash string    `gorm:"type:varchar(128);not null;uniqueIndex:sessions_token_hash_key"`
	UserAgent string    `gorm:"type:varchar(512)"`
	IPAddress string    `gorm:"type:varchar(64)"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
