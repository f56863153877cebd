package model

import (
	"time"

	"github.com/google/uuid"
)

// DialogModel mirrors the 'dialogs' table. The pair is stored ordered so that
// the unique index covers both directions.
type DialogModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstUserID  int64     `gorm:"not null;uniqueIndex:dialogs_pair_key"`
	SecondUserID int64     `gorm:"not null;uniqueIndex:dialogs_pair_key"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (DialogModel) TableName() string {
	return "dialogs"
}

// MessageModel mirrors the 'messages' table.
type MessageModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	DialogID uuid.UUID `gorm:"type:uuid;not null;index:messages_dialog_sent_idx"`
	SenderID int64     `gorm:"not null"`
	Text     string    `gorm:"type:text;not null"`
	SentAt   time.Time `gorm:"not null;index:messages_dialog_sent_idx"`
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "messages"
}
