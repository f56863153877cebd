package model

import "time"

// ChatModel mirrors the 'chats' table.
type ChatModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ChatModel) TableName() string {
	return "chats"
}

// ChatMemberModel mirrors the 'chat_members' table keyed by (chat_id, user_id).
type ChatMemberModel struct {
	ChatID    int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	Status    int16 `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ChatMemberModel) TableName() string {
	return "chat_members"
}
