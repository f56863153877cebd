package model

import "time"

// FriendEdgeModel mirrors the 'friend_edges' table keyed by (owner_id, target_id).
type FriendEdgeModel struct {
	OwnerID         int64 `gorm:"primaryKey;autoIncrement:false"`
	TargetID        int64 `gorm:"primaryKey;autoIncrement:false"`
	RequestAccepted bool  `gorm:"not null;default:false"`
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (FriendEdgeModel) TableName() string {
	return "friend_edges"
}
