// Package model holds the GORM persistence models mirroring the SQL schema.
package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	UniqueTag    string `gorm:"type:varchar(64);not null;uniqueIndex:users_unique_tag_key"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:users_email_lower_key,expression:lower(email)"`
	Name         string `gorm:"type:varchar(100);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Status       int16  `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
