package usecase

import "context"

// UserInfo is the public view of a user. Email is only filled for the user
// themselves and their friends.
type UserInfo struct {
	ID        int64  `json:"id"`
	UniqueTag string `json:"unique_tag"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
}

// UserUsecase exposes user lookups.
type UserUsecase interface {
	GetUserInfo(ctx context.Context, viewerID int64, tag string) (*UserInfo, error)
	GetUserIDByTag(ctx context.Context, tag string) (int64, error)
	// GetInviteQRCode renders a PNG friend invite for userID.
	GetInviteQRCode(ctx context.Context, userID int64) ([]byte, error)
}
