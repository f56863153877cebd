package usecase

import "context"

// FriendUsecase manages friend requests between users.
type FriendUsecase interface {
	SendFriendRequest(ctx context.Context, userID int64, targetTag string) error
	AcceptFriendRequest(ctx context.Context, userID int64, requesterTag string) error
	// ListFriends returns the tags of every accepted friend.
	ListFriends(ctx context.Context, userID int64) ([]string, error)
	// ListFriendRequests returns the tags of users waiting for userID to accept.
	ListFriendRequests(ctx context.Context, userID int64) ([]string, error)
}
