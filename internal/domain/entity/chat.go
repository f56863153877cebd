package entity

import (
	"time"

	"github.com/pkg/errors"
)

// ChatStatus is a member's rank inside a chat. Ranks are totally ordered.
type ChatStatus int

const (
	ChatStatusMember ChatStatus = iota
	ChatStatusModerator
	ChatStatusOwner
)

// String returns the string representation of the ChatStatus.
func (s ChatStatus) String() string {
	switch s {
	case ChatStatusMember:
		return "member"
	case ChatStatusModerator:
		return "moderator"
	case ChatStatusOwner:
		return "owner"
	default:
		return "unknown"
	}
}

// AtLeast reports whether s satisfies the required rank.
func (s ChatStatus) AtLeast(required ChatStatus) bool {
	return s >= required
}

// ParseChatStatus converts the wire name of a status back into a ChatStatus.
func ParseChatStatus(s string) (ChatStatus, error) {
	switch s {
	case "member":
		return ChatStatusMember, nil
	case "moderator":
		return ChatStatusModerator, nil
	case "owner":
		return ChatStatusOwner, nil
	default:
		return 0, errors.Errorf("unknown chat status: %s", s)
	}
}

// Chat is a group conversation.
type Chat struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// ChatMembership links a user to a chat with a rank.
type ChatMembership struct {
	ChatID    int64
	UserID    int64
	Status    ChatStatus
	CreatedAt time.Time
}

// ChatMemberInfo is a membership resolved to the member's tag.
type ChatMemberInfo struct {
	UserID    int64  `json:"user_id"`
	UniqueTag string `json:"unique_tag"`
	Status    string `json:"status"`
}
