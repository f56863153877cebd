package entity

import (
	"time"

	"github.com/google/uuid"
)

// Dialog is a 1:1 conversation between exactly two users.
type Dialog struct {
	ID           uuid.UUID
	FirstUserID  int64
	SecondUserID int64
	CreatedAt    time.Time
}

// NewDialog builds a dialog between two users. The pair is stored in
// ascending order so each pair maps to a single dialog.
func NewDialog(userA, userB int64) *Dialog {
	if userA > userB {
		userA, userB = userB, userA
	}

	return &Dialog{
		ID:           uuid.New(),
		FirstUserID:  userA,
		SecondUserID: userB,
		CreatedAt:    time.Now(),
	}
}

// HasParticipant reports whether userID takes part in the dialog.
func (d *Dialog) HasParticipant(userID int64) bool {
	return d.FirstUserID == userID || d.SecondUserID == userID
}

// Interlocutor returns the participant that is not userID.
func (d *Dialog) Interlocutor(userID int64) int64 {
	if d.FirstUserID == userID {
		return d.SecondUserID
	}

	return d.FirstUserID
}

// Message is a single text message inside a dialog.
type Message struct {
	ID       int64
	DialogID uuid.UUID
	SenderID int64
	Text     string
	SentAt   time.Time
}

// DialogInfo summarizes a dialog for listing.
type DialogInfo struct {
	DialogID        uuid.UUID `json:"dialog_id"`
	InterlocutorTag string    `json:"interlocutor_unique_tag"`
	LastMessage     string    `json:"last_message,omitempty"`
	LastMessageTime time.Time `json:"last_message_time"`
}
