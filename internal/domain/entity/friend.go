package entity

import "time"

// FriendEdge is one directional friend record. A friendship can be stored as a
// single edge in either direction, so readers must probe both.
type FriendEdge struct {
	OwnerID         int64 // The user who sent the request.
	TargetID        int64 // The user who received it.
	RequestAccepted bool
	CreatedAt       time.Time
}

// Other returns the participant of the edge that is not userID.
func (e *FriendEdge) Other(userID int64) int64 {
	if e.OwnerID == userID {
		return e.TargetID
	}

	return e.OwnerID
}
