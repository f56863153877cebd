package repository

import (
	"context"

	"birdy/internal/domain/entity"
	"birdy/internal/errors"
)

// ErrFriendEdgeNotFound is returned when no edge is stored for the ordered pair.
var ErrFriendEdgeNotFound = errors.New("friend edge not found")

// FriendRepository stores directional friend edges keyed by (owner, target).
type FriendRepository interface {
	// Find retrieves the edge stored exactly as (ownerID, targetID).
	Find(ctx context.Context, ownerID, targetID int64) (*entity.FriendEdge, error)

	// Create inserts a new edge.
	Create(ctx context.Context, edge *entity.FriendEdge) error

	// Update modifies the accepted flag of an existing edge.
	Update(ctx context.Context, edge *entity.FriendEdge) error

	// FindByUserID lists every edge where userID is owner or target.
	FindByUserID(ctx context.Context, userID int64) ([]*entity.FriendEdge, error)
}
