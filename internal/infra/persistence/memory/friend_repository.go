package memory

import (
	"context"
	"sort"
	"time"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"
)

type friendRepository struct {
	state *state
}

func (r *friendRepository) Find(_ context.Context, ownerID, targetID int64) (*entity.FriendEdge, error) {
	edge, ok := r.state.friends[friendKey{ownerID: ownerID, targetID: targetID}]
	if !ok {
		return nil, repository.ErrFriendEdgeNotFound
	}
	cp := *edge

	return &cp, nil
}

func (r *friendRepository) Create(_ context.Context, edge *entity.FriendEdge) error {
	key := friendKey{ownerID: edge.OwnerID, targetID: edge.TargetID}
	if _, ok := r.state.friends[key]; ok {
		return domainerrors.ErrConflict.WrapMessage("friend edge already exists")
	}
	if _, ok := r.state.users[edge.OwnerID]; !ok {
		return repository.ErrUserNotFound
	}
	if _, ok := r.state.users[edge.TargetID]; !ok {
		return repository.ErrUserNotFound
	}

	edge.CreatedAt = time.Now()
	cp := *edge
	r.state.friends[key] = &cp

	return nil
}

func (r *friendRepository) Update(_ context.Context, edge *entity.FriendEdge) error {
	stored, ok := r.state.friends[friendKey{ownerID: edge.OwnerID, targetID: edge.TargetID}]
	if !ok {
		return repository.ErrFriendEdgeNotFound
	}
	stored.RequestAccepted = edge.RequestAccepted

	return nil
}

func (r *friendRepository) FindByUserID(_ context.Context, userID int64) ([]*entity.FriendEdge, error) {
	edges := make([]*entity.FriendEdge, 0)
	for _, edge := range r.state.friends {
		if edge.OwnerID == userID || edge.TargetID == userID {
			cp := *edge
			edges = append(edges, &cp)
		}
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].CreatedAt.Before(edges[j].CreatedAt)
	})

	return edges, nil
}
