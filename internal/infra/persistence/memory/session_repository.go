package memory

import (
	"context"
	"sort"
	"time"

	"birdy/internal/domain/entity"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/repository"

	"github.com/google/uuid"
)

type sessionRepository struct {
	state *state
}

func (r *sessionRepository) Create(_ context.Context, session *entity.Session) error {
	if _, ok := r.state.users[session.UserID]; !ok {
		return repository.ErrUserNotFound
	}
	if _, ok := r.state.sessions[session.TokenHash]; ok {
		return domainerrors.ErrConflict.WrapMessage("session token hash already exists")
	}

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = time.Now()

	cp := *session
	r.state.sessions[session.TokenHash] = &cp

	return nil
}

func (r *sessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	session, ok := r.state.sessions[tokenHash]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	cp := *session

	return &cp, nil
}

func (r *sessionRepository) FindByUserID(_ context.Context, userID int64) ([]*entity.Session, error) {
	sessions := make([]*entity.Session, 0)
	for _, session := range r.state.sessions {
		if session.UserID == userID {
			cp := *session
			sessions = append(sessions, &cp)
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	return sessions, nil
}

func (r *sessionRepository) CountByUserID(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, session := range r.state.sessions {
		if session.UserID == userID {
			count++
		}
	}

	return count, nil
}

func (r *sessionRepository) DeleteByTokenHash(_ context.Context, userID int64, tokenHash string) error {
	session, ok := r.state.sessions[tokenHash]
	if !ok || session.UserID != userID {
		return repository.ErrSessionNotFound
	}
	delete(r.state.sessions, tokenHash)

	return nil
}

func (r *sessionRepository) DeleteByUserID(_ context.Context, userID int64) error {
	for hash, session := range r.state.sessions {
		if session.UserID == userID {
			delete(r.state.sessions, hash)
		}
	}

	return nil
}
