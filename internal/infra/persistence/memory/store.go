// Package memory provides an in-process implementation of the repositories.
// Transactions are serialized and run against a private copy of the data that
// replaces the committed state only when the callback succeeds.
package memory

import (
	"context"
	"sync"

	"birdy/internal/domain/entity"
	"birdy/internal/domain/repository"

	"github.com/google/uuid"
)

type friendKey struct {
	ownerID  int64
	targetID int64
}

type memberKey struct {
	chatID int64
	userID int64
}

type state struct {
	users      map[int64]*entity.User
	nextUserID int64

	// sessions are keyed by token hash.
	sessions map[string]*entity.Session

	friends map[friendKey]*entity.FriendEdge

	chats      map[int64]*entity.Chat
	nextChatID int64
	members    map[memberKey]*entity.ChatMembership

	dialogs       map[uuid.UUID]*entity.Dialog
	messages      map[uuid.UUID][]*entity.Message
	nextMessageID int64
}

func newState() *state {
	return &state{
		users:    make(map[int64]*entity.User),
		sessions: make(map[string]*entity.Session),
		friends:  make(map[friendKey]*entity.FriendEdge),
		chats:    make(map[int64]*entity.Chat),
		members:  make(map[memberKey]*entity.ChatMembership),
		dialogs:  make(map[uuid.UUID]*entity.Dialog),
		messages: make(map[uuid.UUID][]*entity.Message),
	}
}

func cloneMap[K comparable, V any](src map[K]*V) map[K]*V {
	dst := make(map[K]*V, len(src))
	for k, v := range src {
		cp := *v
		dst[k] = &cp
	}

	return dst
}

func (s *state) clone() *state {
	messages := make(map[uuid.UUID][]*entity.Message, len(s.messages))
	for id, list := range s.messages {
		copied := make([]*entity.Message, 0, len(list))
		for _, m := range list {
			cp := *m
			copied = append(copied, &cp)
		}
		messages[id] = copied
	}

	return &state{
		users:         cloneMap(s.users),
		nextUserID:    s.nextUserID,
		sessions:      cloneMap(s.sessions),
		friends:       cloneMap(s.friends),
		chats:         cloneMap(s.chats),
		nextChatID:    s.nextChatID,
		members:       cloneMap(s.members),
		dialogs:       cloneMap(s.dialogs),
		messages:      messages,
		nextMessageID: s.nextMessageID,
	}
}

// Store is an in-memory TransactionManager.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// NewTransactionManager exposes a fresh Store as a TransactionManager.
func NewTransactionManager() repository.TransactionManager {
	return NewStore()
}

// Execute runs fn against a snapshot and commits it when fn returns nil.
func (s *Store) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(&factory{state: snapshot}); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = snapshot

	return nil
}

type factory struct {
	state *state
}

func (f *factory) UserRepo() repository.UserRepository {
	return &userRepository{state: f.state}
}

func (f *factory) SessionRepo() repository.SessionRepository {
	return &sessionRepository{state: f.state}
}

func (f *factory) FriendRepo() repository.FriendRepository {
	return &friendRepository{state: f.state}
}

func (f *factory) ChatRepo() repository.ChatRepository {
	return &chatRepository{state: f.state}
}

func (f *factory) DialogRepo() repository.DialogRepository {
	return &dialogRepository{state: f.state}
}
