package repository

import (
	"context"
	"sync"

	"netgro/internal/storage"
)

// SessionRepository holds the id of the signed-in user, if any.
type SessionRepository interface {
	Load(ctx context.Context) error
	Current(ctx context.Context) (string, bool)
	Set(ctx context.Context, userID string) error
	Clear(ctx context.Context) error
}

type sessionRepository struct {
	store  *storage.Store
	mu     sync.RWMutex
	userID *string
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(store *storage.Store) SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Load(ctx context.Context) error {
	id := storage.Get[*string](ctx, r.store, SessionKey, nil)
	if id != nil && *id == "" {
		id = nil
	}

	r.mu.Lock()
	r.userID = id
	r.mu.Unlock()
	return nil
}

func (r *sessionRepository) Current(ctx context.Context) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.userID == nil {
		return "", false
	}
	return *r.userID, true
}

func (r *sessionRepository) Set(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Set(ctx, SessionKey, userID); err != nil {
		return err
	}
	r.userID = &userID
	return nil
}

// Clear persists a JSON null, matching a signed-out browser session.
func (r *sessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Set(ctx, SessionKey, nil); err != nil {
		return err
	}
	r.userID = nil
	return nil
}
