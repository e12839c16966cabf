// Package repository provides data access layer implementations for the application.
//
// Each repository owns one top-level document of the store, keeps it in memory
// and rewrites it whole on every mutation. In-memory state only changes after
// the write succeeded.
package repository

import (
	"context"
	"slices"
	"sync"

	"netgro/internal/models"
	"netgro/internal/storage"
)

// Storage keys of the three persisted documents.
const (
	UsersKey   = "users"
	PostsKey   = "posts"
	SessionKey = "currentUserId"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Load(ctx context.Context) error
	List(ctx context.Context) []*models.User
	Count(ctx context.Context) int
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, fn func(*models.User) error) (*models.User, error)
}

// userRepository implements UserRepository
type userRepository struct {
	store *storage.Store
	mu    sync.RWMutex
	users []*models.User
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *storage.Store) UserRepository {
	return &userRepository{store: store, users: []*models.User{}}
}

func (r *userRepository) Load(ctx context.Context) error {
	loaded := storage.Get(ctx, r.store, UsersKey, []*models.User{})
	users := make([]*models.User, 0, len(loaded))
	for _, u := range loaded {
		if u != nil {
			users = append(users, u)
		}
	}

	r.mu.Lock()
	r.users = users
	r.mu.Unlock()
	return nil
}

func (r *userRepository) List(ctx context.Context) []*models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.User, len(r.users))
	for i, u := range r.users {
		out[i] = u.Clone()
	}
	return out
}

func (r *userRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexByID(id); i >= 0 {
		return r.users[i].Clone(), nil
	}
	return nil, models.NewNotFoundError("User", id)
}

// GetByEmail matches the stored, already normalized address exactly.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return models.ErrDuplicateEmail
		}
	}
	if r.indexByID(user.ID) >= 0 {
		return models.NewValidationError("user id already exists")
	}

	next := append(slices.Clone(r.users), user.Clone())
	if err := r.store.Set(ctx, UsersKey, next); err != nil {
		return err
	}
	r.users = next
	return nil
}

// Update applies fn to a copy of the user and persists the whole list. An
// error from fn aborts without writing.
func (r *userRepository) Update(ctx context.Context, id string, fn func(*models.User) error) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByID(id)
	if i < 0 {
		return nil, models.NewNotFoundError("User", id)
	}

	updated := r.users[i].Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.ID = r.users[i].ID

	next := slices.Clone(r.users)
	next[i] = updated
	if err := r.store.Set(ctx, UsersKey, next); err != nil {
		return nil, err
	}
	r.users = next
	return updated.Clone(), nil
}

func (r *userRepository) indexByID(id string) int {
	return slices.IndexFunc(r.users, func(u *models.User) bool { return u.ID == id })
}
