package repository

import (
	"context"
	"slices"
	"sync"

	"netgro/internal/models"
	"netgro/internal/storage"
)

// PostRepository defines the interface for post data operations.
// Posts are kept newest first.
type PostRepository interface {
	Load(ctx context.Context) error
	List(ctx context.Context) []*models.Post
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByUserID(ctx context.Context, userID string) []*models.Post
	Prepend(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id string, fn func(*models.Post) error) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	store *storage.Store
	mu    sync.RWMutex
	posts []*models.Post
}

// NewPostRepository creates a new post repository
func NewPostRepository(store *storage.Store) PostRepository {
	return &postRepository{store: store, posts: []*models.Post{}}
}

func (r *postRepository) Load(ctx context.Context) error {
	loaded := storage.Get(ctx, r.store, PostsKey, []*models.Post{})
	posts := make([]*models.Post, 0, len(loaded))
	for _, p := range loaded {
		if p != nil {
			posts = append(posts, p)
		}
	}

	r.mu.Lock()
	r.posts = posts
	r.mu.Unlock()
	return nil
}

func (r *postRepository) List(ctx context.Context) []*models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clonePosts(r.posts, nil)
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexByID(id); i >= 0 {
		return r.posts[i].Clone(), nil
	}
	return nil, models.NewNotFoundError("Post", id)
}

func (r *postRepository) GetByUserID(ctx context.Context, userID string) []*models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clonePosts(r.posts, func(p *models.Post) bool { return p.UserID == userID })
}

func (r *postRepository) Prepend(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*models.Post, 0, len(r.posts)+1)
	next = append(next, post.Clone())
	next = append(next, r.posts...)
	if err := r.store.Set(ctx, PostsKey, next); err != nil {
		return err
	}
	r.posts = next
	return nil
}

// Update applies fn to a copy of the post and persists the whole list. An
// error from fn aborts without writing.
func (r *postRepository) Update(ctx context.Context, id string, fn func(*models.Post) error) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByID(id)
	if i < 0 {
		return nil, models.NewNotFoundError("Post", id)
	}

	updated := r.posts[i].Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.ID = r.posts[i].ID

	next := slices.Clone(r.posts)
	next[i] = updated
	if err := r.store.Set(ctx, PostsKey, next); err != nil {
		return nil, err
	}
	r.posts = next
	return updated.Clone(), nil
}

// Delete removes the post together with its comments.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByID(id)
	if i < 0 {
		return models.NewNotFoundError("Post", id)
	}

	next := slices.Delete(slices.Clone(r.posts), i, i+1)
	if err := r.store.Set(ctx, PostsKey, next); err != nil {
		return err
	}
	r.posts = next
	return nil
}

func (r *postRepository) indexByID(id string) int {
	return slices.IndexFunc(r.posts, func(p *models.Post) bool { return p.ID == id })
}

func clonePosts(posts []*models.Post, keep func(*models.Post) bool) []*models.Post {
	out := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if keep == nil || keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
