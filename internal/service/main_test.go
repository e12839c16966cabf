package service

import (
	"context"
	"errors"
	"testing"

	"netgro/internal/notifications"
	"netgro/internal/repository"
	"netgro/internal/security"
	"netgro/internal/storage"

	"github.com/stretchr/testify/require"
)

// switchableBackend fails writes while failWrites is set.
type switchableBackend struct {
	*storage.MemoryBackend
	failWrites bool
}

func (b *switchableBackend) Write(ctx context.Context, key, value string) error {
	if b.failWrites {
		return errors.New("quota exceeded")
	}
	return b.MemoryBackend.Write(ctx, key, value)
}

type testEnv struct {
	backend  *switchableBackend
	store    *storage.Store
	users    repository.UserRepository
	posts    repository.PostRepository
	sessions repository.SessionRepository
	events   []notifications.Event

	auth    *AuthService
	post    *PostService
	profile *ProfileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := &switchableBackend{MemoryBackend: storage.NewMemoryBackend()}
	return openTestEnv(t, backend)
}

// openTestEnv builds services over backend, loading whatever it already holds.
func openTestEnv(t *testing.T, backend *switchableBackend) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := storage.New(backend, "ng_")

	env := &testEnv{
		backend:  backend,
		store:    store,
		users:    repository.NewUserRepository(store),
		posts:    repository.NewPostRepository(store),
		sessions: repository.NewSessionRepository(store),
	}
	require.NoError(t, env.users.Load(ctx))
	require.NoError(t, env.posts.Load(ctx))
	require.NoError(t, env.sessions.Load(ctx))

	notifier := notifications.NewNotifier(nil)
	notifier.Subscribe(func(ev notifications.Event) { env.events = append(env.events, ev) })

	env.auth = NewAuthService(env.users, env.sessions, security.SHA256Hasher{}, notifier)
	env.post = NewPostService(env.posts, env.users, notifier)
	env.profile = NewProfileService(env.users, env.posts, env.sessions, notifier)
	return env
}

// reload simulates a process restart over the same storage medium.
func (e *testEnv) reload(t *testing.T) *testEnv {
	t.Helper()
	return openTestEnv(t, e.backend)
}

func (e *testEnv) raw(t *testing.T, name string) string {
	t.Helper()
	v, _, err := e.backend.Read(context.Background(), e.store.Key(name))
	require.NoError(t, err)
	return v
}

func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()
	u, err := e.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	return u.ID
}

func (e *testEnv) eventTypes() []string {
	out := make([]string, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.Type + ":" + ev.Action
	}
	return out
}
