package main

import (
	"context"
	"io"
	"testing"

	"netgro/internal/bootstrap"
	"netgro/internal/config"
	"netgro/internal/models"
	"netgro/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRuntime(t *testing.T) {
	t.Helper()
	cfg := &config.Config{
		Env:                 "test",
		StorageBackend:      config.BackendMemory,
		StorageKeyPrefix:    "ng_",
		PasswordHasher:      config.HasherSHA256,
		MediaMaxBytes:       1 << 20,
		LogLevel:            "error",
		TracingSamplerRatio: 1,
	}
	var err error
	rt, err = bootstrap.InitRuntime(context.Background(), cfg, bootstrap.Options{LogWriter: io.Discard})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = rt.Close(context.Background())
		rt = nil
	})
}

func TestRemovePost(t *testing.T) {
	ctx := context.Background()
	setupRuntime(t)

	user, err := rt.Auth.Register(ctx, service.RegisterInput{Name: "Asha", Email: "asha@x.com", Password: "pw123"})
	require.NoError(t, err)
	post, err := rt.Feed.CreatePost(ctx, service.CreatePostInput{AuthorID: user.ID, Content: "hello"})
	require.NoError(t, err)

	err = removePost(ctx, "p_missing", user.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Len(t, rt.Feed.ListPosts(ctx), 1)

	require.NoError(t, removePost(ctx, post.ID, user.ID))
	_, err = rt.Feed.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRemovePost_OtherAuthor(t *testing.T) {
	ctx := context.Background()
	setupRuntime(t)

	author, err := rt.Auth.Register(ctx, service.RegisterInput{Name: "Asha", Email: "asha@x.com", Password: "pw123"})
	require.NoError(t, err)
	post, err := rt.Feed.CreatePost(ctx, service.CreatePostInput{AuthorID: author.ID, Content: "hello"})
	require.NoError(t, err)

	err = removePost(ctx, post.ID, "u_someone_else")
	assert.ErrorIs(t, err, models.ErrForbidden)
}
