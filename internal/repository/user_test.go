package repository

import (
	"context"
	"errors"
	"testing"

	"netgro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	repo := NewUserRepository(store)
	require.NoError(t, repo.Load(ctx))
	assert.Zero(t, repo.Count(ctx))

	user := &models.User{ID: "u_1", Name: "Asha", Email: "asha@x.com", Skills: []string{}}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByEmail(ctx, "asha@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u_1", got.ID)

	got, err = repo.GetByID(ctx, "u_1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserRepository_CreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	repo := NewUserRepository(store)

	require.NoError(t, repo.Create(ctx, &models.User{ID: "u_1", Email: "asha@x.com"}))
	err := repo.Create(ctx, &models.User{ID: "u_2", Email: "asha@x.com"})
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
	assert.Equal(t, 1, repo.Count(ctx))
}

func TestUserRepository_SnapshotsAreCopies(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	repo := NewUserRepository(store)
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u_1", Email: "a@x.com", Skills: []string{"Go"}}))

	list := repo.List(ctx)
	list[0].Skills[0] = "Rust"
	list[0].Name = "changed"

	got, err := repo.GetByID(ctx, "u_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Skills)
	assert.Empty(t, got.Name)
}

func TestUserRepository_UpdateAbortsOnCallbackError(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	repo := NewUserRepository(store)
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u_1", Email: "a@x.com", Bio: "old"}))

	boom := errors.New("boom")
	_, err := repo.Update(ctx, "u_1", func(u *models.User) error {
		u.Bio = "new"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := repo.GetByID(ctx, "u_1")
	assert.Equal(t, "old", got.Bio)
}

func TestUserRepository_WriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	repo := NewUserRepository(store)
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u_1", Email: "a@x.com", Bio: "old"}))

	backend.failWrites = true
	_, err := repo.Update(ctx, "u_1", func(u *models.User) error {
		u.Bio = "new"
		return nil
	})
	assert.ErrorIs(t, err, models.ErrStorageWriteFailure)

	err = repo.Create(ctx, &models.User{ID: "u_2", Email: "b@x.com"})
	assert.ErrorIs(t, err, models.ErrStorageWriteFailure)

	got, _ := repo.GetByID(ctx, "u_1")
	assert.Equal(t, "old", got.Bio)
	assert.Equal(t, 1, repo.Count(ctx))
}

func TestUserRepository_LoadReadsPersistedList(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	require.NoError(t, NewUserRepository(store).Create(ctx, &models.User{ID: "u_1", Email: "a@x.com"}))

	reloaded := NewUserRepository(store)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, 1, reloaded.Count(ctx))
}
