package storage

import (
	"context"
	"errors"
	"testing"

	"netgro/internal/models"
	"netgro/internal/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingBackend is a Backend stub whose reads and writes can be made to fail.
type failingBackend struct {
	*MemoryBackend
	readErr  error
	writeErr error
}

func (f *failingBackend) Read(ctx context.Context, key string) (string, bool, error) {
	if f.readErr != nil {
		return "", false, f.readErr
	}
	return f.MemoryBackend.Read(ctx, key)
}

func (f *failingBackend) Write(ctx context.Context, key, value string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.MemoryBackend.Write(ctx, key, value)
}

func TestStore_GetReturnsFallbackForMissingKey(t *testing.T) {
	t.Parallel()
	s := New(NewMemoryBackend(), "ng_")

	got := Get(context.Background(), s, "users", []string{"fallback"})
	assert.Equal(t, []string{"fallback"}, got)
}

func TestStore_SetThenGetRoundTrips(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := New(backend, "ng_")

	users := []*models.User{{ID: "u_1", Name: "Asha", Email: "asha@x.com", Skills: []string{"Go", "Go"}}}
	require.NoError(t, s.Set(ctx, "users", users))

	raw, ok, err := backend.Read(ctx, "ng_users")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"passHash"`)

	got := Get[[]*models.User](ctx, s, "users", nil)
	require.Len(t, got, 1)
	assert.Equal(t, users[0], got[0])
}

func TestStore_GetTreatsNullAsAbsent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New(NewMemoryBackend(), "ng_")

	require.NoError(t, s.Set(ctx, "currentUserId", nil))
	id := Get[*string](ctx, s, "currentUserId", nil)
	assert.Nil(t, id)

	fallback := "none"
	assert.Equal(t, "none", Get(ctx, s, "currentUserId", fallback))
}

func TestStore_GetSwallowsCorruption(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := New(backend, "corrupt_")
	require.NoError(t, backend.Write(ctx, "corrupt_posts", "{not json"))

	before := testutil.ToFloat64(observability.StorageReadCorruption.WithLabelValues("corrupt_posts"))
	got := Get(ctx, s, "posts", []*models.Post{})
	after := testutil.ToFloat64(observability.StorageReadCorruption.WithLabelValues("corrupt_posts"))

	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Equal(t, before+1, after)
}

func TestStore_GetFailsSoftOnBackendError(t *testing.T) {
	t.Parallel()
	s := New(&failingBackend{MemoryBackend: NewMemoryBackend(), readErr: errors.New("disk gone")}, "ng_")

	assert.Equal(t, 7, Get(context.Background(), s, "n", 7))
}

func TestStore_SetReportsWriteFailure(t *testing.T) {
	t.Parallel()
	ioErr := errors.New("quota exceeded")
	s := New(&failingBackend{MemoryBackend: NewMemoryBackend(), writeErr: ioErr}, "ng_")

	err := s.Set(context.Background(), "posts", []string{"x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStorageWriteFailure)
	assert.ErrorIs(t, err, ioErr)
	assert.Equal(t, models.CodeStorageWriteFailure, models.CodeOf(err))
}

func TestStore_SetReportsUnserializableValue(t *testing.T) {
	t.Parallel()
	s := New(NewMemoryBackend(), "ng_")

	err := s.Set(context.Background(), "bad", map[string]any{"ch": make(chan int)})
	assert.ErrorIs(t, err, models.ErrStorageWriteFailure)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New(NewMemoryBackend(), "ng_")
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Delete(ctx, "k"))
	assert.Equal(t, "gone", Get(ctx, s, "k", "gone"))
}
