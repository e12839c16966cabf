package repository

import (
	"context"
	"errors"
	"testing"

	"netgro/internal/storage"
)

// flakyBackend fails writes while failWrites is set.
type flakyBackend struct {
	*storage.MemoryBackend
	failWrites bool
}

func (b *flakyBackend) Write(ctx context.Context, key, value string) error {
	if b.failWrites {
		return errors.New("quota exceeded")
	}
	return b.MemoryBackend.Write(ctx, key, value)
}

func newTestStore(t *testing.T) (*storage.Store, *flakyBackend) {
	t.Helper()
	backend := &flakyBackend{MemoryBackend: storage.NewMemoryBackend()}
	return storage.New(backend, "ng_"), backend
}
