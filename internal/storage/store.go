package storage

import (
	"context"
	"encoding/json"
	"strings"

	"netgro/internal/models"
	"netgro/internal/observability"
)

// Store serializes values to JSON documents on top of a Backend. Every key is
// round-tripped whole; there are no partial writes and no grouping across keys.
type Store struct {
	backend Backend
	prefix  string
	log     *observability.StoreLogger
}

// New creates a store whose keys are namespaced with prefix (for example "ng_").
func New(backend Backend, prefix string) *Store {
	return &Store{
		backend: backend,
		prefix:  prefix,
		log:     observability.NewStoreLogger(backend.Name()),
	}
}

// Backend returns the underlying medium.
func (s *Store) Backend() Backend { return s.backend }

// Key returns the physical key for a logical name.
func (s *Store) Key(name string) string { return s.prefix + name }

// Get returns the decoded document stored under name, or fallback when it is
// absent, null, unreadable or cannot be decoded. It never fails.
func Get[T any](ctx context.Context, s *Store, name string, fallback T) T {
	raw, ok := s.read(ctx, name)
	if !ok {
		return fallback
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return fallback
	}
	var v T
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		key := s.Key(name)
		observability.StorageReadCorruption.WithLabelValues(key).Inc()
		s.log.LogCorruption(ctx, key, err)
		return fallback
	}
	return v
}

func (s *Store) read(ctx context.Context, name string) (string, bool) {
	key := s.Key(name)
	backend := s.backend.Name()
	defer observability.TrackStorage("read", backend)()
	ctx, span := observability.TraceStorageOperation(ctx, backend, "read", key)

	raw, found, err := s.backend.Read(ctx, key)
	observability.EndSpan(span, err)
	if err != nil {
		s.log.LogError(ctx, err, "read", key)
		return "", false
	}
	s.log.LogRead(ctx, key, found)
	return raw, found
}

// Set serializes value and writes it under name. A failure is returned as a
// STORAGE_WRITE_FAILURE AppError and is not retried.
func (s *Store) Set(ctx context.Context, name string, value any) error {
	key := s.Key(name)
	backend := s.backend.Name()

	b, err := json.Marshal(value)
	if err != nil {
		observability.StorageWriteFailures.WithLabelValues(backend).Inc()
		s.log.LogError(ctx, err, "write", key)
		return models.NewStorageWriteError(key, err)
	}

	defer observability.TrackStorage("write", backend)()
	ctx, span := observability.TraceStorageOperation(ctx, backend, "write", key)
	err = s.backend.Write(ctx, key, string(b))
	observability.EndSpan(span, err)
	if err != nil {
		observability.StorageWriteFailures.WithLabelValues(backend).Inc()
		s.log.LogError(ctx, err, "write", key)
		return models.NewStorageWriteError(key, err)
	}
	s.log.LogWrite(ctx, key, len(b))
	return nil
}

// Delete removes the document stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	key := s.Key(name)
	backend := s.backend.Name()
	defer observability.TrackStorage("delete", backend)()
	ctx, span := observability.TraceStorageOperation(ctx, backend, "delete", key)
	err := s.backend.Delete(ctx, key)
	observability.EndSpan(span, err)
	if err != nil {
		s.log.LogError(ctx, err, "delete", key)
		return models.NewStorageWriteError(key, err)
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
