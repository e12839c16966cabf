// Package storage implements the persistent key-value store: a synchronous
// string-keyed medium holding whole JSON documents.
package storage

import "context"

// Backend is a string-keyed medium. Implementations must be safe for
// concurrent use and must report a missing key as ("", false, nil).
type Backend interface {
	Name() string
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
