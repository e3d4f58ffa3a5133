package store

import (
	"context"
	"errors"
)

// Store is the storefront's persistent key-value store. Values are opaque
// string blobs; the application owns their schema. There are no
// transactional guarantees across keys and concurrent writers are not
// coordinated: the last writer wins.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// ErrKeyNotFound is returned by Get when the key has never been written
// or has been deleted.
var ErrKeyNotFound = errors.New("key not found")
