// Package metadata provides the key/value repository backing the client's
// persistent storage slots.
package metadata

import (
	"context"
)

// Repository is a persistent key/value table. Get returns (nil, nil) when the
// key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
