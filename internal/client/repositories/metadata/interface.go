// Package metadata is a small key/value store in the local client
// database. The session blob and bookkeeping such as the last sync time
// live here.
package metadata

import (
	"context"
)

// Repository is the key/value contract. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Well-known keys.
const (
	KeyLastSync  = "last_sync"
	KeyLastEmail = "last_email"
)
