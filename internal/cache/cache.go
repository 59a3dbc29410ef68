package cache

import (
	"context"
	"errors"
)

var ErrMiss = errors.New("cache miss")

//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock.go

// Store is the local key-value cache. Values are JSON-serializable; each call
// is atomic from the caller's point of view.
type Store interface {
	Set(ctx context.Context, key string, value any) error
	Get(ctx context.Context, key string, dest any) error
}
