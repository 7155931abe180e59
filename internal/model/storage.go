package model

import "context"

// KeyValueStore is the durable tier behind a session store.
// Values are string-serialized; Remove of several keys should be atomic
// when the backend allows it.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}
