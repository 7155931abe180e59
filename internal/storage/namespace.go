// Package storage holds helpers shared by the persisted-state backends.
package storage

import (
	"context"

	"github.com/dtroode/tutordash-web/internal/model"
)

var _ model.KeyValueStore = (*Namespaced)(nil)

// Namespaced prefixes every key before delegating, so many browsers can share one backend.
type Namespaced struct {
	kv     model.KeyValueStore
	prefix string
}

// Namespace returns a view of kv where every key is prefixed with prefix.
func Namespace(kv model.KeyValueStore, prefix string) *Namespaced {
	return &Namespaced{kv: kv, prefix: prefix}
}

// BrowserPrefix is the namespace used for one browser's persisted session.
func BrowserPrefix(browserID string) string {
	return "browser:" + browserID + ":"
}

func (n *Namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key, value string) error {
	return n.kv.Set(ctx, n.prefix+key, value)
}

func (n *Namespaced) Remove(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = n.prefix + k
	}
	return n.kv.Remove(ctx, full...)
}
