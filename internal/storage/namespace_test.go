package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/storage/memory"
)

func TestNamespace_IsolatesBrowsers(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()

	a := Namespace(kv, BrowserPrefix("a"))
	b := Namespace(kv, BrowserPrefix("b"))

	require.NoError(t, a.Set(ctx, model.KeyToken, "token-a"))
	require.NoError(t, b.Set(ctx, model.KeyToken, "token-b"))

	got, err := a.Get(ctx, model.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "token-a", got)

	raw, err := kv.Get(ctx, "browser:b:token")
	require.NoError(t, err)
	assert.Equal(t, "token-b", raw)
}

func TestNamespace_RemovePrefixesAllKeys(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	a := Namespace(kv, "p:")
	require.NoError(t, a.Set(ctx, model.KeyUser, "{}"))
	require.NoError(t, a.Set(ctx, model.KeyStudent, "{}"))
	require.NoError(t, kv.Set(ctx, model.KeyUser, "unprefixed"))

	require.NoError(t, a.Remove(ctx, model.KeyUser, model.KeyStudent))

	assert.Equal(t, []string{model.KeyUser}, kv.Keys())
}
