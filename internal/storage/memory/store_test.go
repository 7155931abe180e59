package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tutordash-web/internal/model"
)

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Set(ctx, "token", "abc"))
	got, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestStore_GetMissing(t *testing.T) {
	s := NewStore()

	_, err := s.Get(context.Background(), "user")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_RemoveMany(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Set(ctx, "token", "t"))
	require.NoError(t, s.Set(ctx, "user", "{}"))
	require.NoError(t, s.Set(ctx, "other", "x"))

	require.NoError(t, s.Remove(ctx, "token", "user", "student"))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []string{"other"}, s.Keys())
}
