package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySaveGetDelete(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	s, err := NewSession("g1", 1, "english", "world", nil)
	require.NoError(t, err)

	require.NoError(t, reg.Save(ctx, s))

	got, err := reg.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, s, got)

	require.NoError(t, reg.Delete(ctx, "g1"))
	_, err = reg.Get(ctx, "g1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistryGetMissing(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
