package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("k", []byte("v")))

	got, err := store.Get("k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	assert.NoError(t, store.Delete("k"))
	_, err = store.Get("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("k", []byte("abc")))

	got, err := store.Get("k")
	require.NoError(t, err)
	got[0] = 'x'

	again, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryStore_FailWrites(t *testing.T) {
	store := NewMemoryStore()
	store.FailWrites = true

	assert.Error(t, store.Set("k", []byte("v")))
	_, err := store.Get("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
