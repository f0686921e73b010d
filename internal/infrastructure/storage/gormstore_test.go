package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "guestgate.db"))
	require.NoError(t, err)
	return store
}

func TestGormStore_SetGet(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Set("guestgate:device_id", []byte(`"dev-1"`)))

	got, err := store.Get("guestgate:device_id")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`"dev-1"`), got)
}

func TestGormStore_GetMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("guestgate:missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGormStore_SetOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("k", []byte("v1")))
	require.NoError(t, store.Set("k", []byte("v2")))

	got, err := store.Get("k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestGormStore_Delete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("k", []byte("v")))
	assert.NoError(t, store.Delete("k"))

	_, err := store.Get("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete("k"))
}

func TestGormStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guestgate.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("guestgate:device_token", []byte(`"trial_abc"`)))

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)

	got, err := reopened.Get("guestgate:device_token")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`"trial_abc"`), got)
}
