package database

import (
	"context"
	"path/filepath"
	"testing"

	"querry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type iconSeq struct {
	icons []string
	next  int
}

func (s *iconSeq) Pick() string {
	icon := s.icons[s.next%len(s.icons)]
	s.next++
	return icon
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "querry_test.db"), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenAppliesSchema(t *testing.T) {
	store := newTestStore(t)

	version, dirty, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(2), version)
	require.NoError(t, store.Ping(context.Background()))
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "twice.db")

	first, err := Open(ctx, path, Options{})
	require.NoError(t, err)
	c, err := first.CreateCollection(ctx, "Kept")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(ctx, path, Options{})
	require.NoError(t, err)
	defer second.Close()

	got, err := second.GetCollectionByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Name)
}

func TestRecreateDropsData(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	c, err := store.CreateCollection(ctx, "Temporary")
	require.NoError(t, err)
	_, err = store.CreateRequest(ctx, models.ProtocolHTTP, c.ID)
	require.NoError(t, err)

	require.NoError(t, store.Recreate(ctx))

	all, err := store.GetAllCollections(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = store.CreateCollection(ctx, "After recreate")
	require.NoError(t, err)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "", Options{})
	assert.Error(t, err)
}

func TestOpenPathWithSpaces(t *testing.T) {
	ctx := context.Background()
	for _, path := range []string{
		filepath.Join(t.TempDir(), "Application Support", "querry", "querry.db"),
		filepath.Join(t.TempDir(), "build #2", "querry.db"),
	} {
		store, err := Open(ctx, path, Options{})
		require.NoError(t, err, path)

		c, err := store.CreateCollection(ctx, "Inbox")
		require.NoError(t, err)
		got, err := store.GetCollectionByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Inbox", got.Name)

		version, _, err := store.SchemaVersion()
		require.NoError(t, err)
		assert.Equal(t, uint(2), version)
		assert.FileExists(t, path)
		require.NoError(t, store.Close())
	}
}
