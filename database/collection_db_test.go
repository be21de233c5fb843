package database

import (
	"context"
	"path/filepath"
	"testing"

	"querry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCollectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.CreateCollection(ctx, "Test collection")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Test collection", created.Name)
	assert.Equal(t, DefaultIcon, created.Icon)
	assert.Equal(t, 0, created.RequestCount)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := store.GetCollectionByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateCollectionDefaults(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, filepath.Join(t.TempDir(), "icons.db"), Options{Icons: &iconSeq{icons: []string{"A.svg", ""}}})
	require.NoError(t, err)
	defer store.Close()

	first, err := store.CreateCollection(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCollectionName, first.Name)
	assert.Equal(t, "A.svg", first.Icon)

	second, err := store.CreateCollection(ctx, "Second")
	require.NoError(t, err)
	assert.Equal(t, DefaultIcon, second.Icon)
}

func TestGetAllCollectionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	empty, err := store.GetAllCollections(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	names := []string{"first", "second", "third"}
	for _, n := range names {
		_, err := store.CreateCollection(ctx, n)
		require.NoError(t, err)
	}

	all, err := store.GetAllCollections(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Name)
	assert.Equal(t, "second", all[1].Name)
	assert.Equal(t, "first", all[2].Name)

	n, err := store.CountCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSearchCollectionsIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.CreateCollection(ctx, "Test collection")
	require.NoError(t, err)
	_, err = store.CreateCollection(ctx, "Other")
	require.NoError(t, err)

	var results [][]models.Collection
	for _, term := range []string{"TES", "tes", "Tes"} {
		found, err := store.SearchCollections(ctx, term)
		require.NoError(t, err)
		require.Len(t, found, 1, "term %q", term)
		results = append(results, found)
	}
	assert.Equal(t, created, results[0][0])
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, results[1], results[2])

	none, err := store.SearchCollections(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := store.SearchCollections(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSearchCollectionsTreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.CreateCollection(ctx, "100% coverage")
	require.NoError(t, err)
	_, err = store.CreateCollection(ctx, "Ünicode Straße")
	require.NoError(t, err)

	found, err := store.SearchCollections(ctx, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100% coverage", found[0].Name)

	found, err = store.SearchCollections(ctx, "ünicode")
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestUpdateCollection(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	c, err := store.CreateCollection(ctx, "Old")
	require.NoError(t, err)
	_, err = store.CreateRequest(ctx, models.ProtocolHTTP, c.ID)
	require.NoError(t, err)

	updated, err := store.UpdateCollection(ctx, c.ID, models.CollectionUpdate{Name: "New", Icon: "1F680.svg", RequestCount: 1})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "1F680.svg", updated.Icon)
	assert.Equal(t, 1, updated.RequestCount)
	assert.Equal(t, c.CreatedAt, updated.CreatedAt)

	// A stale caller-side count never overwrites the real one.
	updated, err = store.UpdateCollection(ctx, c.ID, models.CollectionUpdate{Name: "New", RequestCount: 42})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.RequestCount)
	assert.Equal(t, "1F680.svg", updated.Icon)

	_, err = store.UpdateCollection(ctx, "does-not-exist", models.CollectionUpdate{Name: "x"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = store.UpdateCollection(ctx, c.ID, models.CollectionUpdate{Name: "  "})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGetCollectionNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetCollectionByID(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteCollectionCascadesAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	c, err := store.CreateCollection(ctx, "Doomed")
	require.NoError(t, err)
	var requestIDs []string
	for i := 0; i < 3; i++ {
		r, err := store.CreateRequest(ctx, models.ProtocolHTTP, c.ID)
		require.NoError(t, err)
		requestIDs = append(requestIDs, r.ID)
	}
	_, err = store.CreateHeader(ctx, c.ID, "Accept", "application/json")
	require.NoError(t, err)

	require.NoError(t, store.DeleteCollection(ctx, c.ID))

	_, err = store.GetCollectionByID(ctx, c.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	remaining, err := store.GetRequestsByCollectionID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	for _, id := range requestIDs {
		_, err := store.GetRequestByID(ctx, id)
		assert.ErrorIs(t, err, models.ErrNotFound)
	}

	headers, err := store.GetHeadersByCollectionID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, headers)

	assert.NoError(t, store.DeleteCollection(ctx, c.ID))
	assert.NoError(t, store.DeleteCollection(ctx, "never-existed"))
}

func TestReconcileRequestCounts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	c, err := store.CreateCollection(ctx, "Drifted")
	require.NoError(t, err)
	_, err = store.CreateRequest(ctx, models.ProtocolHTTP, c.ID)
	require.NoError(t, err)

	_, err = store.db.ExecContext(ctx, `UPDATE collection SET request_count = 9 WHERE id = ?`, c.ID)
	require.NoError(t, err)

	fixed, err := store.ReconcileRequestCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fixed)

	got, err := store.GetCollectionByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RequestCount)
}
