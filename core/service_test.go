package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"querry/database"
	"querry/events"
	"querry/icons"
	"querry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *events.Bus) {
	t.Helper()
	dir := t.TempDir()
	iconDir := filepath.Join(dir, "icons")
	require.NoError(t, os.Mkdir(iconDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(iconDir, "1F680.svg"), []byte("<svg/>"), 0o644))
	pack := icons.New(iconDir, database.DefaultIcon)

	store, err := database.Open(context.Background(), filepath.Join(dir, "core.db"), database.Options{Icons: pack})
	require.NoError(t, err)
	bus := events.New(32)
	t.Cleanup(func() {
		bus.Close()
		store.Close()
	})
	return NewService(store, bus, pack), bus
}

func drain(sub *events.Subscription) []events.Event {
	var out []events.Event
	for {
		select {
		case ev := <-sub.C():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestInboxScenario(t *testing.T) {
	ctx := context.Background()
	svc, bus := newTestService(t)
	sub := bus.Subscribe()

	inbox, err := svc.NewCollection(ctx, "Inbox")
	require.NoError(t, err)
	assert.Equal(t, "1F680.svg", inbox.Icon)

	var ids []string
	for i := 0; i < 3; i++ {
		r, err := svc.NewRequest(ctx, models.ProtocolHTTP, inbox.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MethodGet, r.HTTPMethod)
		ids = append(ids, r.ID)
	}
	require.NoError(t, svc.DeleteRequest(ctx, ids[0]))

	got, err := svc.GetCollection(ctx, inbox.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.RequestCount)
	requests, err := svc.ListRequests(ctx, inbox.ID)
	require.NoError(t, err)
	assert.Len(t, requests, 2)

	published := drain(sub)
	require.Len(t, published, 5)
	assert.Equal(t, events.KindCollectionCreated, published[0].Kind)
	for _, ev := range published[1:4] {
		assert.Equal(t, events.KindRequestCreated, ev.Kind)
		assert.Equal(t, inbox.ID, ev.CollectionID)
	}
	assert.Equal(t, events.RequestDeleted(ids[0], inbox.ID), published[4])
}

func TestUpdateRequestPublishesPerField(t *testing.T) {
	ctx := context.Background()
	svc, bus := newTestService(t)

	c, err := svc.NewCollection(ctx, "Events")
	require.NoError(t, err)
	r, err := svc.NewRequest(ctx, "", c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProtocolHTTP, r.Protocol)

	sub := bus.Subscribe()

	_, err = svc.RenameRequest(ctx, r.ID, "Login")
	require.NoError(t, err)
	_, err = svc.ChangeRequestMethod(ctx, r.ID, models.MethodPost)
	require.NoError(t, err)
	withURL, err := svc.UpdateRequest(ctx, r.ID, models.RequestUpdate{URL: models.StringPtr("https://example.com/login")})
	require.NoError(t, err)
	ws := models.ProtocolWebSocket
	withProtocol, err := svc.UpdateRequest(ctx, r.ID, models.RequestUpdate{Protocol: &ws})
	require.NoError(t, err)
	require.NoError(t, svc.SelectRequest(ctx, r.ID))

	published := drain(sub)
	require.Len(t, published, 5)
	assert.Equal(t, events.RequestRenamed("Login", r.ID, c.ID), published[0])
	assert.Equal(t, events.RequestMethodChanged(models.MethodPost, r.ID, c.ID), published[1])
	assert.Equal(t, events.RequestUpdated(withURL), published[2])
	assert.Equal(t, "https://example.com/login", published[2].Request.URL)
	assert.Equal(t, events.RequestUpdated(withProtocol), published[3])
	assert.Equal(t, models.ProtocolWebSocket, published[3].Request.Protocol)
	assert.Equal(t, events.RequestSelected(r.ID), published[4])

	_, err = svc.ChangeRequestMethod(ctx, r.ID, models.HTTPMethod("PATCH"))
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, drain(sub))
}

func TestCollectionEvents(t *testing.T) {
	ctx := context.Background()
	svc, bus := newTestService(t)
	sub := bus.Subscribe()

	c, err := svc.NewCollection(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCollectionName, c.Name)

	renamed, err := svc.RenameCollection(ctx, c.ID, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, c.Icon, renamed.Icon)

	require.NoError(t, svc.DeleteCollection(ctx, c.ID))
	require.NoError(t, svc.DeleteCollection(ctx, c.ID))

	kinds := []events.Kind{}
	for _, ev := range drain(sub) {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []events.Kind{
		events.KindCollectionCreated,
		events.KindCollectionUpdated,
		events.KindCollectionDeleted,
		events.KindCollectionDeleted,
	}, kinds)
}

func TestMutationsSucceedAfterBusClosed(t *testing.T) {
	ctx := context.Background()
	svc, bus := newTestService(t)
	bus.Close()

	c, err := svc.NewCollection(ctx, "Still works")
	require.NoError(t, err)
	_, err = svc.NewRequest(ctx, models.ProtocolWebSocket, c.ID)
	require.NoError(t, err)
}

func TestStartupAndSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	resp, err := svc.Startup(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StartupResponse{Page: 1, CollectionCount: 0}, resp)

	_, err = svc.NewCollection(ctx, "Test collection")
	require.NoError(t, err)
	_, err = svc.NewCollection(ctx, "Other")
	require.NoError(t, err)

	resp, err = svc.Startup(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StartupResponse{Page: 2, CollectionCount: 2}, resp)

	found, err := svc.ListCollections(ctx, "TES")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Test collection", found[0].Name)

	all, err := svc.ListCollections(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestHeadersAndIcons(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.ListHeaders(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	c, err := svc.NewCollection(ctx, "Headers")
	require.NoError(t, err)
	h, err := svc.AddHeader(ctx, c.ID, models.HeaderRequest{Name: "Accept", Value: "*/*"})
	require.NoError(t, err)
	h, err = svc.UpdateHeader(ctx, h.ID, models.HeaderRequest{Name: "Accept", Value: "application/json"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", h.Value)

	headers, err := svc.ListHeaders(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, headers, 1)
	require.NoError(t, svc.DeleteHeader(ctx, h.ID))

	names, err := svc.IconNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"1F680.svg"}, names)
	_, err = svc.ResolveIcon("../core.db")
	assert.ErrorIs(t, err, models.ErrValidation)
}
