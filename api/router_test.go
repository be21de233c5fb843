package api

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"querry/core"
	"querry/database"
	"querry/events"
	"querry/icons"
	"querry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *core.Service) {
	t.Helper()
	dir := t.TempDir()
	iconDir := filepath.Join(dir, "icons")
	require.NoError(t, os.Mkdir(iconDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(iconDir, "1F4A6.svg"), []byte("<svg/>"), 0o644))
	pack := icons.New(iconDir, database.DefaultIcon)

	store, err := database.Open(context.Background(), filepath.Join(dir, "api.db"), database.Options{Icons: pack})
	require.NoError(t, err)
	bus := events.New(16)
	svc := core.NewService(store, bus, pack)

	srv := httptest.NewServer(NewServerHandler(svc))
	t.Cleanup(func() {
		srv.Close()
		bus.Close()
		store.Close()
	})
	return srv, svc
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealthAndStartup(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/version", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"version": "dev"}, decode[map[string]string](t, resp))

	resp = do(t, srv, http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settings := decode[map[string]any](t, resp)
	assert.Equal(t, float64(2), settings["schema_version"])
	assert.Contains(t, settings["database_path"], "api.db")

	resp = do(t, srv, http.MethodGet, "/api/startup", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StartupResponse{Page: 1}, decode[models.StartupResponse](t, resp))
}

func TestCollectionAndRequestFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/collections", `{"name":"Inbox"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	inbox := decode[models.Collection](t, resp)
	assert.Equal(t, "Inbox", inbox.Name)
	assert.Equal(t, "1F4A6.svg", inbox.Icon)

	var ids []string
	for i := 0; i < 3; i++ {
		resp = do(t, srv, http.MethodPost, "/api/collections/"+inbox.ID+"/requests", "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, decode[models.Request](t, resp).ID)
	}
	resp = do(t, srv, http.MethodDelete, "/api/requests/"+ids[0], "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/collections/"+inbox.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[models.Collection](t, resp).RequestCount)

	resp = do(t, srv, http.MethodGet, "/api/collections/"+inbox.ID+"/requests", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.Request](t, resp), 2)

	resp = do(t, srv, http.MethodPatch, "/api/requests/"+ids[1], `{"name":"Login","http_method":"POST"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[models.Request](t, resp)
	assert.Equal(t, "Login", updated.Name)
	assert.Equal(t, models.MethodPost, updated.HTTPMethod)

	resp = do(t, srv, http.MethodGet, "/api/collections?q=INB", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.Collection](t, resp), 1)

	resp = do(t, srv, http.MethodPut, "/api/collections/"+inbox.ID, `{"name":"Archive","request_count":99}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	archived := decode[models.Collection](t, resp)
	assert.Equal(t, "Archive", archived.Name)
	assert.Equal(t, 2, archived.RequestCount)

	resp = do(t, srv, http.MethodDelete, "/api/collections/"+inbox.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, srv, http.MethodDelete, "/api/collections/"+inbox.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, srv, http.MethodGet, "/api/requests/"+ids[1], "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestErrorStatusMapping(t *testing.T) {
	srv, svc := newTestServer(t)
	c, err := svc.NewCollection(context.Background(), "Errors")
	require.NoError(t, err)
	r, err := svc.NewRequest(context.Background(), models.ProtocolHTTP, c.ID)
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown collection", http.MethodGet, "/api/collections/missing", "", http.StatusNotFound},
		{"requests of unknown collection", http.MethodGet, "/api/collections/missing/requests", "", http.StatusNotFound},
		{"request in unknown collection", http.MethodPost, "/api/collections/missing/requests", "", http.StatusNotFound},
		{"undeclared method", http.MethodPatch, "/api/requests/" + r.ID, `{"http_method":"PATCH"}`, http.StatusBadRequest},
		{"undeclared protocol", http.MethodPost, "/api/collections/" + c.ID + "/requests", `{"protocol":"SOAP"}`, http.StatusBadRequest},
		{"blank collection name", http.MethodPut, "/api/collections/" + c.ID, `{"name":" "}`, http.StatusBadRequest},
		{"malformed body", http.MethodPut, "/api/collections/" + c.ID, `{`, http.StatusBadRequest},
		{"unknown header", http.MethodDelete, "/api/headers/missing", "", http.StatusNotFound},
		{"icon traversal", http.MethodGet, "/api/icons/..%2Fapi.db", "", http.StatusBadRequest},
		{"missing icon", http.MethodGet, "/api/icons/1F680.svg", "", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, srv, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestHeadersAndIcons(t *testing.T) {
	srv, svc := newTestServer(t)
	c, err := svc.NewCollection(context.Background(), "Headers")
	require.NoError(t, err)

	resp := do(t, srv, http.MethodPost, "/api/collections/"+c.ID+"/headers", `{"name":"Accept","value":"*/*"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	h := decode[models.CollectionHeader](t, resp)

	resp = do(t, srv, http.MethodPut, "/api/headers/"+h.ID, `{"name":"Accept","value":"application/json"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/collections/"+c.ID+"/headers", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	headers := decode[[]models.CollectionHeader](t, resp)
	require.Len(t, headers, 1)
	assert.Equal(t, "application/json", headers[0].Value)

	resp = do(t, srv, http.MethodGet, "/api/icons", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"1F4A6.svg"}, decode[[]string](t, resp))
	resp = do(t, srv, http.MethodGet, "/api/icons?q=4a6", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"1F4A6.svg"}, decode[[]string](t, resp))
	resp = do(t, srv, http.MethodGet, "/api/icons?q=rocket", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]string](t, resp))

	resp = do(t, srv, http.MethodGet, "/api/icons/1F4A6.svg", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(body))
}

func TestEventStream(t *testing.T) {
	srv, svc := newTestServer(t)
	c, err := svc.NewCollection(context.Background(), "Live")
	require.NoError(t, err)
	r, err := svc.NewRequest(context.Background(), models.ProtocolHTTP, c.ID)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, ": connected", lines.Text())

	sel := do(t, srv, http.MethodPost, "/api/requests/"+r.ID+"/select", "")
	require.Equal(t, http.StatusNoContent, sel.StatusCode)

	var eventLine, dataLine string
	for lines.Scan() {
		line := lines.Text()
		if strings.HasPrefix(line, "event: ") {
			eventLine = line
		}
		if strings.HasPrefix(line, "data: ") {
			dataLine = line
			break
		}
	}
	assert.Equal(t, "event: request_selected", eventLine)

	var ev events.Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(dataLine, "data: ")), &ev))
	assert.Equal(t, events.KindRequestSelected, ev.Kind)
	assert.Equal(t, r.ID, ev.RequestID)
}
