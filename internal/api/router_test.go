package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogtools/eav-import/internal/observability"
	"github.com/catalogtools/eav-import/internal/registry"
)

func newTestRouter(t *testing.T) (*registry.Memory, *httptest.Server) {
	t.Helper()
	reg := registry.NewMemory(0)
	loggers := observability.NewRegistry(observability.LogConfig{Level: "error", ServiceName: "test"})
	srv := httptest.NewServer(NewRouter(loggers.System(), reg))
	t.Cleanup(srv.Close)
	return reg, srv
}

func TestHealthz(t *testing.T) {
	_, srv := newTestRouter(t)

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}

func TestGetRun(t *testing.T) {
	reg, srv := newTestRouter(t)
	status := registry.Status{
		RunID:         "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		State:         registry.StateRunning,
		Files:         2,
		RowsProcessed: 17,
		StartedAt:     time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, reg.Put(context.Background(), status))

	resp, err := srv.Client().Get(srv.URL + "/runs/" + status.RunID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var got registry.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, status.RunID, got.RunID)
	assert.Equal(t, registry.StateRunning, got.State)
	assert.Equal(t, int64(17), got.RowsProcessed)
}

func TestGetRun_NotFound(t *testing.T) {
	_, srv := newTestRouter(t)

	resp, err := srv.Client().Get(srv.URL + "/runs/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)
}
