package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/testutils"
	plumehttp "github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/http"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/memory"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), "default", testutils.NewResult(t, "default", 5)))
	require.NoError(t, store.Save(context.Background(), "run01", testutils.NewResult(t, "run01", 5)))

	metrics := observability.NewMetrics(false)
	srv := httptest.NewServer(plumehttp.NewHandler(store, metrics.Handler(), plumehttp.WithVersion("test")))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := newServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestListRuns(t *testing.T) {
	srv := newServer(t)
	var body map[string][]string
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/runs", &body))
	assert.Equal(t, []string{"default", "run01"}, body["runs"])
}

func TestListRuns_Where(t *testing.T) {
	srv := newServer(t)
	var body map[string][]string
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/runs?where=run_label%3Drun01", &body))
	assert.Equal(t, []string{"run01"}, body["runs"])

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/runs?where=broken", nil))
}

func TestGetRun(t *testing.T) {
	srv := newServer(t)
	var doc map[string]any
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/runs/default", &doc))
	assert.Equal(t, "plume-run/v1", doc["format"])
}

func TestGetRun_NotFound(t *testing.T) {
	srv := newServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/runs/missing", &body))
	assert.Equal(t, "ArtifactIOError", body["kind"])
}

func TestGetProvenance(t *testing.T) {
	srv := newServer(t)
	var attrs map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/runs/run01/provenance", &attrs))
	assert.Equal(t, "run01", attrs["run_label"])
	assert.Equal(t, "100000.0", attrs["start_pressure"])
}

func TestGetField(t *testing.T) {
	srv := newServer(t)

	var stored plumehttp.FieldResponse
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/runs/default/fields/velocity", &stored))
	assert.False(t, stored.Derived)
	assert.Len(t, stored.Values, 5)
	assert.Len(t, stored.Pressure, 5)

	var derived plumehttp.FieldResponse
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/runs/default/fields/temp_diff", &derived))
	assert.True(t, derived.Derived)
	assert.Len(t, derived.Values, 5)
}

func TestGetField_Unknown(t *testing.T) {
	srv := newServer(t)
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/runs/default/fields/nope", nil))
}

func TestMetrics(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics_NotMountedWithoutHandler(t *testing.T) {
	srv := httptest.NewServer(plumehttp.NewHandler(memory.NewStore(), nil))
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
