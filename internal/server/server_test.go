package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ChicagoDave/citygen/pkg/routing"
	"github.com/ChicagoDave/citygen/pkg/scene2d"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const project = "../../examples/downtown"

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	ts := httptest.NewServer(NewWithStore(project, 0, st).Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func postGenerate(t *testing.T, ts *httptest.Server, body string) generateResponse {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/generate", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out generateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestProjectAndValidation(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/project")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p spec.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, "downtown", p.Name)
	assert.Len(t, p.POIs, 12)

	resp2, err := http.Get(ts.URL + "/api/validation")
	require.NoError(t, err)
	defer resp2.Body.Close()
	var report struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&report))
	assert.True(t, report.Valid)
}

func TestGenerateAndFetchLayout(t *testing.T) {
	ts, st := newTestServer(t)

	gen := postGenerate(t, ts, "")
	require.NotEmpty(t, gen.ID)
	assert.True(t, gen.Metrics.AccessibilityValidated)

	resp, err := http.Get(ts.URL + "/api/layouts/" + gen.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Contains(t, doc, "tile_grid")
	assert.Contains(t, doc, "final_poi_positions")

	snap, err := st.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap, "nothing saved without save=true")
}

func TestFetchScene2D(t *testing.T) {
	ts, _ := newTestServer(t)
	gen := postGenerate(t, ts, "")

	resp, err := http.Get(ts.URL + "/api/layouts/" + gen.ID + "/scene2d")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sc scene2d.Scene2D
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sc))
	assert.Len(t, sc.POIs, 12)
	assert.Len(t, sc.Roads.Main, 2)
}

func TestGenerateSavesPositions(t *testing.T) {
	ts, _ := newTestServer(t)
	postGenerate(t, ts, `{"seed": 7, "save": true}`)

	resp, err := http.Get(ts.URL + "/api/positions")
	require.NoError(t, err)
	defer resp.Body.Close()
	var positions []spec.Position
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&positions))
	assert.Len(t, positions, 12)
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/generate", "application/json", bytes.NewBufferString(`{"mode": "spiral"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestPath(t *testing.T) {
	ts, _ := newTestServer(t)
	gen := postGenerate(t, ts, "")

	resp, err := http.Get(ts.URL + "/api/layouts/" + gen.ID + "/path?from=520,520&to=504,8")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p routing.Path
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.True(t, p.Found)
	assert.NotEmpty(t, p.Points)

	bad, err := http.Get(ts.URL + "/api/layouts/" + gen.ID + "/path?from=oops&to=1,1")
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestUnknownLayout(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/layouts/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
