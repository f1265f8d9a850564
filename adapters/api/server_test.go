package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reprokit/adapters/api"
	"reprokit/adapters/manifeststore"
	"reprokit/domain/manifest"
)

func newTestServer(t *testing.T) (*httptest.Server, *manifeststore.FSStore) {
	t.Helper()
	store := manifeststore.New(t.TempDir())
	ts := httptest.NewServer(api.NewServer(store).Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateListAndFetchManifest(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/manifests", map[string]any{
		"name":   "api_experiment",
		"seed":   42,
		"params": map[string]any{"lr": 0.001},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Manifest manifest.Manifest `json:"manifest"`
		Path     string            `json:"path"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, "api_experiment", created.Manifest.Name)
	assert.Equal(t, int64(42), created.Manifest.Seed)
	assert.Len(t, created.Manifest.Checksum, 16)

	listResp, err := http.Get(ts.URL + "/api/manifests")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var listing struct {
		Count int `json:"count"`
	}
	decodeBody(t, listResp, &listing)
	assert.Equal(t, 1, listing.Count)

	getResp, err := http.Get(ts.URL + "/api/manifests/" + filepath.Base(created.Path))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var fetched struct {
		Manifest      manifest.Manifest `json:"manifest"`
		ChecksumValid bool              `json:"checksum_valid"`
	}
	decodeBody(t, getResp, &fetched)
	assert.True(t, fetched.ChecksumValid)
	assert.Equal(t, created.Manifest.Checksum, fetched.Manifest.Checksum)
}

func TestCreateRequiresName(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/manifests", map[string]any{"seed": 1})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateRejectsNegativeSeed(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/manifests", map[string]any{
		"name": "bad",
		"seed": -1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMissingManifest(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/manifests/nope.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
