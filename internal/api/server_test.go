package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cverad/connectome/pkg/store"
)

const testMatrix = "0 2 1\n2 0 2\n1 2 0\n"

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return NewServer(Config{Store: st}), st
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeAndFetch(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := doJSON(t, h, http.MethodPost, "/v1/analyze", analyzeRequest{
		Name:   "sub-01",
		Matrix: testMatrix,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 3, resp.Vertices)
	assert.Equal(t, 3, resp.Edges)
	assert.Equal(t, "louvain", resp.Method)
	assert.Empty(t, resp.Warnings)

	rec = doJSON(t, h, http.MethodGet, "/v1/results/"+resp.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got store.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "sub-01", got.Name)
	assert.Contains(t, string(got.Graph), `"nodes"`)

	rec = doJSON(t, h, http.MethodGet, "/v1/results", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []store.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, resp.ID, list[0].ID)

	rec = doJSON(t, h, http.MethodDelete, "/v1/results/"+resp.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/v1/results/"+resp.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeBadRequest(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/v1/analyze", analyzeRequest{
		Matrix:          testMatrix,
		CommunityMethod: "nope",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var apiErr apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "INVALID_METHOD", string(apiErr.Code))
}

func TestRenderDOT(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := doJSON(t, h, http.MethodPost, "/v1/analyze", analyzeRequest{Matrix: testMatrix})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = doJSON(t, h, http.MethodGet, "/v1/results/"+resp.ID+"/render?format=dot", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "graph connectome {")
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "connectome_http_requests_in_flight")
}
