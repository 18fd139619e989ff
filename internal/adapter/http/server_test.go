package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "github.com/couchcryptid/storm-data-besttrack/internal/adapter/http"
	"github.com/couchcryptid/storm-data-besttrack/internal/domain"
	gj "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const archivePayload = "AL092011, IRENE, 2,\n" +
	"20110827, 1200, L, HU, 34.7N, 76.6W, 75, 952\n" +
	"20110828, 0000, , HU, 35.1N, 77.0W, 70, 958\n"

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

// domainParser parses with the real domain parser; err short-circuits.
type domainParser struct {
	err error
}

func (p *domainParser) ParsePayload(_ context.Context, payload []byte) ([]domain.Storm, error) {
	if p.err != nil {
		return nil, p.err
	}
	return domain.ParseBestTrack(string(payload)), nil
}

func newTestServer(readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, &domainParser{}, 1<<20, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(fmt.Errorf("pipeline has not processed any payloads yet"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "pipeline has not processed any payloads yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestParse_JSON(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader(archivePayload))

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var storms []domain.Storm
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &storms))
	require.Len(t, storms, 1)
	assert.Equal(t, "AL092011", storms[0].ID)
	assert.Equal(t, 2, storms[0].ObservationCount)
}

func TestParse_EmptyBodyReturnsEmptyArray(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader("  \n"))

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestParse_GeoJSON(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/parse?format=geojson", strings.NewReader(archivePayload))

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	fc, err := gj.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, fc.Features, 3)
}

func TestParse_BadFormat(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/parse?format=kml", strings.NewReader(archivePayload))

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParse_TooLarge(t *testing.T) {
	srv := httpadapter.NewServer(":0", &mockReadiness{}, &domainParser{}, 16, slog.Default())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader(archivePayload))

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestParse_ParserError(t *testing.T) {
	srv := httpadapter.NewServer(":0", &mockReadiness{}, &domainParser{err: errors.New("payload too large")}, 1<<20, slog.Default())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader("\x1f\x8bcorrupt"))

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "payload too large", body["error"])
}

func TestParse_ZeroLengthBodyIsEmptyResult(t *testing.T) {
	// The parser rejects empty payloads, as the stream transformer does.
	srv := httpadapter.NewServer(":0", &mockReadiness{}, &domainParser{err: errors.New("empty payload")}, 1<<20, slog.Default())

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"json", "", `[]`},
		{"geojson", "?format=geojson", `{"type":"FeatureCollection","features":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/parse"+tt.query, strings.NewReader(""))

			srv.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestParse_NotMountedWithoutParser(t *testing.T) {
	srv := httpadapter.NewServer(":0", &mockReadiness{}, nil, 0, slog.Default())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader(archivePayload))

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
