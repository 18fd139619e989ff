package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/storm-data-besttrack/internal/adapter/geojson"
	"github.com/couchcryptid/storm-data-besttrack/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StormParser turns one raw best-track payload into storms.
type StormParser interface {
	ParsePayload(ctx context.Context, payload []byte) ([]domain.Storm, error)
}

// Server exposes the health, readiness and Prometheus metrics endpoints of
// the best-track service, plus an on-demand parse endpoint when a parser is
// supplied.
type Server struct {
	httpServer *http.Server
	parser     StormParser
	maxBody    int64
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, and /metrics
// routes. A non-nil parser also mounts POST /v1/parse, accepting bodies of up
// to maxBody bytes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, parser StormParser, maxBody int64, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		parser:  parser,
		maxBody: maxBody,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	if parser != nil {
		mux.HandleFunc("POST /v1/parse", s.handleParse)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleParse parses the request body and responds with the storms as a JSON
// array, or as a single GeoJSON FeatureCollection when ?format=geojson. An
// empty body yields no storms.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "geojson" {
		writeError(w, http.StatusBadRequest, "format must be json or geojson")
		return
	}

	body := io.Reader(r.Body)
	if s.maxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, s.maxBody)
	}
	payload, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// An empty body is an empty file, not a malformed one.
	storms := []domain.Storm{}
	if len(payload) > 0 {
		storms, err = s.parser.ParsePayload(r.Context(), payload)
		if err != nil {
			s.logger.Warn("parse request rejected", "error", err, "bytes", len(payload))
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	if format == "geojson" {
		w.Header().Set("Content-Type", "application/geo+json")
		data, err := geojson.StormsFeatureCollection(storms).MarshalJSON()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(data) //nolint:errcheck // client disconnects are not actionable
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, storms)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
