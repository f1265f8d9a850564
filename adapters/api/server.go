// Package api exposes the manifest directory over HTTP: a read-mostly
// experiment-tracking sidecar plus one endpoint to record a new run.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"reprokit/adapters/manifeststore"
	"reprokit/app"
	"reprokit/domain/manifest"
	"reprokit/internal"
	"reprokit/internal/errors"
)

// Server serves the manifest API
type Server struct {
	router    chi.Router
	store     *manifeststore.FSStore
	manifests *app.ManifestService
	logger    *internal.Logger
}

// NewServer creates the manifest API server over the given store
func NewServer(store *manifeststore.FSStore) *Server {
	s := &Server{
		store:     store,
		manifests: app.NewManifestService(store),
		logger:    internal.DefaultLogger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/api/manifests", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{file}", s.handleGet)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	manifests, err := s.store.List()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if manifests == nil {
		manifests = []*manifest.Manifest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"manifests": manifests,
		"count":     len(manifests),
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	m, err := s.store.LoadNamed(file)
	if err != nil {
		switch errors.GetCode(err) {
		case errors.CodeInvalidInput:
			s.writeError(w, http.StatusBadRequest, err)
		case errors.CodePersistenceFailed:
			s.writeError(w, http.StatusNotFound, err)
		default:
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"manifest":       m,
		"checksum_valid": m.VerifyChecksum() == nil,
	})
}

// createRequest is the POST /api/manifests body
type createRequest struct {
	Name   string         `json:"name"`
	Seed   *int64         `json:"seed"`
	Params map[string]any `json:"params"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid request body"))
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidInput, "name is required"))
		return
	}
	seed := int64(defaultSeed)
	if req.Seed != nil {
		seed = *req.Seed
	}

	m, path, err := s.manifests.Record(req.Name, seed, req.Params)
	if err != nil {
		switch errors.GetCode(err) {
		case errors.CodeInvalidSeed, errors.CodeSerializationFailed:
			s.writeError(w, http.StatusBadRequest, err)
		default:
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"manifest": m,
		"path":     path,
	})
}

// defaultSeed mirrors the RANDOM_SEED default
const defaultSeed = 42

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("request failed: %v", err)
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
