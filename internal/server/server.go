package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ChicagoDave/citygen/pkg/generate"
	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/scene"
	"github.com/ChicagoDave/citygen/pkg/scene2d"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/store"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// Server is the local development server for interactive design.
type Server struct {
	projectPath string
	port        int
	store       store.PositionStore
	log         *slog.Logger

	mu      sync.RWMutex
	layouts map[string]*generated
}

type generated struct {
	result   *generate.Result
	document *scene.Document
	scene2d  *scene2d.Scene2D
}

// New creates a server for the given project directory. Positions are kept
// in the project's positions file.
func New(projectPath string, port int) *Server {
	return NewWithStore(projectPath, port, store.ProjectFileStore(projectPath))
}

// NewWithStore creates a server that persists positions in st.
func NewWithStore(projectPath string, port int, st store.PositionStore) *Server {
	return &Server{
		projectPath: projectPath,
		port:        port,
		store:       st,
		log:         slog.Default(),
		layouts:     make(map[string]*generated),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/project", s.handleProject)
		r.Get("/validation", s.handleValidation)
		r.Post("/generate", s.handleGenerate)
		r.Get("/layouts/{id}", s.handleLayout)
		r.Get("/layouts/{id}/path", s.handlePath)
		r.Get("/layouts/{id}/scene2d", s.handleScene2D)
		r.Get("/positions", s.handlePositions)
	})
	r.Get("/", s.handleIndex)
	return r
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("citygen server starting", "addr", "http://localhost"+addr, "project", s.projectPath)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>citygen</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>citygen</h1>
<p>POST /api/generate, then fetch /api/layouts/{id} or /api/layouts/{id}/scene2d.</p>
</div>
</body></html>`)
}

func (s *Server) handleProject(w http.ResponseWriter, _ *http.Request) {
	p, err := spec.LoadProject(s.projectPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	p, err := spec.LoadProject(s.projectPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, validation.ValidateConfig(p.Config, p.POIs))
}

// generateRequest optionally overrides parts of the project config.
type generateRequest struct {
	Seed *int64          `json:"seed,omitempty"`
	Mode spec.SpreadMode `json:"mode,omitempty"`
	Save bool            `json:"save,omitempty"`
}

type generateResponse struct {
	ID       string             `json:"id"`
	Metrics  generate.Metrics   `json:"metrics"`
	Report   *validation.Report `json:"report"`
	Unplaced []string           `json:"unplaced,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
			return
		}
	}

	p, err := spec.LoadProject(s.projectPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	cfg := p.Config
	if req.Seed != nil {
		cfg.RNGSeed = *req.Seed
	}
	if req.Mode != "" {
		cfg.SpreadMode = req.Mode
	}

	snapshot, err := s.store.Snapshot(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	res, err := generate.New(cfg, generate.WithLogger(s.log)).Run(generate.ApplySnapshot(p.POIs, snapshot))
	var cerr *generate.ConfigurationError
	if errors.As(err, &cerr) {
		respondJSON(w, http.StatusUnprocessableEntity, cerr.Report)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	if req.Save {
		if err := s.store.Upsert(r.Context(), res.Snapshot()); err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.layouts[id] = &generated{
		result:   res,
		document: scene.Assemble(p.Name, res),
		scene2d:  scene2d.Assemble2D(p.Name, res),
	}
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, generateResponse{
		ID:       id,
		Metrics:  res.Metrics,
		Report:   res.Report,
		Unplaced: res.Unplaced,
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*generated, bool) {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	g, ok := s.layouts[id]
	s.mu.RUnlock()
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Errorf("layout %q not found", id))
	}
	return g, ok
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, g.document)
}

func (s *Server) handleScene2D(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, g.scene2d)
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	from, err := geo.ParsePoint(r.URL.Query().Get("from"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("from: %w", err))
		return
	}
	to, err := geo.ParsePoint(r.URL.Query().Get("to"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("to: %w", err))
		return
	}
	respondJSON(w, http.StatusOK, g.result.Pathfinder().FindPath(from, to))
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.store.Snapshot(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}
