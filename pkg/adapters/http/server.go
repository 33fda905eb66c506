package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/logging"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/artifact"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/compare"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes stored run results over HTTP.
type Server struct {
	Store   ports.ResultReader
	Metrics http.Handler
	Logger  *slog.Logger
	Version string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithVersion sets the version reported by /healthz.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// NewHandler creates the results API. metrics may be nil, in which case
// /metrics is not mounted.
func NewHandler(store ports.ResultReader, metrics http.Handler, opts ...Option) http.Handler {
	s := &Server{Store: store, Metrics: metrics}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", s.GetHealth)
	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.ListRuns)
		r.Get("/{label}", s.GetRun)
		r.Get("/{label}/provenance", s.GetProvenance)
		r.Get("/{label}/fields/{field}", s.GetField)
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.Version})
}

// ListRuns handles GET /runs. The optional where=key=value query keeps only
// runs whose provenance matches.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	var (
		labels []string
		err    error
	)
	if where := r.URL.Query().Get("where"); where != "" {
		key, value, perr := compare.ParseWhere(where)
		if perr != nil {
			s.writeError(w, r, perr)
			return
		}
		labels, err = compare.FindByAttribute(r.Context(), s.Store, key, value)
	} else {
		labels, err = s.Store.List(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if labels == nil {
		labels = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"runs": labels})
}

// GetRun handles GET /runs/{label} and returns the artifact document.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	result, ok := s.load(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, artifact.NewDocument(result))
}

// GetProvenance handles GET /runs/{label}/provenance.
func (s *Server) GetProvenance(w http.ResponseWriter, r *http.Request) {
	result, ok := s.load(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, result.Attributes())
}

// FieldResponse is the body of GET /runs/{label}/fields/{field}.
type FieldResponse struct {
	Run      string           `json:"run"`
	Field    string           `json:"field"`
	Derived  bool             `json:"derived"`
	Pressure []artifact.Value `json:"pressure"`
	Values   []artifact.Value `json:"values"`
}

// GetField handles GET /runs/{label}/fields/{field}. Derived fields such as
// temp_diff are computed on the fly.
func (s *Server) GetField(w http.ResponseWriter, r *http.Request) {
	result, ok := s.load(w, r)
	if !ok {
		return
	}
	label := chi.URLParam(r, "label")
	name := chi.URLParam(r, "field")

	batch := domain.NewBatch()
	if err := batch.Add(label, result); err != nil {
		s.writeError(w, r, err)
		return
	}
	ds := compare.NewDataset(batch)
	pressure, values, err := ds.Field(label, name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, FieldResponse{
		Run:      label,
		Field:    name,
		Derived:  !result.Has(name) && ds.Derived(name),
		Pressure: values64(pressure),
		Values:   values64(values),
	})
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*domain.RunResult, bool) {
	result, err := s.Store.Load(r.Context(), chi.URLParam(r, "label"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return result, true
}

func values64(in []float64) []artifact.Value {
	out := make([]artifact.Value, len(in))
	for i, v := range in {
		out[i] = artifact.Value(v)
	}
	return out
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrRunNotFound), errors.Is(err, domain.ErrFieldNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConfigValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.Logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"kind":  string(domain.KindOf(err)),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
