// Package server exposes the search core over HTTP. Handlers stay thin:
// decode the request, call the core, map the error taxonomy onto status
// codes. All sizing and type checks the core cannot do itself happen
// here, at the boundary.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/analytics"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/cache"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/config"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/export"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/filter"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/search"
)

// Server wires the core components into an HTTP handler tree.
type Server struct {
	searcher *search.Searcher
	bulk     *search.Orchestrator
	cache    *cache.Cache
	records  []*model.Record
	limiter  *rate.Limiter
}

// New creates a server over fully constructed core components.
func New(searcher *search.Searcher, bulk *search.Orchestrator, c *cache.Cache, records []*model.Record, cfg config.ServerConfig) *Server {
	limit := rate.Limit(cfg.RatePerSecond)
	if limit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return &Server{
		searcher: searcher,
		bulk:     bulk,
		cache:    c,
		records:  records,
		limiter:  rate.NewLimiter(limit, burst),
	}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(s.throttle)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/bulk-search", s.handleBulkSearch)
		r.Get("/export/{id}", s.handleExport)
		r.Get("/analytics", s.handleAnalytics)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "records": len(s.records)})
}

// filterParams is the wire form of a filter. Amount bounds arrive as
// strings and are re-validated here even though the boundary contract
// says they were already type-checked — a malformed bound must fail
// loudly, never corrupt a result set.
type filterParams struct {
	City      string `json:"city"`
	State     string `json:"state"`
	MinAmount string `json:"min_amount"`
	MaxAmount string `json:"max_amount"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (p filterParams) toFilter() (filter.Filter, error) {
	minAmount, err := filter.ParseAmount(p.MinAmount)
	if err != nil {
		return filter.Filter{}, err
	}
	maxAmount, err := filter.ParseAmount(p.MaxAmount)
	if err != nil {
		return filter.Filter{}, err
	}
	return filter.Filter{
		City:      p.City,
		State:     p.State,
		MinAmount: minAmount,
		MaxAmount: maxAmount,
		StartDate: filter.ParseDate(p.StartDate),
		EndDate:   filter.ParseDate(p.EndDate),
	}, nil
}

func searchMode(s string) model.SearchMode {
	if s == string(model.SearchModeFuzzy) {
		return model.SearchModeFuzzy
	}
	return model.SearchModeExact
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string       `json:"name"`
		Mode    string       `json:"mode"`
		Filters filterParams `json:"filters"`
		Limit   int          `json:"limit"`
		Offset  int          `json:"offset"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, eris.Wrap(model.ErrValidation, "invalid request body"))
		return
	}

	f, err := req.Filters.toFilter()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.searcher.Search(search.Query{
		Name:   req.Name,
		Mode:   searchMode(req.Mode),
		Filter: f,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBulkSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Names   []string     `json:"names"`
		Mode    string       `json:"mode"`
		Filters filterParams `json:"filters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, eris.Wrap(model.ErrValidation, "invalid request body"))
		return
	}

	f, err := req.Filters.toFilter()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.bulk.Run(r.Context(), search.BulkRequest{
		Names:  req.Names,
		Mode:   searchMode(req.Mode),
		Filter: f,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	records, ok := s.cache.Get(id)
	if !ok {
		writeError(w, eris.Wrapf(model.ErrNotFound, "export %s expired or never existed", id))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="contributions.csv"`)
	if err := export.WriteCSV(w, records); err != nil {
		// Headers are gone; all we can do is log.
		zap.L().Error("export: csv write failed", zap.String("id", id), zap.Error(err))
	}
}

func (s *Server) handleAnalytics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, analytics.Compute(s.records))
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

// writeError maps the core error taxonomy onto HTTP status codes.
// Unexpected faults are logged and reported generically — no partial
// results leave the process.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case eris.Is(err, model.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case eris.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		zap.L().Error("internal error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
