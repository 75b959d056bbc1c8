package server

import (
	"context"
	"net/http"
	"slices"
	"time"

	"tracker/internal/config"
	"tracker/internal/middleware"
	"tracker/internal/response"
	"tracker/internal/store"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	rscors "github.com/rs/cors"
)

const healthTimeout = 2 * time.Second

type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	// Registry receives the HTTP metrics and backs /metrics. A fresh one is used when nil.
	Registry *prometheus.Registry
}

// Routers are the resource routers mounted by the server.
type Routers struct {
	Exercises http.Handler
	Users     http.Handler
}

type Server struct {
	http.Handler
	db store.Database
}

func New(opts Options, db store.Database, routers Routers) Server {
	s := Server{db: db}

	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.DefaultMaxBodyBytes
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(reg)

	wildcard := len(opts.AllowedOrigins) == 0 || slices.Contains(opts.AllowedOrigins, "*")
	cors := rscors.New(rscors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: !wildcard,
		Debug:            false,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Handler)
	r.Use(cors.Handler)
	r.Use(middleware.JSONBody(opts.MaxBodyBytes))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(""))
	})
	r.Get("/healthz", s.HealthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Mount("/exercises", routers.Exercises)
	r.Mount("/users", routers.Users)

	s.Handler = r
	return s
}

// HealthHandler reports whether the database answers a ping.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
