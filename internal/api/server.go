package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/nishad/dsquery/internal/query"
)

// Server represents the HTTP API server
type Server struct {
	router *mux.Router
	server *http.Server
	engine *query.Engine
}

// Config holds server configuration
type Config struct {
	Host       string
	Port       int
	EnableCORS bool
	Quiet      bool // suppress request logging
}

// NewServer creates a new API server over an already loaded dataset
func NewServer(engine *query.Engine, cfg *Config) *Server {
	s := &Server{
		router: mux.NewRouter(),
		engine: engine,
	}

	// Preflight requests must match a route to reach the CORS middleware.
	methods := []string{"GET"}
	if cfg.EnableCORS {
		methods = append(methods, "OPTIONS")
	}
	s.setupRoutes(methods)

	if cfg.EnableCORS {
		s.router.Use(corsMiddleware)
	}
	if !cfg.Quiet {
		s.router.Use(loggingMiddleware)
	}
	s.router.Use(jsonMiddleware)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes(methods []string) {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Group endpoints
	api.HandleFunc("/groups", s.handleGroups).Methods(methods...)
	api.HandleFunc("/groups/{id}/samples", s.handleGroupSamples(query.Samples)).Methods(methods...)
	api.HandleFunc("/groups/{id}/sampledirs", s.handleGroupSamples(query.SampleDirs)).Methods(methods...)

	// Sample endpoints
	api.HandleFunc("/samples", s.handleAllSamples(query.Samples)).Methods(methods...)
	api.HandleFunc("/sampledirs", s.handleAllSamples(query.SampleDirs)).Methods(methods...)
	api.HandleFunc("/samples/{id}/group", s.handleSample(query.Group)).Methods(methods...)
	api.HandleFunc("/samples/{id}/dir", s.handleSample(query.SampleDir)).Methods(methods...)
	api.HandleFunc("/samples/{id}/siblings", s.handleSample(query.Siblings)).Methods(methods...)

	// Health check
	api.HandleFunc("/health", s.handleHealth).Methods(methods...)

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot).Methods(methods...)
}

// Handler exposes the routed handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("[API] Starting server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("[API] Shutting down server...")
	return s.server.Shutdown(ctx)
}

// Middleware functions

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[API] %s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Helper functions

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[API] Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"status":  status,
	})
}
