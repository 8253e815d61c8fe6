package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	dserrors "github.com/nishad/dsquery/internal/errors"
	"github.com/nishad/dsquery/internal/query"
)

// QueryResponse is the body of every query endpoint. Lookup misses produce
// an empty result list with status 200.
type QueryResponse struct {
	Query    string        `json:"query"`
	Argument string        `json:"argument,omitempty"`
	Count    int           `json:"count"`
	Results  []query.Entry `json:"results"`
}

func (s *Server) respond(w http.ResponseWriter, name query.Name, arg string) {
	entries, err := s.engine.Run(string(name), arg)
	if err != nil {
		status := http.StatusInternalServerError
		if dserrors.IsKind(err, dserrors.KindMissingArgument) || dserrors.IsKind(err, dserrors.KindUsage) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err.Error())
		return
	}
	if entries == nil {
		entries = []query.Entry{}
	}

	s.writeJSON(w, http.StatusOK, QueryResponse{
		Query:    string(name),
		Argument: arg,
		Count:    len(entries),
		Results:  entries,
	})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	s.respond(w, query.Groups, "")
}

func (s *Server) handleGroupSamples(name query.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, name, mux.Vars(r)["id"])
	}
}

// handleAllSamples also accepts ?group= as the optional filter.
func (s *Server) handleAllSamples(name query.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, name, r.URL.Query().Get("group"))
	}
}

func (s *Server) handleSample(name query.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, name, mux.Vars(r)["id"])
	}
}

// handleRoot returns API information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":    "dsquery API",
		"version": "1.0.0",
		"dataset": s.engine.Dataset().Source,
		"endpoints": map[string]string{
			"groups":   "/api/v1/groups",
			"samples":  "/api/v1/samples",
			"siblings": "/api/v1/samples/{id}/siblings",
			"health":   "/api/v1/health",
		},
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handleHealth returns health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds := s.engine.Dataset()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"groups":    len(ds.Groups),
		"samples":   ds.SampleCount(),
	})
}
