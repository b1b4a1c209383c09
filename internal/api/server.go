// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/bidscope/bidscope/internal/analysis"
	"github.com/bidscope/bidscope/internal/common"
)

// Server exposes the document analysis pipeline over HTTP.
type Server struct {
	router  chi.Router
	store   analysis.Store
	service *analysis.Service
}

func NewServer(store analysis.Store, service *analysis.Service) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	if service == nil {
		return nil, fmt.Errorf("analysis service required")
	}
	s := &Server{
		router:  chi.NewRouter(),
		store:   store,
		service: service,
	}
	s.routes()
	return s, nil
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/v1/documents", s.handleCreateDocument)
	s.router.Get("/v1/documents", s.handleListDocuments)
	s.router.Get("/v1/documents/{documentID}", s.handleGetDocument)
	s.router.Delete("/v1/documents/{documentID}", s.handleDeleteDocument)

	s.router.Post("/v1/documents/{documentID}/analyze", s.handleAnalyze)
	s.router.Get("/v1/documents/{documentID}/analysis", s.handleGetAnalysis)
	s.router.Delete("/v1/documents/{documentID}/analysis", s.handleDeleteAnalysis)
	s.router.Get("/v1/documents/{documentID}/analysis/status", s.handleStatus)

	s.router.Post("/v1/documents/{documentID}/breakdown", s.handleBreakdown)
	s.router.Get("/v1/documents/{documentID}/tasks", s.handleTasks)
	s.router.Get("/v1/tasks/{taskID}/subtasks", s.handleSubtasks)
	s.router.Get("/v1/documents/{documentID}/export", s.handleExport)

	s.router.Get("/v1/logs", s.handleLogs)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
