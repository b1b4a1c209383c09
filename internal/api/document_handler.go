// File path: internal/api/document_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bidscope/bidscope/internal/analysis"
	"github.com/bidscope/bidscope/internal/common"
)

type createDocumentRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, errors.New("content required"))
		return
	}
	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		filename = "document.txt"
	}

	doc := analysis.Document{
		ID:        uuid.NewString(),
		Filename:  filename,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateDocument(r.Context(), doc); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	common.Logger().Info("api: document registered", "id", doc.ID, "filename", doc.Filename, "bytes", len(doc.Content))
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.Documents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if docs == nil {
		docs = []analysis.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Document(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentID")
	if err := s.store.DeleteDocument(r.Context(), id); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	common.Logger().Info("api: document deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// statusFor maps domain sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrDocumentNotFound),
		errors.Is(err, analysis.ErrAnalysisNotFound),
		errors.Is(err, analysis.ErrNoTasks):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
