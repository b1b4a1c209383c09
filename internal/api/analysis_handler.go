// File path: internal/api/analysis_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"

	"github.com/bidscope/bidscope/internal/analysis"
	"github.com/bidscope/bidscope/internal/common"
	"github.com/bidscope/bidscope/internal/report"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")

	var req analysis.AnalyzeRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
			return
		}
	}

	rec, err := s.service.Analyze(r.Context(), documentID, req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	rec, err := s.service.AnalysisForDocument(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	if err := s.service.DeleteAnalysis(r.Context(), documentID); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	common.Logger().Info("api: analysis deleted", "document", documentID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.service.StatusForDocument(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	force := r.URL.Query().Get("force") == "true"

	text, err := s.service.GenerateBreakdown(r.Context(), documentID, force)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"document_id": documentID,
		"breakdown":   text,
		"forced":      force,
	})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.service.Tasks(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (s *Server) handleSubtasks(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parse task id: %w", err))
		return
	}
	subtasks, err := s.service.Subtasks(r.Context(), taskID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if subtasks == nil {
		subtasks = []analysis.Subtask{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"subtasks": subtasks})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")

	doc, err := s.store.Document(r.Context(), documentID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	rec, err := s.service.AnalysisForDocument(r.Context(), documentID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	tasks, err := s.service.Tasks(r.Context(), documentID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	workbook, err := report.Build(doc, rec, tasks)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	defer workbook.Close()

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("serialize workbook: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(doc)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	common.Logger().Info("api: breakdown exported", "document", documentID, "bytes", buf.Len())
}
