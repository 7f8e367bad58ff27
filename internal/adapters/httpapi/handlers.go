package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/inboxguard/fraud-filter/internal/core"
	"go.uber.org/zap"
)

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Text           string                 `json:"text"`
	Prediction     string                 `json:"prediction"`
	SuspicionScore float64                `json:"suspicion_score"`
	Sentiment      string                 `json:"sentiment"`
	Method         string                 `json:"method"`
	Threshold      float64                `json:"threshold"`
	Details        map[string]interface{} `json:"details"`
}

type analyzeAllRequest struct {
	Email  string           `json:"email"`
	Emails []core.EmailItem `json:"emails"`
}

type analyzeAllResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Results []core.ItemSummary `json:"results"`
}

type deleteUserDataRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Email fraud analysis API is running",
		"status":  "ok",
		"endpoints": map[string]string{
			"test":        "/api/test",
			"predict":     "/predict",
			"analyze_all": "/api/analyze-all",
			"metrics":     "/api/metrics",
			"delete_data": "/api/delete-user-data",
		},
	})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"message":   "Backend is running and accessible",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}

	verdict := s.service.Classify(r.Context(), req.Text)

	writeJSON(w, http.StatusOK, predictResponse{
		Text:           req.Text,
		Prediction:     string(verdict.Prediction),
		SuspicionScore: math.Round(verdict.SuspicionScore*1000) / 1000,
		Sentiment:      core.SentimentFor(verdict.SuspicionScore),
		Method:         verdict.Method,
		Threshold:      s.service.Threshold(),
		Details:        verdict.Details,
	})
}

func (s *Server) handleAnalyzeAll(w http.ResponseWriter, r *http.Request) {
	var req analyzeAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Emails == nil {
		writeError(w, http.StatusBadRequest, "Missing email or emails data")
		return
	}
	if len(req.Emails) == 0 {
		writeError(w, http.StatusBadRequest, "No emails provided")
		return
	}

	results := s.service.AnalyzeBatch(r.Context(), req.Email, req.Emails)

	writeJSON(w, http.StatusOK, analyzeAllResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully analyzed %d emails", len(results)),
		Results: results,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	snapshot, err := s.metrics.Get(r.Context(), email)
	if err != nil {
		if errors.Is(err, core.ErrSnapshotNotFound) {
			writeJSON(w, http.StatusOK, core.DefaultSnapshot())
			return
		}
		s.logger.Error("Failed to read metrics snapshot", zap.String("user", email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to retrieve metrics")
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleDeleteUserData(w http.ResponseWriter, r *http.Request) {
	var req deleteUserDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := s.metrics.Delete(r.Context(), req.Email); err != nil {
		s.logger.Error("Failed to delete user data", zap.String("user", req.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete user data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Successfully deleted data for %s", req.Email),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
