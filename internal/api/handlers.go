package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dateLayout is the request/response date format.
const dateLayout = "2006-01-02"

type crawlRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type crawlResponse struct {
	RunID     string   `json:"run_id"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Count     int      `json:"count"`
	Headlines []string `json:"headlines"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// submitCrawl runs a crawl synchronously for the requested date range and
// returns the deduplicated headlines.
func (s *Server) submitCrawl(w http.ResponseWriter, r *http.Request) {
	var req crawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "end_date must be YYYY-MM-DD"})
		return
	}
	if start.After(end) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "start_date is after end_date"})
		return
	}

	runID := uuid.NewString()
	s.logger.Info("crawl submitted",
		zap.String("run_id", runID),
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate),
	)

	set, err := s.engine.Run(r.Context(), start, end, s.extract)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away; nothing useful to write.
			return
		}
		s.logger.Error("crawl failed", zap.String("run_id", runID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "crawl failed"})
		return
	}

	headlines := set.Slice()
	writeJSON(w, http.StatusOK, crawlResponse{
		RunID:     runID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Count:     len(headlines),
		Headlines: headlines,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
