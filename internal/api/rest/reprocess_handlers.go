package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fortuna/gridiron/internal/reprocess"
	"github.com/gorilla/mux"
)

// ReprocessHandler proxies API calls to the reprocess service.
type ReprocessHandler struct {
	service *reprocess.Service
}

// NewReprocessHandler wires the REST layer to the reprocess service.
func NewReprocessHandler(service *reprocess.Service) *ReprocessHandler {
	return &ReprocessHandler{service: service}
}

type apiReprocessRequest struct {
	SeasonYear string   `json:"season_year"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	GameID     string   `json:"game_id"`
	GameIDs    []string `json:"game_ids"`
	DryRun     bool     `json:"dry_run"`
}

// HandleReprocessRequest handles POST /api/v1/reprocess
func (h *ReprocessHandler) HandleReprocessRequest(w http.ResponseWriter, r *http.Request) {
	var req apiReprocessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reprocessReq := reprocess.Request{
		SeasonYear: req.SeasonYear,
		DryRun:     req.DryRun,
	}

	if len(req.GameIDs) > 0 {
		reprocessReq.GameIDs = append(reprocessReq.GameIDs, req.GameIDs...)
	}
	if req.GameID != "" {
		reprocessReq.GameIDs = append(reprocessReq.GameIDs, req.GameID)
	}

	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid start_date format (YYYY-MM-DD)", err)
			return
		}
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		reprocessReq.StartDate = &start
	}

	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid end_date format (YYYY-MM-DD)", err)
			return
		}
		end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
		reprocessReq.EndDate = &end
	}

	job, err := h.service.Enqueue(r.Context(), reprocessReq)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to enqueue reprocess job", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job": jobPayload(job),
	})
}

// HandleReprocessStatus handles GET /api/v1/reprocess/status
func (h *ReprocessHandler) HandleReprocessStatus(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetStatus(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch status", err)
		return
	}

	payload := buildStatusPayload(summary)
	respondJSON(w, http.StatusOK, payload)
}

// HandleGetJob handles GET /api/v1/reprocess/jobs/{jobID}
func (h *ReprocessHandler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID := vars["jobID"]

	job, err := h.service.GetJob(r.Context(), jobID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Job not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"job": jobPayload(job),
	})
}

func buildStatusPayload(summary *reprocess.StatusSummary) map[string]interface{} {
	response := map[string]interface{}{
		"status":  "idle",
		"message": "No active jobs",
		"history": []map[string]interface{}{},
	}

	if summary.ActiveJob != nil {
		response["status"] = summary.ActiveJob.Status
		if summary.ActiveJob.StatusMessage.Valid {
			response["message"] = summary.ActiveJob.StatusMessage.String
		}
		response["active_job"] = jobPayload(summary.ActiveJob)
	}

	history := make([]map[string]interface{}, 0, len(summary.History))
	for _, job := range summary.History {
		history = append(history, jobPayload(job))
	}

	response["history"] = history
	return response
}

func jobPayload(job *reprocess.Job) map[string]interface{} {
	if job == nil {
		return nil
	}

	payload := map[string]interface{}{
		"job_id":           job.JobID,
		"job_type":         job.JobType,
		"status":           job.Status,
		"progress_current": job.ProgressCurrent,
		"progress_total":   job.ProgressTotal,
		"created_at":       job.CreatedAt,
		"updated_at":       job.UpdatedAt,
	}

	if job.StatusMessage.Valid {
		payload["status_message"] = job.StatusMessage.String
	}
	if job.SeasonYear.Valid {
		payload["season_year"] = job.SeasonYear.String
	}
	if job.StartDate.Valid {
		payload["start_date"] = job.StartDate.Time.Format("2006-01-02")
	}
	if job.EndDate.Valid {
		payload["end_date"] = job.EndDate.Time.Format("2006-01-02")
	}
	if len(job.GameIDs) > 0 {
		payload["game_ids"] = job.GameIDs
	}
	if job.StartedAt.Valid {
		payload["started_at"] = job.StartedAt.Time
	}
	if job.CompletedAt.Valid {
		payload["completed_at"] = job.CompletedAt.Time
	}
	if job.LastError.Valid {
		payload["last_error"] = job.LastError.String
	}

	return payload
}
