// handlers/jobs.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/homepro/middleware"
	"p9e.in/homepro/models"
)

var jobServiceInstance *JobService

func getJobService() *JobService {
	if jobServiceInstance == nil {
		jobServiceInstance = NewJobService()
	}
	return jobServiceInstance
}

// writeServiceError maps service-layer errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNotOwner), errors.Is(err, ErrNoContractor):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrJobNotOpen),
		errors.Is(err, ErrDuplicateQuote),
		errors.Is(err, ErrQuoteNotPending):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case strings.HasPrefix(err.Error(), "failed to"):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func callerUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

func parseUUIDList(raw string) []uuid.UUID {
	if raw == "" {
		return nil
	}
	var out []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		if id, err := uuid.Parse(strings.TrimSpace(part)); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// CreateJob posts a new job request
// POST /api/v1/jobs
func CreateJob(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	job, err := getJobService().CreateJob(customerID, req)
	if err != nil {
		log.Printf("❌ Error creating job: %v", err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(job)
}

// ListOpenJobs is the contractor-facing board
// GET /api/v1/jobs?categoryIds=a,b&quotedJobIds=c,d
func ListOpenJobs(w http.ResponseWriter, r *http.Request) {
	categoryIDs := parseUUIDList(r.URL.Query().Get("categoryIds"))
	quotedJobIDs := parseUUIDList(r.URL.Query().Get("quotedJobIds"))

	jobs, err := getJobService().ListOpenJobs(categoryIDs, quotedJobIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(jobs),
		"data":  jobs,
	})
}

// ListMyJobs returns the customer's posted jobs with their quotes
// GET /api/v1/jobs/mine
func ListMyJobs(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	jobs, err := getJobService().ListCustomerJobs(customerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(jobs),
		"data":  jobs,
	})
}

// GetJob returns one job with quotes
// GET /api/v1/jobs/{id}
func GetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	job, err := getJobService().GetJob(jobID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// CancelJob cancels an open job
// POST /api/v1/jobs/{id}/cancel
func CancelJob(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	job, err := getJobService().CancelJob(customerID, jobID)
	if err != nil {
		log.Printf("❌ Error cancelling job %s: %v", jobID, err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

type updateJobStatusReq struct {
	Status models.JobStatus `json:"status"`
}

// UpdateJobStatus advances a job along its lifecycle
// POST /api/v1/jobs/{id}/status
func UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	var req updateJobStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	job, err := getJobService().AdvanceStatus(callerID, jobID, req.Status)
	if err != nil {
		log.Printf("❌ Error updating job %s status: %v", jobID, err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}
