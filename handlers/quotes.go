// handlers/quotes.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// SubmitQuote files a contractor's bid on a job
// POST /api/v1/jobs/{id}/quotes
func SubmitQuote(w http.ResponseWriter, r *http.Request) {
	contractorUserID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	var req SubmitQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	quote, err := getJobService().SubmitQuote(contractorUserID, jobID, req)
	if err != nil {
		log.Printf("❌ Error submitting quote on job %s: %v", jobID, err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(quote)
}

// ListJobQuotes is the customer's quote comparison view
// GET /api/v1/jobs/{id}/quotes
func ListJobQuotes(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	quotes, err := getJobService().ListJobQuotes(customerID, jobID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(quotes),
		"data":  quotes,
	})
}

type acceptQuoteReq struct {
	FinalPrice *float64 `json:"final_price"`
}

// AcceptQuote accepts one quote, assigns the job, rejects the rest
// POST /api/v1/jobs/{id}/quotes/{quoteId}/accept
func AcceptQuote(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	jobID, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}
	quoteID, err := uuid.Parse(vars["quoteId"])
	if err != nil {
		http.Error(w, "invalid quote id", http.StatusBadRequest)
		return
	}

	var req acceptQuoteReq
	if r.Body != nil {
		// body is optional; final_price defaults to the quoted price
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	quote, err := getJobService().AcceptQuote(customerID, jobID, quoteID, req.FinalPrice)
	if err != nil {
		log.Printf("❌ Error accepting quote %s: %v", quoteID, err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}

// WithdrawQuote retracts the contractor's own pending quote
// POST /api/v1/quotes/{id}/withdraw
func WithdrawQuote(w http.ResponseWriter, r *http.Request) {
	contractorUserID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	quoteID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid quote id", http.StatusBadRequest)
		return
	}

	quote, err := getJobService().WithdrawQuote(contractorUserID, quoteID)
	if err != nil {
		log.Printf("❌ Error withdrawing quote %s: %v", quoteID, err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}

// ListMyQuotes returns the contractor's own quotes with job context
// GET /api/v1/quotes/mine
func ListMyQuotes(w http.ResponseWriter, r *http.Request) {
	contractorUserID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	quotes, err := getJobService().ListContractorQuotes(contractorUserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(quotes),
		"data":  quotes,
	})
}
