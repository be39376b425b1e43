// handlers/reviews.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var reviewServiceInstance *ReviewService

func getReviewService() *ReviewService {
	if reviewServiceInstance == nil {
		reviewServiceInstance = NewReviewService()
	}
	return reviewServiceInstance
}

// SubmitReview posts a review and recomputes the contractor's aggregates
// POST /api/v1/reviews
func SubmitReview(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	review, err := getReviewService().SubmitReview(customerID, req)
	if err != nil {
		log.Printf("❌ Error submitting review: %v", err)
		if errors.Is(err, ErrDuplicateReview) || errors.Is(err, ErrInvalidRating) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(review)
}

// ListContractorReviews returns a contractor's reviews
// GET /api/v1/contractors/{id}/reviews
func ListContractorReviews(w http.ResponseWriter, r *http.Request) {
	contractorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid contractor id", http.StatusBadRequest)
		return
	}

	reviews, err := getReviewService().ListContractorReviews(contractorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(reviews),
		"data":  reviews,
	})
}
