// handlers/bookings.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/homepro/models"
)

var bookingServiceInstance *BookingService

func getBookingService() *BookingService {
	if bookingServiceInstance == nil {
		bookingServiceInstance = NewBookingService()
	}
	return bookingServiceInstance
}

// CreateBooking is the direct booking path
// POST /api/v1/bookings
func CreateBooking(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	booking, err := getBookingService().CreateBooking(customerID, req)
	if err != nil {
		log.Printf("❌ Error creating booking: %v", err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(booking)
}

// ListBookings lists flattened bookings for one party
// GET /api/v1/bookings?customerId= | ?contractorId=
func ListBookings(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	var customerID, contractorID *uuid.UUID
	if raw := r.URL.Query().Get("customerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid customerId", http.StatusBadRequest)
			return
		}
		customerID = &id
	}
	if raw := r.URL.Query().Get("contractorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid contractorId", http.StatusBadRequest)
			return
		}
		contractorID = &id
	}

	bookings, err := getBookingService().ListBookings(callerID, customerID, contractorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(bookings),
		"data":  bookings,
	})
}

type updateBookingStatusReq struct {
	Status models.BookingStatus `json:"status"`
}

// UpdateBookingStatus moves a booking along its lifecycle
// POST /api/v1/bookings/{id}/status
func UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid booking id", http.StatusBadRequest)
		return
	}

	var req updateBookingStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	booking, err := getBookingService().UpdateBookingStatus(callerID, bookingID, req.Status)
	if err != nil {
		log.Printf("❌ Error updating booking %s: %v", bookingID, err)
		if errors.Is(err, ErrBookingStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(booking)
}
