// handlers/contractors.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/homepro/models"
)

var contractorServiceInstance *ContractorService

func getContractorService() *ContractorService {
	if contractorServiceInstance == nil {
		contractorServiceInstance = NewContractorService()
	}
	return contractorServiceInstance
}

// OnboardContractor creates the caller's contractor profile
// POST /api/v1/contractors/onboard
func OnboardContractor(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	var req OnboardContractorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	contractor, err := getContractorService().Onboard(userID, req)
	if err != nil {
		log.Printf("❌ Error onboarding contractor: %v", err)
		if errors.Is(err, ErrAlreadyOnboarded) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(contractor)
}

// ListContractors is the public directory of approved contractors
// GET /api/v1/contractors?categoryId=&near=lat,lng&radius_km=
func ListContractors(w http.ResponseWriter, r *http.Request) {
	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid categoryId", http.StatusBadRequest)
			return
		}
		categoryID = &id
	}

	var near *NearFilter
	if raw := r.URL.Query().Get("near"); raw != "" {
		parts := strings.Split(raw, ",")
		if len(parts) != 2 {
			http.Error(w, "near must be lat,lng", http.StatusBadRequest)
			return
		}
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLat != nil || errLng != nil {
			http.Error(w, "near must be lat,lng", http.StatusBadRequest)
			return
		}
		radius := 50.0
		if rawRadius := r.URL.Query().Get("radius_km"); rawRadius != "" {
			if parsed, err := strconv.ParseFloat(rawRadius, 64); err == nil && parsed > 0 {
				radius = parsed
			}
		}
		near = &NearFilter{Lat: lat, Lng: lng, RadiusKM: radius}
	}

	contractors, err := getContractorService().ListApproved(categoryID, near)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(contractors),
		"data":  contractors,
	})
}

// GetContractor returns one contractor's public profile
// GET /api/v1/contractors/{id}
func GetContractor(w http.ResponseWriter, r *http.Request) {
	contractorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid contractor id", http.StatusBadRequest)
		return
	}

	contractor, err := getContractorService().GetContractor(contractorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contractor)
}

// AddContractorService declares a category the caller works in
// POST /api/v1/contractors/services
func AddContractorService(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	var req AddServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	service, err := getContractorService().AddService(userID, req)
	if err != nil {
		if errors.Is(err, ErrDuplicateService) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(service)
}

// ListContractorServices lists the caller's declared services
// GET /api/v1/contractors/services
func ListContractorServices(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	services, err := getContractorService().ListServices(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(services),
		"data":  services,
	})
}

// RemoveContractorService withdraws a declared category
// DELETE /api/v1/contractors/services/{id}
func RemoveContractorService(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	serviceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid service id", http.StatusBadRequest)
		return
	}

	if err := getContractorService().RemoveService(userID, serviceID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "service removed"})
}

// ContractorDashboard is the contractor's activity summary
// GET /api/v1/contractors/dashboard
func ContractorDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	stats, err := getContractorService().Dashboard(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// ListServiceCategories returns the category catalog
// GET /api/v1/categories
func ListServiceCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.ServiceCategory
	if err := getContractorService().db.Order("name ASC").Find(&categories).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(categories),
		"data":  categories,
	})
}

// ============================================================================
// Admin moderation
// ============================================================================

// AdminListContractors is the moderation queue
// GET /api/v1/admin/contractors?status=
func AdminListContractors(w http.ResponseWriter, r *http.Request) {
	status := models.ContractorStatus(r.URL.Query().Get("status"))

	contractors, err := getContractorService().ListByStatus(status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]models.ContractorDTO, len(contractors))
	for i := range contractors {
		out[i] = contractors[i].ToDTO()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(out),
		"data":  out,
	})
}

type setContractorStatusReq struct {
	Status models.ContractorStatus `json:"status"`
}

// AdminSetContractorStatus approves, suspends or rejects a contractor
// POST /api/v1/admin/contractors/{id}/status
func AdminSetContractorStatus(w http.ResponseWriter, r *http.Request) {
	contractorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid contractor id", http.StatusBadRequest)
		return
	}

	var req setContractorStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	contractor, err := getContractorService().SetStatus(contractorID, req.Status)
	if err != nil {
		log.Printf("❌ Error setting contractor %s status: %v", contractorID, err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contractor)
}
