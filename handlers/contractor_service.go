package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"p9e.in/homepro/config"
	"p9e.in/homepro/models"
	"p9e.in/homepro/utils"
)

var (
	ErrAlreadyOnboarded = errors.New("contractor profile already exists for this user")
	ErrDuplicateService = errors.New("contractor already offers this category")
)

// ContractorService handles contractor profiles, declared services and
// moderation
type ContractorService struct {
	db *gorm.DB
}

// NewContractorService creates a new ContractorService instance
func NewContractorService() *ContractorService {
	return &ContractorService{
		db: config.DB,
	}
}

type OnboardContractorRequest struct {
	BusinessName    string   `json:"business_name"`
	Bio             *string  `json:"bio"`
	YearsExperience *int     `json:"years_experience"`
	LicenseNumber   *string  `json:"license_number"`
	City            *string  `json:"city"`
	State           *string  `json:"state"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	HourlyRate      *float64 `json:"hourly_rate"`
	MinProjectSize  *float64 `json:"min_project_size"`
	ServiceAreas    []string `json:"service_areas"`
}

// Onboard creates the business profile for a contractor-type user. New
// profiles start pending and stay off public listings until approved.
func (s *ContractorService) Onboard(userID uuid.UUID, req OnboardContractorRequest) (*models.ContractorProfile, error) {
	if strings.TrimSpace(req.BusinessName) == "" {
		return nil, errors.New("business_name is required")
	}
	if req.Latitude != nil && req.Longitude != nil {
		if err := utils.ValidateCoordinate(*req.Latitude, *req.Longitude); err != nil {
			return nil, err
		}
	}

	var existing int64
	s.db.Model(&models.ContractorProfile{}).Where("user_id = ?", userID).Count(&existing)
	if existing > 0 {
		return nil, ErrAlreadyOnboarded
	}

	contractor := &models.ContractorProfile{
		UserID:          userID,
		BusinessName:    strings.TrimSpace(req.BusinessName),
		Bio:             req.Bio,
		YearsExperience: req.YearsExperience,
		LicenseNumber:   req.LicenseNumber,
		City:            req.City,
		State:           req.State,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		HourlyRate:      req.HourlyRate,
		MinProjectSize:  req.MinProjectSize,
		ServiceAreas:    pq.StringArray(req.ServiceAreas),
		Status:          models.ContractorStatusPending,
	}
	if err := s.db.Create(contractor).Error; err != nil {
		return nil, fmt.Errorf("failed to create contractor profile: %w", err)
	}
	log.Printf("✅ Contractor profile %s created for user %s (pending approval)", contractor.ID, userID)
	return contractor, nil
}

// NearFilter restricts a listing to contractors within RadiusKM of a point.
type NearFilter struct {
	Lat      float64
	Lng      float64
	RadiusKM float64
}

// ListApproved returns approved contractors as flattened DTOs, optionally
// narrowed by category and proximity. The distance filter runs in-process
// over the approved set; contractors without coordinates are skipped when a
// near filter is set.
func (s *ContractorService) ListApproved(categoryID *uuid.UUID, near *NearFilter) ([]models.ContractorDTO, error) {
	q := s.db.
		Preload("User").
		Preload("Services").
		Preload("Services.Category").
		Where("status = ?", models.ContractorStatusApproved)

	if categoryID != nil {
		q = q.Where("id IN (SELECT contractor_id FROM contractor_services WHERE category_id = ?)", *categoryID)
	}

	var contractors []models.ContractorProfile
	if err := q.Order("avg_rating DESC, total_reviews DESC").Find(&contractors).Error; err != nil {
		return nil, fmt.Errorf("failed to list contractors: %w", err)
	}

	out := make([]models.ContractorDTO, 0, len(contractors))
	for i := range contractors {
		c := &contractors[i]
		dto := c.ToDTO()
		if near != nil {
			if c.Latitude == nil || c.Longitude == nil {
				continue
			}
			d := utils.DistanceKM(near.Lat, near.Lng, *c.Latitude, *c.Longitude)
			if d > near.RadiusKM {
				continue
			}
			dto.DistanceKM = &d
		}
		out = append(out, dto)
	}
	return out, nil
}

// GetContractor returns one contractor's flattened profile.
func (s *ContractorService) GetContractor(contractorID uuid.UUID) (*models.ContractorDTO, error) {
	var contractor models.ContractorProfile
	err := s.db.
		Preload("User").
		Preload("Services").
		Preload("Services.Category").
		First(&contractor, "id = ?", contractorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	dto := contractor.ToDTO()
	return &dto, nil
}

type AddServiceRequest struct {
	CategoryID    uuid.UUID `json:"category_id"`
	PriceRangeMin *float64  `json:"price_range_min"`
	PriceRangeMax *float64  `json:"price_range_max"`
	Description   *string   `json:"description"`
}

// AddService declares a category the contractor works in. One row per
// (contractor, category).
func (s *ContractorService) AddService(userID uuid.UUID, req AddServiceRequest) (*models.ContractorService, error) {
	contractor, err := s.profileForUser(userID)
	if err != nil {
		return nil, err
	}
	var category models.ServiceCategory
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		return nil, fmt.Errorf("category: %w", ErrNotFound)
	}

	var existing int64
	s.db.Model(&models.ContractorService{}).
		Where("contractor_id = ? AND category_id = ?", contractor.ID, req.CategoryID).
		Count(&existing)
	if existing > 0 {
		return nil, ErrDuplicateService
	}

	service := &models.ContractorService{
		ContractorID:  contractor.ID,
		CategoryID:    req.CategoryID,
		PriceRangeMin: req.PriceRangeMin,
		PriceRangeMax: req.PriceRangeMax,
		Description:   req.Description,
	}
	if err := s.db.Create(service).Error; err != nil {
		return nil, fmt.Errorf("failed to add service: %w", err)
	}
	service.Category = &category
	return service, nil
}

// ListServices returns the caller's declared services.
func (s *ContractorService) ListServices(userID uuid.UUID) ([]models.ContractorService, error) {
	contractor, err := s.profileForUser(userID)
	if err != nil {
		return nil, err
	}
	var services []models.ContractorService
	err = s.db.
		Preload("Category").
		Where("contractor_id = ?", contractor.ID).
		Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// RemoveService withdraws a declared category.
func (s *ContractorService) RemoveService(userID, serviceID uuid.UUID) error {
	contractor, err := s.profileForUser(userID)
	if err != nil {
		return err
	}
	result := s.db.Where("id = ? AND contractor_id = ?", serviceID, contractor.ID).
		Delete(&models.ContractorService{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DashboardStats is the contractor's home-screen summary.
type DashboardStats struct {
	TotalJobs         int     `json:"total_jobs"`
	PendingQuotes     int64   `json:"pending_quotes"`
	AcceptedQuotes    int64   `json:"accepted_quotes"`
	CompletedBookings int64   `json:"completed_bookings"`
	AvgRating         float64 `json:"avg_rating"`
	TotalReviews      int     `json:"total_reviews"`
	SuccessRate       float64 `json:"success_rate"`
}

// Dashboard aggregates the contractor's activity counters. Success rate is
// completed bookings over accepted quotes.
func (s *ContractorService) Dashboard(userID uuid.UUID) (*DashboardStats, error) {
	contractor, err := s.profileForUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalJobs:    contractor.TotalJobs,
		AvgRating:    contractor.AvgRating,
		TotalReviews: contractor.TotalReviews,
	}

	if err := s.db.Model(&models.Quote{}).
		Where("contractor_id = ? AND status = ?", contractor.ID, models.QuoteStatusPending).
		Count(&stats.PendingQuotes).Error; err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}
	if err := s.db.Model(&models.Quote{}).
		Where("contractor_id = ? AND status = ?", contractor.ID, models.QuoteStatusAccepted).
		Count(&stats.AcceptedQuotes).Error; err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}
	if err := s.db.Model(&models.Booking{}).
		Where("contractor_id = ? AND status = ?", contractor.ID, models.BookingStatusCompleted).
		Count(&stats.CompletedBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	stats.SuccessRate = utils.SuccessRate(stats.CompletedBookings, stats.AcceptedQuotes)
	return stats, nil
}

// ============================================================================
// Moderation (admin)
// ============================================================================

// ListByStatus is the admin moderation queue.
func (s *ContractorService) ListByStatus(status models.ContractorStatus) ([]models.ContractorProfile, error) {
	q := s.db.Preload("User")
	if status != "" {
		if !models.ValidContractorStatus(status) {
			return nil, fmt.Errorf("unknown contractor status %q", status)
		}
		q = q.Where("status = ?", status)
	}
	var contractors []models.ContractorProfile
	if err := q.Order("created_at ASC").Find(&contractors).Error; err != nil {
		return nil, fmt.Errorf("failed to list contractors: %w", err)
	}
	return contractors, nil
}

// SetStatus moves a contractor between moderation states.
func (s *ContractorService) SetStatus(contractorID uuid.UUID, status models.ContractorStatus) (*models.ContractorProfile, error) {
	if !models.ValidContractorStatus(status) {
		return nil, fmt.Errorf("unknown contractor status %q", status)
	}
	var contractor models.ContractorProfile
	if err := s.db.First(&contractor, "id = ?", contractorID).Error; err != nil {
		return nil, ErrNotFound
	}
	if err := s.db.Model(&contractor).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update contractor status: %w", err)
	}
	contractor.Status = status
	log.Printf("✅ Contractor %s moderation status -> %s", contractorID, status)
	return &contractor, nil
}

func (s *ContractorService) profileForUser(userID uuid.UUID) (*models.ContractorProfile, error) {
	var contractor models.ContractorProfile
	err := s.db.First(&contractor, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoContractor
	}
	if err != nil {
		return nil, err
	}
	return &contractor, nil
}
