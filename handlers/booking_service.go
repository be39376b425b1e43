package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/homepro/config"
	"p9e.in/homepro/models"
)

var ErrBookingStatus = errors.New("invalid booking status change")

// BookingService handles scheduled engagements
type BookingService struct {
	db *gorm.DB
}

// NewBookingService creates a new BookingService instance
func NewBookingService() *BookingService {
	return &BookingService{
		db: config.DB,
	}
}

type CreateBookingRequest struct {
	ContractorID  uuid.UUID `json:"contractor_id"`
	CategoryID    uuid.UUID `json:"category_id"`
	Description   string    `json:"description"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Notes         *string   `json:"notes"`
}

// CreateBooking is the direct path: the customer books a contractor without
// the open-bidding round. A synthetic job and a placeholder zero-price quote
// are written alongside the booking so the record graph stays uniform; all
// three rows commit in one transaction.
func (s *BookingService) CreateBooking(customerID uuid.UUID, req CreateBookingRequest) (*models.Booking, error) {
	if req.ContractorID == uuid.Nil || req.CategoryID == uuid.Nil {
		return nil, errors.New("contractor_id and category_id are required")
	}
	if req.ScheduledDate.IsZero() {
		return nil, errors.New("scheduled_date is required")
	}

	var contractor models.ContractorProfile
	if err := s.db.First(&contractor, "id = ?", req.ContractorID).Error; err != nil {
		return nil, fmt.Errorf("contractor: %w", ErrNotFound)
	}
	if contractor.Status != models.ContractorStatusApproved {
		return nil, errors.New("contractor is not accepting bookings")
	}
	var category models.ServiceCategory
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		return nil, fmt.Errorf("category: %w", ErrNotFound)
	}

	description := req.Description
	if description == "" {
		description = "Direct booking request"
	}

	booking := &models.Booking{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		job := &models.JobRequest{
			CustomerID:  customerID,
			CategoryID:  req.CategoryID,
			Title:       "Booking Request",
			Description: description,
			Status:      models.JobStatusAssigned,
		}
		if err := tx.Create(job).Error; err != nil {
			return fmt.Errorf("failed to create booking job: %w", err)
		}

		// price is settled off-platform on the direct path
		quote := &models.Quote{
			JobRequestID: job.ID,
			ContractorID: req.ContractorID,
			QuotedPrice:  0,
			Status:       models.QuoteStatusAccepted,
		}
		if err := tx.Create(quote).Error; err != nil {
			return fmt.Errorf("failed to create booking quote: %w", err)
		}

		booking.JobRequestID = job.ID
		booking.QuoteID = quote.ID
		booking.ContractorID = req.ContractorID
		booking.CustomerID = customerID
		booking.ScheduledDate = req.ScheduledDate
		booking.Status = models.BookingStatusScheduled
		booking.Notes = req.Notes
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyUser(contractor.UserID, models.NotificationBookingCreated,
		"New booking request",
		fmt.Sprintf("You have a booking scheduled for %s", req.ScheduledDate.Format("Jan 2, 2006")),
		&booking.JobRequestID,
		map[string]string{"booking_id": booking.ID.String()})

	log.Printf("✅ Created booking %s (customer %s -> contractor %s)", booking.ID, customerID, req.ContractorID)
	return booking, nil
}

// ListBookings returns flattened bookings for one side of the marketplace.
// The caller must be the party they are asking about.
func (s *BookingService) ListBookings(callerID uuid.UUID, customerID, contractorID *uuid.UUID) ([]models.BookingDTO, error) {
	q := s.db.
		Preload("Job").
		Preload("Quote").
		Preload("Contractor").
		Preload("Customer")

	switch {
	case customerID != nil:
		if *customerID != callerID {
			return nil, ErrNotOwner
		}
		q = q.Where("customer_id = ?", *customerID)
	case contractorID != nil:
		var contractor models.ContractorProfile
		if err := s.db.First(&contractor, "id = ?", *contractorID).Error; err != nil {
			return nil, ErrNotFound
		}
		if contractor.UserID != callerID {
			return nil, ErrNotOwner
		}
		q = q.Where("contractor_id = ?", *contractorID)
	default:
		return nil, errors.New("customerId or contractorId query parameter is required")
	}

	var bookings []models.Booking
	if err := q.Order("scheduled_date DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	out := make([]models.BookingDTO, len(bookings))
	for i := range bookings {
		out[i] = bookings[i].ToDTO()
	}
	return out, nil
}

// UpdateBookingStatus moves a booking between scheduled, in_progress,
// completed and cancelled. Either party on the booking may update it.
func (s *BookingService) UpdateBookingStatus(callerID, bookingID uuid.UUID, to models.BookingStatus) (*models.Booking, error) {
	if !models.ValidBookingStatus(to) {
		return nil, fmt.Errorf("unknown status %q: %w", to, ErrBookingStatus)
	}

	var booking models.Booking
	if err := s.db.Preload("Contractor").First(&booking, "id = ?", bookingID).Error; err != nil {
		return nil, ErrNotFound
	}

	isCustomer := booking.CustomerID == callerID
	isContractor := booking.Contractor != nil && booking.Contractor.UserID == callerID
	if !isCustomer && !isContractor {
		return nil, ErrNotOwner
	}

	if booking.Status == models.BookingStatusCompleted || booking.Status == models.BookingStatusCancelled {
		return nil, fmt.Errorf("booking is already %s: %w", booking.Status, ErrBookingStatus)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&booking).Update("status", to).Error; err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		if to == models.BookingStatusCompleted {
			if err := tx.Model(&models.ContractorProfile{}).
				Where("id = ?", booking.ContractorID).
				UpdateColumn("total_jobs", gorm.Expr("total_jobs + 1")).Error; err != nil {
				return fmt.Errorf("failed to bump contractor jobs: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	booking.Status = to
	return &booking, nil
}
