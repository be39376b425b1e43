package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"p9e.in/homepro/config"
	"p9e.in/homepro/models"
	"p9e.in/homepro/utils"
)

var (
	ErrDuplicateReview = errors.New("booking already reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// ReviewService handles review submission and the derived rating aggregates
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new ReviewService instance
func NewReviewService() *ReviewService {
	return &ReviewService{
		db: config.DB,
	}
}

type SubmitReviewRequest struct {
	ContractorID uuid.UUID  `json:"contractor_id"`
	BookingID    *uuid.UUID `json:"booking_id"`
	Rating       int        `json:"rating"`
	Title        *string    `json:"title"`
	Comment      *string    `json:"comment"`
}

// SubmitReview inserts the review and recomputes the contractor's
// avg_rating/total_reviews from all review rows, inside one transaction, so
// the aggregates can never drift from the underlying rows.
func (s *ReviewService) SubmitReview(customerID uuid.UUID, req SubmitReviewRequest) (*models.Review, error) {
	if !models.ValidRating(req.Rating) {
		return nil, ErrInvalidRating
	}
	if req.ContractorID == uuid.Nil {
		return nil, errors.New("contractor_id is required")
	}

	var contractor models.ContractorProfile
	if err := s.db.First(&contractor, "id = ?", req.ContractorID).Error; err != nil {
		return nil, fmt.Errorf("contractor: %w", ErrNotFound)
	}

	if req.BookingID != nil {
		var booking models.Booking
		if err := s.db.First(&booking, "id = ?", *req.BookingID).Error; err != nil {
			return nil, fmt.Errorf("booking: %w", ErrNotFound)
		}
		if booking.CustomerID != customerID {
			return nil, ErrNotOwner
		}
		if booking.ContractorID != req.ContractorID {
			return nil, errors.New("booking does not belong to this contractor")
		}

		var existing int64
		s.db.Model(&models.Review{}).Where("booking_id = ?", *req.BookingID).Count(&existing)
		if existing > 0 {
			return nil, ErrDuplicateReview
		}
	}

	review := &models.Review{
		BookingID:    req.BookingID,
		ContractorID: req.ContractorID,
		CustomerID:   customerID,
		Rating:       req.Rating,
		Title:        req.Title,
		Comment:      req.Comment,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			// the unique index on booking_id backs up the pre-check under
			// concurrent submissions
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return ErrDuplicateReview
			}
			return fmt.Errorf("failed to create review: %w", err)
		}

		var ratings []int
		if err := tx.Model(&models.Review{}).
			Where("contractor_id = ?", req.ContractorID).
			Pluck("rating", &ratings).Error; err != nil {
			return fmt.Errorf("failed to read ratings: %w", err)
		}

		return tx.Model(&models.ContractorProfile{}).
			Where("id = ?", req.ContractorID).
			Updates(map[string]interface{}{
				"avg_rating":    utils.RatingMean(ratings),
				"total_reviews": len(ratings),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	meta := map[string]string{"review_id": review.ID.String()}
	if req.BookingID != nil {
		meta["booking_id"] = req.BookingID.String()
	}
	notifyUser(contractor.UserID, models.NotificationReviewReceived,
		"New review",
		fmt.Sprintf("You received a %d-star review", req.Rating),
		nil, meta)

	log.Printf("✅ Review %s submitted for contractor %s (rating %d)", review.ID, req.ContractorID, req.Rating)
	return review, nil
}

// ListContractorReviews returns a contractor's reviews, newest first.
func (s *ReviewService) ListContractorReviews(contractorID uuid.UUID) ([]models.ReviewDTO, error) {
	var contractor models.ContractorProfile
	if err := s.db.First(&contractor, "id = ?", contractorID).Error; err != nil {
		return nil, ErrNotFound
	}

	var reviews []models.Review
	err := s.db.
		Preload("Customer").
		Where("contractor_id = ?", contractorID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	out := make([]models.ReviewDTO, len(reviews))
	for i := range reviews {
		out[i] = reviews[i].ToDTO()
	}
	return out, nil
}
