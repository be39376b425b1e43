// models/review.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a customer's rating of a contractor, optionally tied to a
// booking. At most one review per booking: checked by pre-query and backed
// by a unique index on booking_id (Postgres permits multiple NULLs there, so
// unbooked reviews are unconstrained). Every insert triggers a recompute of
// the contractor's avg_rating/total_reviews inside the same transaction.
type Review struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID    *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"booking_id,omitempty"`
	ContractorID uuid.UUID  `gorm:"type:uuid;not null;index" json:"contractor_id"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"customer_id"`
	Rating       int        `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title        *string    `gorm:"size:200" json:"title,omitempty"`
	Comment      *string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	Booking    *Booking           `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	Contractor *ContractorProfile `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	Customer   *Profile           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// ValidRating reports whether the rating is on the accepted 1..5 scale.
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// ReviewDTO joins the reviewer's name onto a review.
type ReviewDTO struct {
	ID           uuid.UUID  `json:"id"`
	BookingID    *uuid.UUID `json:"booking_id,omitempty"`
	ContractorID uuid.UUID  `json:"contractor_id"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	CustomerName string     `json:"customer_name,omitempty"`
	Rating       int        `json:"rating"`
	Title        *string    `json:"title,omitempty"`
	Comment      *string    `json:"comment,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToDTO flattens a preloaded Review.
func (r *Review) ToDTO() ReviewDTO {
	dto := ReviewDTO{
		ID:           r.ID,
		BookingID:    r.BookingID,
		ContractorID: r.ContractorID,
		CustomerID:   r.CustomerID,
		Rating:       r.Rating,
		Title:        r.Title,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}
	if r.Customer != nil {
		dto.CustomerName = r.Customer.FullName
	}
	return dto
}
