// models/booking.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus is the lifecycle state of a scheduled engagement.
type BookingStatus string

const (
	BookingStatusScheduled  BookingStatus = "scheduled"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusScheduled, BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking ties a job, its winning quote, and both parties to a scheduled
// date. Created by the direct booking-request path (job + placeholder quote
// + booking written in one transaction).
type Booking struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	JobRequestID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"job_request_id"`
	QuoteID       uuid.UUID     `gorm:"type:uuid;not null" json:"quote_id"`
	ContractorID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"contractor_id"`
	CustomerID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"customer_id"`
	ScheduledDate time.Time     `gorm:"not null" json:"scheduled_date"`
	Status        BookingStatus `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Notes         *string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Job        *JobRequest        `gorm:"foreignKey:JobRequestID" json:"job,omitempty"`
	Quote      *Quote             `gorm:"foreignKey:QuoteID" json:"quote,omitempty"`
	Contractor *ContractorProfile `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	Customer   *Profile           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// BookingDTO is the flattened booking row returned by the list endpoints.
type BookingDTO struct {
	ID            uuid.UUID     `json:"id"`
	JobRequestID  uuid.UUID     `json:"job_request_id"`
	JobTitle      string        `json:"job_title,omitempty"`
	ContractorID  uuid.UUID     `json:"contractor_id"`
	BusinessName  string        `json:"business_name,omitempty"`
	CustomerID    uuid.UUID     `json:"customer_id"`
	CustomerName  string        `json:"customer_name,omitempty"`
	QuotedPrice   float64       `json:"quoted_price"`
	ScheduledDate time.Time     `json:"scheduled_date"`
	Status        BookingStatus `json:"status"`
	Notes         *string       `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ToDTO flattens a preloaded Booking.
func (b *Booking) ToDTO() BookingDTO {
	dto := BookingDTO{
		ID:            b.ID,
		JobRequestID:  b.JobRequestID,
		ContractorID:  b.ContractorID,
		CustomerID:    b.CustomerID,
		ScheduledDate: b.ScheduledDate,
		Status:        b.Status,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
	}
	if b.Job != nil {
		dto.JobTitle = b.Job.Title
	}
	if b.Contractor != nil {
		dto.BusinessName = b.Contractor.BusinessName
	}
	if b.Customer != nil {
		dto.CustomerName = b.Customer.FullName
	}
	if b.Quote != nil {
		dto.QuotedPrice = b.Quote.QuotedPrice
	}
	return dto
}
