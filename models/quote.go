// models/quote.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuoteStatus is the lifecycle state of a contractor's bid.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusWithdrawn QuoteStatus = "withdrawn"
)

// Quote is a contractor's bid on an open job. At most one quote per
// (job_request_id, contractor_id); enforced by pre-checking before insert
// and by excluding already-quoted jobs from the contractor's candidate list.
// quoted_price is locked once the quote is accepted; the final-price edit at
// acceptance time is the last write before the lock.
type Quote struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	JobRequestID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_quotes_job_contractor" json:"job_request_id"`
	ContractorID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_quotes_job_contractor" json:"contractor_id"`
	QuotedPrice       float64     `gorm:"not null" json:"quoted_price"`
	EstimatedDuration *string     `gorm:"size:100" json:"estimated_duration,omitempty"`
	Message           *string     `gorm:"type:text" json:"message,omitempty"`
	Status            QuoteStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`

	Job        *JobRequest        `gorm:"foreignKey:JobRequestID" json:"job,omitempty"`
	Contractor *ContractorProfile `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
}

func (Quote) TableName() string {
	return "quotes"
}

func (q *Quote) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}

// QuoteDTO joins the contractor's public identity onto a quote for the
// customer's comparison view.
type QuoteDTO struct {
	ID                uuid.UUID   `json:"id"`
	JobRequestID      uuid.UUID   `json:"job_request_id"`
	ContractorID      uuid.UUID   `json:"contractor_id"`
	BusinessName      string      `json:"business_name,omitempty"`
	AvgRating         float64     `json:"avg_rating"`
	TotalReviews      int         `json:"total_reviews"`
	QuotedPrice       float64     `json:"quoted_price"`
	EstimatedDuration *string     `json:"estimated_duration,omitempty"`
	Message           *string     `json:"message,omitempty"`
	Status            QuoteStatus `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
}

// ToDTO flattens a preloaded Quote.
func (q *Quote) ToDTO() QuoteDTO {
	dto := QuoteDTO{
		ID:                q.ID,
		JobRequestID:      q.JobRequestID,
		ContractorID:      q.ContractorID,
		QuotedPrice:       q.QuotedPrice,
		EstimatedDuration: q.EstimatedDuration,
		Message:           q.Message,
		Status:            q.Status,
		CreatedAt:         q.CreatedAt,
	}
	if q.Contractor != nil {
		dto.BusinessName = q.Contractor.BusinessName
		dto.AvgRating = q.Contractor.AvgRating
		dto.TotalReviews = q.Contractor.TotalReviews
	}
	return dto
}
