// models/contractor.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ContractorStatus is the moderation state of a contractor profile. Only
// approved contractors appear in public listings.
type ContractorStatus string

const (
	ContractorStatusPending   ContractorStatus = "pending"
	ContractorStatusApproved  ContractorStatus = "approved"
	ContractorStatusSuspended ContractorStatus = "suspended"
	ContractorStatusRejected  ContractorStatus = "rejected"
)

// ValidContractorStatus reports whether s is a known moderation state.
func ValidContractorStatus(s ContractorStatus) bool {
	switch s {
	case ContractorStatusPending, ContractorStatusApproved, ContractorStatusSuspended, ContractorStatusRejected:
		return true
	}
	return false
}

// ContractorProfile is the business-facing record for a contractor, 1:1 with
// a Profile. AvgRating and TotalReviews are derived fields recomputed inside
// the review-submission transaction; they must equal mean/count of the
// contractor's Review rows after every review write.
type ContractorProfile struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID        `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	BusinessName    string           `gorm:"size:200;not null" json:"business_name"`
	Bio             *string          `gorm:"type:text" json:"bio,omitempty"`
	YearsExperience *int             `json:"years_experience,omitempty"`
	LicenseNumber   *string          `gorm:"size:100" json:"license_number,omitempty"`
	City            *string          `gorm:"size:100" json:"city,omitempty"`
	State           *string          `gorm:"size:100" json:"state,omitempty"`
	Latitude        *float64         `json:"latitude,omitempty"`
	Longitude       *float64         `json:"longitude,omitempty"`
	HourlyRate      *float64         `json:"hourly_rate,omitempty"`
	MinProjectSize  *float64         `json:"min_project_size,omitempty"`
	ServiceAreas    pq.StringArray   `gorm:"type:text[]" json:"service_areas,omitempty"`
	Status          ContractorStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AvgRating       float64          `gorm:"default:0" json:"avg_rating"`
	TotalReviews    int              `gorm:"default:0" json:"total_reviews"`
	TotalJobs       int              `gorm:"default:0" json:"total_jobs"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	User     *Profile            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Services []ContractorService `gorm:"foreignKey:ContractorID" json:"services,omitempty"`
}

func (ContractorProfile) TableName() string {
	return "contractor_profiles"
}

func (c *ContractorProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// ContractorDTO is the flattened listing/detail shape: profile identity
// fields joined in, services expanded to category names.
type ContractorDTO struct {
	ID              uuid.UUID        `json:"id"`
	BusinessName    string           `json:"business_name"`
	FullName        string           `json:"full_name,omitempty"`
	Email           string           `json:"email,omitempty"`
	Phone           *string          `json:"phone,omitempty"`
	AvatarURL       *string          `json:"avatar_url,omitempty"`
	Bio             *string          `json:"bio,omitempty"`
	YearsExperience *int             `json:"years_experience,omitempty"`
	City            *string          `json:"city,omitempty"`
	State           *string          `json:"state,omitempty"`
	HourlyRate      *float64         `json:"hourly_rate,omitempty"`
	ServiceAreas    []string         `json:"service_areas,omitempty"`
	Status          ContractorStatus `json:"status"`
	AvgRating       float64          `json:"avg_rating"`
	TotalReviews    int              `json:"total_reviews"`
	TotalJobs       int              `json:"total_jobs"`
	Categories      []string         `json:"categories,omitempty"`
	DistanceKM      *float64         `json:"distance_km,omitempty"`
}

// ToDTO flattens a preloaded ContractorProfile.
func (c *ContractorProfile) ToDTO() ContractorDTO {
	dto := ContractorDTO{
		ID:              c.ID,
		BusinessName:    c.BusinessName,
		Bio:             c.Bio,
		YearsExperience: c.YearsExperience,
		City:            c.City,
		State:           c.State,
		HourlyRate:      c.HourlyRate,
		ServiceAreas:    []string(c.ServiceAreas),
		Status:          c.Status,
		AvgRating:       c.AvgRating,
		TotalReviews:    c.TotalReviews,
		TotalJobs:       c.TotalJobs,
	}

	if c.User != nil {
		dto.FullName = c.User.FullName
		dto.Email = c.User.Email
		dto.Phone = c.User.Phone
		dto.AvatarURL = c.User.AvatarURL
	}

	for _, s := range c.Services {
		if s.Category != nil {
			dto.Categories = append(dto.Categories, s.Category.Name)
		}
	}

	return dto
}
