// models/category.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceCategory is reference data (Plumbing, Electrical, ...). Seeded at
// startup; read-only from the workflow's perspective.
type ServiceCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ServiceCategory) TableName() string {
	return "service_categories"
}

func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// ContractorService declares that a contractor offers work in a category.
// Uniqueness of (contractor_id, category_id) is expected; duplicates are
// prevented by pre-checking existing rows before insert.
type ContractorService struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContractorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"contractor_id"`
	CategoryID    uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	PriceRangeMin *float64  `json:"price_range_min,omitempty"`
	PriceRangeMax *float64  `json:"price_range_max,omitempty"`
	Description   *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	Contractor *ContractorProfile `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	Category   *ServiceCategory   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (ContractorService) TableName() string {
	return "contractor_services"
}

func (s *ContractorService) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
