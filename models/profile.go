// models/profile.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserType distinguishes the two sides of the marketplace plus admins.
type UserType string

const (
	UserTypeCustomer   UserType = "customer"
	UserTypeContractor UserType = "contractor"
	UserTypeAdmin      UserType = "admin"
)

// Profile is the identity record created at sign-up. One profile per
// identity; user_type is set once during onboarding and never changes
// through the normal flow.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Phone        *string   `gorm:"size:20" json:"phone,omitempty"`
	AvatarURL    *string   `gorm:"size:500" json:"avatar_url,omitempty"`
	UserType     UserType  `gorm:"size:20;not null;default:'customer'" json:"user_type"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// ValidUserType reports whether t is one of the onboarding choices.
// Admin accounts are provisioned out of band, never via /register.
func ValidUserType(t UserType) bool {
	return t == UserTypeCustomer || t == UserTypeContractor
}
