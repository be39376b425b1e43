// models/job.go
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobStatus is the lifecycle state of a job request.
type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusQuoted     JobStatus = "quoted"
	JobStatusAssigned   JobStatus = "assigned"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Urgency is how soon the customer needs the work done.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// jobTransitions is the full lifecycle graph. completed and cancelled are
// terminal; cancellation stays available until a quote is accepted, so a job
// that has merely received quotes can still be withdrawn (those quotes are
// left pending, orphaned by the cancellation).
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusOpen:       {JobStatusQuoted, JobStatusAssigned, JobStatusCancelled},
	JobStatusQuoted:     {JobStatusAssigned, JobStatusCancelled},
	JobStatusAssigned:   {JobStatusInProgress},
	JobStatusInProgress: {JobStatusCompleted},
}

// CanTransition reports whether a job may move from one status to another.
// Every mutating path checks this server-side; a replayed or forged request
// cannot skip or reverse states.
func CanTransition(from, to JobStatus) bool {
	for _, next := range jobTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is exposed for s.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// ValidAdvanceTarget reports whether a status may be requested through the
// job status endpoint. Assignment only happens via quote acceptance and
// cancellation has its own operation; neither is reachable here no matter
// what the request body claims.
func ValidAdvanceTarget(to JobStatus) bool {
	return to == JobStatusInProgress || to == JobStatusCompleted
}

// ValidUrgency reports whether u is an accepted urgency level.
func ValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

// JobRequest is a customer's posted job. Never hard-deleted; the only
// terminal exits are completion and cancellation.
type JobRequest struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	CategoryID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Title         string         `gorm:"size:200;not null" json:"title"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Location      *string        `gorm:"size:255" json:"location,omitempty"`
	BudgetMin     *float64       `json:"budget_min,omitempty"`
	BudgetMax     *float64       `json:"budget_max,omitempty"`
	PreferredDate *time.Time     `json:"preferred_date,omitempty"`
	Urgency       Urgency        `gorm:"size:20;not null;default:'medium'" json:"urgency"`
	Status        JobStatus      `gorm:"size:20;not null;default:'open';index" json:"status"`
	Photos        datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"photos"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Customer *Profile         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Category *ServiceCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Quotes   []Quote          `gorm:"foreignKey:JobRequestID" json:"quotes,omitempty"`
}

func (JobRequest) TableName() string {
	return "job_requests"
}

func (j *JobRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return
}

// PhotosJSON encodes a list of image URLs for the Photos column. nil and
// empty both encode as [].
func PhotosJSON(urls []string) (datatypes.JSON, error) {
	if urls == nil {
		urls = []string{}
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// JobDTO is the flattened job shape with category and customer names joined
// in, used on list endpoints.
type JobDTO struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CategoryID    uuid.UUID  `json:"category_id"`
	CategoryName  string     `json:"category_name,omitempty"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	CustomerName  string     `json:"customer_name,omitempty"`
	Location      *string    `json:"location,omitempty"`
	BudgetMin     *float64   `json:"budget_min,omitempty"`
	BudgetMax     *float64   `json:"budget_max,omitempty"`
	PreferredDate *time.Time `json:"preferred_date,omitempty"`
	Urgency       Urgency    `json:"urgency"`
	Status        JobStatus  `json:"status"`
	QuoteCount    int        `json:"quote_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToDTO flattens a preloaded JobRequest.
func (j *JobRequest) ToDTO() JobDTO {
	dto := JobDTO{
		ID:            j.ID,
		Title:         j.Title,
		Description:   j.Description,
		CategoryID:    j.CategoryID,
		CustomerID:    j.CustomerID,
		Location:      j.Location,
		BudgetMin:     j.BudgetMin,
		BudgetMax:     j.BudgetMax,
		PreferredDate: j.PreferredDate,
		Urgency:       j.Urgency,
		Status:        j.Status,
		QuoteCount:    len(j.Quotes),
		CreatedAt:     j.CreatedAt,
	}
	if j.Category != nil {
		dto.CategoryName = j.Category.Name
	}
	if j.Customer != nil {
		dto.CustomerName = j.Customer.FullName
	}
	return dto
}
