package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/homepro/config"
	"p9e.in/homepro/models"
)

// Sentinel errors mapped to HTTP status codes at the handler boundary.
var (
	ErrNotFound          = errors.New("record not found")
	ErrNotOwner          = errors.New("caller does not own this record")
	ErrJobNotOpen        = errors.New("job is no longer accepting this action")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrDuplicateQuote    = errors.New("contractor already quoted this job")
	ErrQuoteNotPending   = errors.New("quote is not pending")
	ErrNoContractor      = errors.New("no contractor profile for this user")
)

// JobService handles the job/quote lifecycle
type JobService struct {
	db *gorm.DB
}

// NewJobService creates a new JobService instance
func NewJobService() *JobService {
	return &JobService{
		db: config.DB,
	}
}

// ============================================================================
// Jobs
// ============================================================================

type CreateJobRequest struct {
	CategoryID    uuid.UUID      `json:"category_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Location      *string        `json:"location"`
	BudgetMin     *float64       `json:"budget_min"`
	BudgetMax     *float64       `json:"budget_max"`
	PreferredDate *time.Time     `json:"preferred_date"`
	Urgency       models.Urgency `json:"urgency"`
	Photos        []string       `json:"photos"`
}

// CreateJob posts a new job request in status open.
func (s *JobService) CreateJob(customerID uuid.UUID, req CreateJobRequest) (*models.JobRequest, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Description) == "" {
		return nil, errors.New("title and description are required")
	}
	if req.CategoryID == uuid.Nil {
		return nil, errors.New("category_id is required")
	}
	var category models.ServiceCategory
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		return nil, fmt.Errorf("unknown category: %w", ErrNotFound)
	}
	if req.Urgency == "" {
		req.Urgency = models.UrgencyMedium
	}
	if !models.ValidUrgency(req.Urgency) {
		return nil, errors.New("urgency must be one of low, medium, high, emergency")
	}

	job := &models.JobRequest{
		CustomerID:  customerID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Location:    req.Location,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Urgency:     req.Urgency,
		Status:      models.JobStatusOpen,
	}
	job.PreferredDate = req.PreferredDate
	if photos, err := models.PhotosJSON(req.Photos); err == nil {
		job.Photos = photos
	}

	if err := s.db.Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	log.Printf("✅ Created job %s (%s) by customer %s", job.ID, job.Title, customerID)
	return job, nil
}

// ListOpenJobs returns the contractor-facing board: jobs still accepting
// quotes, optionally restricted to categories and excluding jobs the caller
// already quoted.
func (s *JobService) ListOpenJobs(categoryIDs []uuid.UUID, excludeJobIDs []uuid.UUID) ([]models.JobDTO, error) {
	q := s.db.
		Preload("Customer").
		Preload("Category").
		Preload("Quotes").
		Where("status IN ?", []models.JobStatus{models.JobStatusOpen, models.JobStatusQuoted})
	if len(categoryIDs) > 0 {
		q = q.Where("category_id IN ?", categoryIDs)
	}
	if len(excludeJobIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeJobIDs)
	}

	var jobs []models.JobRequest
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	out := make([]models.JobDTO, len(jobs))
	for i := range jobs {
		out[i] = jobs[i].ToDTO()
	}
	return out, nil
}

// ListCustomerJobs returns the caller's posted jobs with quotes attached.
func (s *JobService) ListCustomerJobs(customerID uuid.UUID) ([]models.JobRequest, error) {
	var jobs []models.JobRequest
	err := s.db.
		Preload("Category").
		Preload("Quotes").
		Preload("Quotes.Contractor").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// GetJob returns one job with its relations preloaded.
func (s *JobService) GetJob(jobID uuid.UUID) (*models.JobRequest, error) {
	var job models.JobRequest
	err := s.db.
		Preload("Customer").
		Preload("Category").
		Preload("Quotes").
		Preload("Quotes.Contractor").
		First(&job, "id = ?", jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// CancelJob cancels the caller's job. Cancellation is allowed while the job
// is still open or merely quoted; once work is assigned it must run to
// completion. Pending quotes on a cancelled job keep their status.
func (s *JobService) CancelJob(customerID, jobID uuid.UUID) (*models.JobRequest, error) {
	var job models.JobRequest
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrNotFound
	}
	if job.CustomerID != customerID {
		return nil, ErrNotOwner
	}
	if !models.CanTransition(job.Status, models.JobStatusCancelled) {
		return nil, fmt.Errorf("cannot cancel a %s job: %w", job.Status, ErrInvalidTransition)
	}
	if err := s.db.Model(&job).Update("status", models.JobStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel job: %w", err)
	}
	job.Status = models.JobStatusCancelled
	log.Printf("✅ Cancelled job %s by customer %s", job.ID, customerID)
	return &job, nil
}

// AdvanceStatus moves a job one step along the lifecycle. Only in_progress
// and completed may be requested here; assignment and cancellation go through
// their own operations, so a forged status body cannot assign a job that has
// no accepted quote. The transition table is enforced on top of that
// regardless of what the client claims the current state is. The customer
// owner or the accepted contractor may advance.
func (s *JobService) AdvanceStatus(callerID, jobID uuid.UUID, to models.JobStatus) (*models.JobRequest, error) {
	if !models.ValidAdvanceTarget(to) {
		return nil, fmt.Errorf("status %s cannot be requested directly: %w", to, ErrInvalidTransition)
	}

	var job models.JobRequest
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrNotFound
	}

	if job.CustomerID != callerID {
		contractor, err := s.contractorForUser(callerID)
		if err != nil {
			return nil, ErrNotOwner
		}
		var accepted int64
		s.db.Model(&models.Quote{}).
			Where("job_request_id = ? AND contractor_id = ? AND status = ?", jobID, contractor.ID, models.QuoteStatusAccepted).
			Count(&accepted)
		if accepted == 0 {
			return nil, ErrNotOwner
		}
	}

	if !models.CanTransition(job.Status, to) {
		return nil, fmt.Errorf("cannot move job from %s to %s: %w", job.Status, to, ErrInvalidTransition)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&job).Update("status", to).Error; err != nil {
			return err
		}
		// completed jobs bump the contractor's lifetime counter
		if to == models.JobStatusCompleted {
			var quote models.Quote
			if err := tx.Where("job_request_id = ? AND status = ?", jobID, models.QuoteStatusAccepted).First(&quote).Error; err == nil {
				if err := tx.Model(&models.ContractorProfile{}).
					Where("id = ?", quote.ContractorID).
					UpdateColumn("total_jobs", gorm.Expr("total_jobs + 1")).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	job.Status = to
	return &job, nil
}

// ============================================================================
// Quotes
// ============================================================================

type SubmitQuoteRequest struct {
	QuotedPrice       float64 `json:"quoted_price"`
	EstimatedDuration *string `json:"estimated_duration"`
	Message           *string `json:"message"`
}

// SubmitQuote files a bid on a job that is still accepting quotes. One quote
// per (job, contractor); duplicates are rejected before insert.
func (s *JobService) SubmitQuote(contractorUserID, jobID uuid.UUID, req SubmitQuoteRequest) (*models.Quote, error) {
	if req.QuotedPrice <= 0 {
		return nil, errors.New("quoted_price must be positive")
	}

	contractor, err := s.contractorForUser(contractorUserID)
	if err != nil {
		return nil, err
	}

	var job models.JobRequest
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrNotFound
	}
	if job.Status != models.JobStatusOpen && job.Status != models.JobStatusQuoted {
		return nil, ErrJobNotOpen
	}

	var existing int64
	s.db.Model(&models.Quote{}).
		Where("job_request_id = ? AND contractor_id = ?", jobID, contractor.ID).
		Count(&existing)
	if existing > 0 {
		return nil, ErrDuplicateQuote
	}

	quote := &models.Quote{
		JobRequestID:      jobID,
		ContractorID:      contractor.ID,
		QuotedPrice:       req.QuotedPrice,
		EstimatedDuration: req.EstimatedDuration,
		Message:           req.Message,
		Status:            models.QuoteStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quote).Error; err != nil {
			return err
		}
		if job.Status == models.JobStatusOpen {
			if err := tx.Model(&job).Update("status", models.JobStatusQuoted).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit quote: %w", err)
	}

	notifyUser(job.CustomerID, models.NotificationQuoteReceived,
		"New quote received",
		fmt.Sprintf("%s quoted $%.2f on \"%s\"", contractor.BusinessName, req.QuotedPrice, job.Title),
		&job.ID,
		map[string]string{"quote_id": quote.ID.String(), "contractor_id": contractor.ID.String()})

	log.Printf("✅ Quote %s submitted on job %s by contractor %s", quote.ID, jobID, contractor.ID)
	return quote, nil
}

// ListJobQuotes returns all quotes on the caller's job, contractor identity
// joined in for the comparison view.
func (s *JobService) ListJobQuotes(customerID, jobID uuid.UUID) ([]models.QuoteDTO, error) {
	var job models.JobRequest
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrNotFound
	}
	if job.CustomerID != customerID {
		return nil, ErrNotOwner
	}

	var quotes []models.Quote
	err := s.db.
		Preload("Contractor").
		Where("job_request_id = ?", jobID).
		Order("created_at ASC").
		Find(&quotes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	out := make([]models.QuoteDTO, len(quotes))
	for i := range quotes {
		out[i] = quotes[i].ToDTO()
	}
	return out, nil
}

// ListContractorQuotes returns the caller's own quotes with job context.
func (s *JobService) ListContractorQuotes(contractorUserID uuid.UUID) ([]models.Quote, error) {
	contractor, err := s.contractorForUser(contractorUserID)
	if err != nil {
		return nil, err
	}
	var quotes []models.Quote
	err = s.db.
		Preload("Job").
		Preload("Job.Category").
		Where("contractor_id = ?", contractor.ID).
		Order("created_at DESC").
		Find(&quotes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return quotes, nil
}

// WithdrawQuote retracts the caller's own pending quote.
func (s *JobService) WithdrawQuote(contractorUserID, quoteID uuid.UUID) (*models.Quote, error) {
	contractor, err := s.contractorForUser(contractorUserID)
	if err != nil {
		return nil, err
	}
	var quote models.Quote
	if err := s.db.First(&quote, "id = ?", quoteID).Error; err != nil {
		return nil, ErrNotFound
	}
	if quote.ContractorID != contractor.ID {
		return nil, ErrNotOwner
	}
	if quote.Status != models.QuoteStatusPending {
		return nil, ErrQuoteNotPending
	}
	if err := s.db.Model(&quote).Update("status", models.QuoteStatusWithdrawn).Error; err != nil {
		return nil, fmt.Errorf("failed to withdraw quote: %w", err)
	}
	quote.Status = models.QuoteStatusWithdrawn
	return &quote, nil
}

// AcceptQuote is the pivotal state change: the chosen quote becomes accepted
// (optionally with a negotiated final price), the job moves to assigned, and
// every other still-pending quote on the job is rejected. All three writes
// commit or none do.
func (s *JobService) AcceptQuote(customerID, jobID, quoteID uuid.UUID, finalPrice *float64) (*models.Quote, error) {
	var job models.JobRequest
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrNotFound
	}
	if job.CustomerID != customerID {
		return nil, ErrNotOwner
	}
	if !models.CanTransition(job.Status, models.JobStatusAssigned) {
		return nil, fmt.Errorf("cannot accept a quote on a %s job: %w", job.Status, ErrInvalidTransition)
	}

	var quote models.Quote
	if err := s.db.First(&quote, "id = ? AND job_request_id = ?", quoteID, jobID).Error; err != nil {
		return nil, ErrNotFound
	}
	if quote.Status != models.QuoteStatusPending {
		return nil, ErrQuoteNotPending
	}

	type rejectedQuote struct {
		quoteID      uuid.UUID
		contractorID uuid.UUID
	}
	var rejected []rejectedQuote
	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": models.QuoteStatusAccepted}
		if finalPrice != nil && *finalPrice > 0 {
			updates["quoted_price"] = *finalPrice
		}
		if err := tx.Model(&quote).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to accept quote: %w", err)
		}

		if err := tx.Model(&job).Update("status", models.JobStatusAssigned).Error; err != nil {
			return fmt.Errorf("failed to assign job: %w", err)
		}

		var all []models.Quote
		if err := tx.Where("job_request_id = ?", jobID).Find(&all).Error; err != nil {
			return err
		}
		loserIDs := QuotesToReject(all, quoteID)
		if len(loserIDs) > 0 {
			if err := tx.Model(&models.Quote{}).
				Where("id IN ?", loserIDs).
				Update("status", models.QuoteStatusRejected).Error; err != nil {
				return fmt.Errorf("failed to reject other quotes: %w", err)
			}
		}
		for _, q := range all {
			for _, id := range loserIDs {
				if q.ID == id {
					rejected = append(rejected, rejectedQuote{quoteID: q.ID, contractorID: q.ContractorID})
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	quote.Status = models.QuoteStatusAccepted
	if finalPrice != nil && *finalPrice > 0 {
		quote.QuotedPrice = *finalPrice
	}

	if winner, err := s.contractorByID(quote.ContractorID); err == nil {
		notifyUser(winner.UserID, models.NotificationQuoteAccepted,
			"Quote accepted",
			fmt.Sprintf("Your quote on \"%s\" was accepted at $%.2f", job.Title, quote.QuotedPrice),
			&job.ID,
			map[string]string{"quote_id": quote.ID.String()})
	}
	for _, rq := range rejected {
		if loser, err := s.contractorByID(rq.contractorID); err == nil {
			notifyUser(loser.UserID, models.NotificationQuoteRejected,
				"Quote not selected",
				fmt.Sprintf("The customer chose another quote for \"%s\"", job.Title),
				&job.ID,
				map[string]string{"quote_id": rq.quoteID.String()})
		}
	}

	log.Printf("✅ Quote %s accepted on job %s; %d competing quotes rejected", quoteID, jobID, len(rejected))
	return &quote, nil
}

// QuotesToReject picks the quotes that lose when one is accepted: every
// other quote on the job that is still pending. Rejected and withdrawn
// quotes keep their status.
func QuotesToReject(quotes []models.Quote, acceptedID uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for _, q := range quotes {
		if q.ID == acceptedID {
			continue
		}
		if q.Status == models.QuoteStatusPending {
			out = append(out, q.ID)
		}
	}
	return out
}

// ============================================================================
// helpers
// ============================================================================

func (s *JobService) contractorForUser(userID uuid.UUID) (*models.ContractorProfile, error) {
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

func (s *JobService) contractorByID(id uuid.UUID) (*models.ContractorProfile, error) {
	var contractor models.ContractorProfile
	if err := s.db.First(&contractor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contractor, nil
}
