package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/events"
	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/validator"
)

type jobService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	scorer    *MatchScorer
	publisher events.EventPublisher
}

func NewJobService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, scorer *MatchScorer, publisher events.EventPublisher) JobService {
	return &jobService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		scorer:    scorer,
		publisher: publisher,
	}
}

func (s *jobService) Create(ctx context.Context, req *CreateJobRequest, posterID string) (*models.Job, error) {
	if errs := s.validator.Business().ValidateJobCreate(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	job := &models.Job{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
		Remote:      req.Remote,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Skills:      req.Skills,
		Experience:  req.Experience,
		Status:      models.JobActive,
		PostedBy:    posterID,
	}
	if job.Type == "" {
		job.Type = models.DefaultJobType
	}
	if job.Remote == "" {
		job.Remote = models.DefaultJobRemote
	}

	if err := s.repo.Job().Create(ctx, s.db, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.Info("Job posted", "job_id", job.ID, "posted_by", posterID)
	return job, nil
}

func (s *jobService) List(ctx context.Context, filters JobListFilters) (*JobListResponse, error) {
	limit, offset := normalizePage(filters.Limit, filters.Offset)
	active := models.JobActive

	repoFilters := repositories.JobFilters{
		Status: &active,
		Limit:  limit,
		Offset: offset,
	}
	if filters.Query != "" {
		repoFilters.Query = &filters.Query
	}
	if filters.Type != "" {
		repoFilters.Type = &filters.Type
	}
	if filters.Remote != "" {
		repoFilters.Remote = &filters.Remote
	}

	jobs, total, err := s.repo.Job().List(ctx, s.db, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return &JobListResponse{Jobs: jobs, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *jobService) ListMine(ctx context.Context, posterID string) ([]*models.Job, error) {
	jobs, _, err := s.repo.Job().List(ctx, s.db, repositories.JobFilters{PostedBy: &posterID})
	if err != nil {
		return nil, fmt.Errorf("failed to list posted jobs: %w", err)
	}
	return jobs, nil
}

func (s *jobService) Close(ctx context.Context, id uint, userID string) error {
	if _, err := s.loadOwnedJob(ctx, id, userID, "close"); err != nil {
		return err
	}

	if err := s.repo.Job().UpdateStatus(ctx, s.db, id, models.JobClosed); err != nil {
		return fmt.Errorf("failed to close job: %w", err)
	}

	s.logger.Info("Job closed", "job_id", id, "user_id", userID)
	return nil
}

// Apply scores the applicant once; the score is stored and never recomputed
func (s *jobService) Apply(ctx context.Context, jobID uint, userID string, req *ApplyJobRequest) (*models.JobApplication, error) {
	if req == nil {
		req = &ApplyJobRequest{}
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	job, err := s.repo.Job().GetByID(ctx, s.db, jobID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job.Status != models.JobActive {
		return nil, ErrJobClosed
	}
	if job.PostedBy == userID {
		return nil, ErrCannotApplyOwnJob
	}

	exists, err := s.repo.JobApplication().Exists(ctx, s.db, jobID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	applicant, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}

	// scored outside any transaction; the generative call can be slow
	score := s.scorer.Score(ctx, applicant, job)

	application := &models.JobApplication{
		JobID:       jobID,
		ApplicantID: userID,
		CoverLetter: optionalString(req.CoverLetter),
		MatchScore:  score,
		Status:      models.ApplicationPending,
		AppliedAt:   time.Now(),
	}
	if err := s.repo.JobApplication().Create(ctx, s.db, application); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.logger.Info("Job application submitted",
		"application_id", application.ID,
		"job_id", jobID,
		"applicant_id", userID,
		"match_score", score)

	events.SafePublish(ctx, s.publisher, s.logger, events.NewEvent(events.JobApplicationSubmitted, map[string]interface{}{
		"application_id": application.ID,
		"job_id":         jobID,
		"applicant_id":   userID,
		"match_score":    score,
	}))

	return application, nil
}

func (s *jobService) ListMyApplications(ctx context.Context, userID string) ([]*models.JobApplication, error) {
	applications, err := s.repo.JobApplication().ListByApplicant(ctx, s.db, userID, repositories.ListFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

func (s *jobService) ListApplications(ctx context.Context, jobID uint, userID string) ([]*models.JobApplication, error) {
	if _, err := s.loadOwnedJob(ctx, jobID, userID, "view_applications"); err != nil {
		return nil, err
	}

	applications, err := s.repo.JobApplication().ListByJob(ctx, s.db, jobID, repositories.ListFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

// UpdateApplicationStatus is restricted to the job's poster
func (s *jobService) UpdateApplicationStatus(ctx context.Context, applicationID uint, userID string, req *ApplicationStatusRequest) (*models.JobApplication, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	application, err := s.repo.JobApplication().GetByID(ctx, s.db, applicationID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if application.Job == nil || application.Job.PostedBy != userID {
		return nil, NewPermissionError(userID, applicationID, "application", "update_status", "not the job poster")
	}

	if err := s.repo.JobApplication().UpdateStatus(ctx, s.db, applicationID, req.Status); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	previous := application.Status
	application.Status = req.Status

	events.SafePublish(ctx, s.publisher, s.logger, events.NewEvent(events.JobApplicationStatusChanged, map[string]interface{}{
		"application_id":  applicationID,
		"job_id":          application.JobID,
		"applicant_id":    application.ApplicantID,
		"previous_status": previous,
		"status":          req.Status,
	}))

	return application, nil
}

func (s *jobService) loadOwnedJob(ctx context.Context, id uint, userID, action string) (*models.Job, error) {
	job, err := s.repo.Job().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job.PostedBy != userID {
		return nil, NewPermissionError(userID, id, "job", action, "not the job poster")
	}
	return job, nil
}
