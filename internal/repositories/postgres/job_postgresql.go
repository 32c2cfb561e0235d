package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
)

type JobPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewJobPostgreSQL(db *gorm.DB) repositories.JobRepository {
	return &JobPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *JobPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *JobPostgreSQL) Create(ctx context.Context, tx *gorm.DB, job *models.Job) error {
	if err := r.getDB(tx).WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *JobPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.getDB(tx).WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

func (r *JobPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.JobFilters) ([]*models.Job, int64, error) {
	query := r.helpers.ApplyJobFilters(r.getDB(tx).WithContext(ctx).Model(&models.Job{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	var jobs []*models.Job
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&jobs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, total, nil
}

func (r *JobPostgreSQL) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.JobStatus) error {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to update job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update job status: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

type JobApplicationPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewJobApplicationPostgreSQL(db *gorm.DB) repositories.JobApplicationRepository {
	return &JobApplicationPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *JobApplicationPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *JobApplicationPostgreSQL) Create(ctx context.Context, tx *gorm.DB, application *models.JobApplication) error {
	if err := r.getDB(tx).WithContext(ctx).Create(application).Error; err != nil {
		return fmt.Errorf("failed to create job application: %w", err)
	}
	return nil
}

func (r *JobApplicationPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.JobApplication, error) {
	var application models.JobApplication
	if err := r.getDB(tx).WithContext(ctx).Preload("Job").First(&application, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get job application: %w", err)
	}
	return &application, nil
}

func (r *JobApplicationPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, jobID uint, applicantID string) (bool, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check job application: %w", err)
	}
	return count > 0, nil
}

func (r *JobApplicationPostgreSQL) ListByApplicant(ctx context.Context, tx *gorm.DB, applicantID string, filters repositories.ListFilters) ([]*models.JobApplication, error) {
	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "applied_at"
	}
	query := r.getDB(tx).WithContext(ctx).Preload("Job").Where("applicant_id = ?", applicantID)
	query = r.helpers.ApplyPaginationAndSort(query, sortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var applications []*models.JobApplication
	if err := query.Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}
	return applications, nil
}

func (r *JobApplicationPostgreSQL) ListByJob(ctx context.Context, tx *gorm.DB, jobID uint, filters repositories.ListFilters) ([]*models.JobApplication, error) {
	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "match_score"
	}
	query := r.getDB(tx).WithContext(ctx).Preload("Applicant").Where("job_id = ?", jobID)
	query = r.helpers.ApplyPaginationAndSort(query, sortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var applications []*models.JobApplication
	if err := query.Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}
	return applications, nil
}

func (r *JobApplicationPostgreSQL) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ApplicationStatus) error {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to update application status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update application status: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *JobApplicationPostgreSQL) StatsByApplicant(ctx context.Context, tx *gorm.DB, applicantID string) (*repositories.ApplicationStats, error) {
	var stats repositories.ApplicationStats
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.JobApplication{}).
		Select("COUNT(*) AS total_applications, COALESCE(AVG(match_score), 0) AS average_match_score").
		Where("applicant_id = ?", applicantID).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get application stats: %w", err)
	}
	return &stats, nil
}
