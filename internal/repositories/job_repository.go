package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/models"
)

type JobRepository interface {
	Create(ctx context.Context, tx *gorm.DB, job *models.Job) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Job, error)
	List(ctx context.Context, tx *gorm.DB, filters JobFilters) ([]*models.Job, int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.JobStatus) error
}

type JobApplicationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, application *models.JobApplication) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.JobApplication, error)
	Exists(ctx context.Context, tx *gorm.DB, jobID uint, applicantID string) (bool, error)
	ListByApplicant(ctx context.Context, tx *gorm.DB, applicantID string, filters ListFilters) ([]*models.JobApplication, error)
	ListByJob(ctx context.Context, tx *gorm.DB, jobID uint, filters ListFilters) ([]*models.JobApplication, error)

	// UpdateStatus never touches match_score
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ApplicationStatus) error
	StatsByApplicant(ctx context.Context, tx *gorm.DB, applicantID string) (*ApplicationStats, error)
}
