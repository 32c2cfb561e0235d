package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/models"
)

type VoiceInterviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, interview *models.VoiceInterview) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.VoiceInterview, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string, filters ListFilters) ([]*models.VoiceInterview, error)

	// SaveResponses is conditional on the interview still being in progress
	SaveResponses(ctx context.Context, tx *gorm.DB, interview *models.VoiceInterview) error
	// Complete is conditional on the interview still being in progress
	Complete(ctx context.Context, tx *gorm.DB, interview *models.VoiceInterview) error
	StatsByUser(ctx context.Context, tx *gorm.DB, userID string) (*InterviewStats, error)
}

type IndustryInsightRepository interface {
	GetByIndustry(ctx context.Context, tx *gorm.DB, industry string) (*models.IndustryInsight, error)
	Create(ctx context.Context, tx *gorm.DB, insight *models.IndustryInsight) error
	Update(ctx context.Context, tx *gorm.DB, insight *models.IndustryInsight) error
}

type CoverLetterRepository interface {
	Create(ctx context.Context, tx *gorm.DB, letter *models.CoverLetter) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.CoverLetter, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string, filters ListFilters) ([]*models.CoverLetter, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}
