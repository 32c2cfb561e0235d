package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/cache"
	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
)

// ===== VOICE INTERVIEWS =====

type VoiceInterviewPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewVoiceInterviewPostgreSQL(db *gorm.DB) repositories.VoiceInterviewRepository {
	return &VoiceInterviewPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *VoiceInterviewPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *VoiceInterviewPostgreSQL) Create(ctx context.Context, tx *gorm.DB, interview *models.VoiceInterview) error {
	if err := r.getDB(tx).WithContext(ctx).Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create voice interview: %w", err)
	}
	return nil
}

func (r *VoiceInterviewPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.VoiceInterview, error) {
	var interview models.VoiceInterview
	if err := r.getDB(tx).WithContext(ctx).First(&interview, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get voice interview: %w", err)
	}
	return &interview, nil
}

func (r *VoiceInterviewPostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID string, filters repositories.ListFilters) ([]*models.VoiceInterview, error) {
	query := r.getDB(tx).WithContext(ctx).Where("user_id = ?", userID)
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var interviews []*models.VoiceInterview
	if err := query.Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list voice interviews: %w", err)
	}
	return interviews, nil
}

func (r *VoiceInterviewPostgreSQL) SaveResponses(ctx context.Context, tx *gorm.DB, interview *models.VoiceInterview) error {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.VoiceInterview{}).
		Where("id = ? AND status = ?", interview.ID, models.InterviewInProgress).
		Updates(map[string]interface{}{
			"responses":  interview.Responses,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save interview responses: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to save interview responses: %w", repositories.ErrConditionFailed)
	}
	return nil
}

func (r *VoiceInterviewPostgreSQL) Complete(ctx context.Context, tx *gorm.DB, interview *models.VoiceInterview) error {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.VoiceInterview{}).
		Where("id = ? AND status = ?", interview.ID, models.InterviewInProgress).
		Updates(map[string]interface{}{
			"status":        models.InterviewCompleted,
			"overall_score": interview.OverallScore,
			"feedback":      interview.Feedback,
			"completed_at":  interview.CompletedAt,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to complete interview: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to complete interview: %w", repositories.ErrConditionFailed)
	}
	return nil
}

func (r *VoiceInterviewPostgreSQL) StatsByUser(ctx context.Context, tx *gorm.DB, userID string) (*repositories.InterviewStats, error) {
	var stats repositories.InterviewStats
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.VoiceInterview{}).
		Select(`COUNT(*) AS total_interviews,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed_interviews,
			COALESCE(AVG(overall_score), 0) AS average_score`, models.InterviewCompleted).
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get interview stats: %w", err)
	}
	return &stats, nil
}

// ===== INDUSTRY INSIGHTS =====

type IndustryInsightPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewIndustryInsightPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.IndustryInsightRepository {
	return &IndustryInsightPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (r *IndustryInsightPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// GetByIndustry retrieves an insight with caching
func (r *IndustryInsightPostgreSQL) GetByIndustry(ctx context.Context, tx *gorm.DB, industry string) (*models.IndustryInsight, error) {
	var insight models.IndustryInsight

	err := r.cacheManager.Insight.CacheOrExecute(ctx, cache.InsightKey(industry), &insight, cache.InsightCacheConfig.TTL, func() (interface{}, error) {
		var dbInsight models.IndustryInsight
		if err := r.getDB(tx).WithContext(ctx).Where("industry = ?", industry).First(&dbInsight).Error; err != nil {
			return nil, fmt.Errorf("failed to get industry insight: %w", err)
		}
		return &dbInsight, nil
	})
	if err != nil {
		return nil, err
	}

	return &insight, nil
}

func (r *IndustryInsightPostgreSQL) Create(ctx context.Context, tx *gorm.DB, insight *models.IndustryInsight) error {
	if err := r.getDB(tx).WithContext(ctx).Create(insight).Error; err != nil {
		return fmt.Errorf("failed to create industry insight: %w", err)
	}
	cache.InvalidateInsightCache(ctx, r.cacheManager, insight.Industry)
	return nil
}

func (r *IndustryInsightPostgreSQL) Update(ctx context.Context, tx *gorm.DB, insight *models.IndustryInsight) error {
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.IndustryInsight{ID: insight.ID}).
		Select("salary_ranges", "growth_rate", "demand_level", "top_skills", "market_outlook",
			"key_trends", "recommended_skills", "last_updated", "next_update").
		Updates(insight).Error
	if err != nil {
		return fmt.Errorf("failed to update industry insight: %w", err)
	}
	cache.InvalidateInsightCache(ctx, r.cacheManager, insight.Industry)
	return nil
}

// ===== COVER LETTERS =====

type CoverLetterPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewCoverLetterPostgreSQL(db *gorm.DB) repositories.CoverLetterRepository {
	return &CoverLetterPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *CoverLetterPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *CoverLetterPostgreSQL) Create(ctx context.Context, tx *gorm.DB, letter *models.CoverLetter) error {
	if err := r.getDB(tx).WithContext(ctx).Create(letter).Error; err != nil {
		return fmt.Errorf("failed to create cover letter: %w", err)
	}
	return nil
}

func (r *CoverLetterPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.CoverLetter, error) {
	var letter models.CoverLetter
	if err := r.getDB(tx).WithContext(ctx).First(&letter, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get cover letter: %w", err)
	}
	return &letter, nil
}

func (r *CoverLetterPostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID string, filters repositories.ListFilters) ([]*models.CoverLetter, error) {
	query := r.getDB(tx).WithContext(ctx).Where("user_id = ?", userID)
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var letters []*models.CoverLetter
	if err := query.Find(&letters).Error; err != nil {
		return nil, fmt.Errorf("failed to list cover letters: %w", err)
	}
	return letters, nil
}

func (r *CoverLetterPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := r.getDB(tx).WithContext(ctx).Delete(&models.CoverLetter{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete cover letter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete cover letter: %w", gorm.ErrRecordNotFound)
	}
	return nil
}
