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

type EnrollmentPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewEnrollmentPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cacheManager,
	}
}

func (r *EnrollmentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create inserts an enrollment. A second row for the same (course, user)
// fails with gorm.ErrDuplicatedKey.
func (r *EnrollmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, enrollment *models.CourseEnrollment) error {
	if err := r.getDB(tx).WithContext(ctx).Create(enrollment).Error; err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	if err := r.getDB(tx).WithContext(ctx).First(&enrollment, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return &enrollment, nil
}

func (r *EnrollmentPostgreSQL) GetByCourseAndUser(ctx context.Context, tx *gorm.DB, courseID uint, userID string) (*models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	err := r.getDB(tx).WithContext(ctx).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		First(&enrollment).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return &enrollment, nil
}

// UpdateDecision only applies to enrollments that are still pending
func (r *EnrollmentPostgreSQL) UpdateDecision(ctx context.Context, tx *gorm.DB, enrollment *models.CourseEnrollment) error {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.CourseEnrollment{}).
		Where("id = ? AND status = ?", enrollment.ID, models.EnrollmentPending).
		Updates(map[string]interface{}{
			"status":      enrollment.Status,
			"approved_at": enrollment.ApprovedAt,
			"approved_by": enrollment.ApprovedBy,
			"notes":       enrollment.Notes,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update enrollment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update enrollment %d: %w", enrollment.ID, repositories.ErrConditionFailed)
	}
	return nil
}

// InvalidateStats drops the cached approved count for a course. Call it
// after the transaction that changed the course's enrollments commits.
func (r *EnrollmentPostgreSQL) InvalidateStats(ctx context.Context, courseID uint) {
	cache.InvalidateEnrollmentStats(ctx, r.cacheManager, courseID)
}

func (r *EnrollmentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := r.getDB(tx).WithContext(ctx).Delete(&models.CourseEnrollment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentPostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID string, filters repositories.EnrollmentFilters) ([]*models.CourseEnrollment, error) {
	query := r.getDB(tx).WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "enrolled_at"
	}
	query = r.helpers.ApplyPaginationAndSort(query, sortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var enrollments []*models.CourseEnrollment
	if err := query.Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (r *EnrollmentPostgreSQL) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters repositories.EnrollmentFilters) ([]*models.CourseEnrollment, error) {
	query := r.getDB(tx).WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "enrolled_at"
	}
	query = r.helpers.ApplyPaginationAndSort(query, sortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var enrollments []*models.CourseEnrollment
	if err := query.Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to list course enrollments: %w", err)
	}
	return enrollments, nil
}

// ListPendingForCreator returns pending enrollments across every course the user created
func (r *EnrollmentPostgreSQL) ListPendingForCreator(ctx context.Context, tx *gorm.DB, creatorID string) ([]*models.CourseEnrollment, error) {
	var enrollments []*models.CourseEnrollment
	err := r.getDB(tx).WithContext(ctx).
		Preload("Course").
		Preload("User").
		Joins("JOIN courses ON courses.id = course_enrollments.course_id").
		Where("courses.creator_id = ? AND courses.deleted_at IS NULL", creatorID).
		Where("course_enrollments.status = ?", models.EnrollmentPending).
		Order("course_enrollments.enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending enrollments: %w", err)
	}
	return enrollments, nil
}

func (r *EnrollmentPostgreSQL) CountByUser(ctx context.Context, tx *gorm.DB, userID string) (*repositories.EnrollmentCounts, error) {
	var rows []struct {
		Status models.EnrollmentStatus
		Count  int64
	}
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.CourseEnrollment{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}

	counts := &repositories.EnrollmentCounts{}
	for _, row := range rows {
		switch row.Status {
		case models.EnrollmentPending:
			counts.Pending = row.Count
		case models.EnrollmentApproved:
			counts.Approved = row.Count
		case models.EnrollmentRejected:
			counts.Rejected = row.Count
		}
	}
	return counts, nil
}

type EnrollmentHistoryPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewEnrollmentHistoryPostgreSQL(db *gorm.DB) repositories.EnrollmentHistoryRepository {
	return &EnrollmentHistoryPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *EnrollmentHistoryPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *EnrollmentHistoryPostgreSQL) Append(ctx context.Context, tx *gorm.DB, entry *models.EnrollmentHistory) error {
	if err := r.getDB(tx).WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append enrollment history: %w", err)
	}
	return nil
}

func (r *EnrollmentHistoryPostgreSQL) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters repositories.ListFilters) ([]*models.EnrollmentHistory, error) {
	query := r.getDB(tx).WithContext(ctx).Where("course_id = ?", courseID)
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var entries []*models.EnrollmentHistory
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list enrollment history: %w", err)
	}
	return entries, nil
}
