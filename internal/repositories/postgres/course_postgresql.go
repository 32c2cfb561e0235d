package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/cache"
	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cacheManager,
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (r *CoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *CoursePostgreSQL) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if err := r.getDB(tx).WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID with caching
func (r *CoursePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course

	err := r.cacheManager.Course.CacheOrExecute(ctx, cache.CourseKey(id), &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourse models.Course
		if err := r.getDB(tx).WithContext(ctx).First(&dbCourse, id).Error; err != nil {
			return nil, fmt.Errorf("failed to get course: %w", err)
		}
		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}

	return &course, nil
}

// Update writes every editable column, including zero values
func (r *CoursePostgreSQL) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.Course{ID: course.ID}).
		Select("title", "platform", "instructor", "description", "category", "job_role",
			"level", "duration", "is_premium", "price", "payment_details", "skills",
			"thumbnail_url", "videos", "documents", "course_url", "status").
		Updates(course)
	if result.Error != nil {
		return fmt.Errorf("failed to update course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update course: %w", gorm.ErrRecordNotFound)
	}

	cache.InvalidateCourseCache(ctx, r.cacheManager, course.ID)
	return nil
}

func (r *CoursePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := r.getDB(tx).WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete course: %w", gorm.ErrRecordNotFound)
	}

	cache.InvalidateCourseCache(ctx, r.cacheManager, id)
	return nil
}

func (r *CoursePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.CourseWithStats, int64, error) {
	db := r.getDB(tx).WithContext(ctx)

	query := r.helpers.ApplyCourseFilters(db.Model(&models.Course{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	var courses []models.Course
	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&courses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	counts, err := r.approvedCounts(ctx, db, courses)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*models.CourseWithStats, len(courses))
	for i := range courses {
		result[i] = &models.CourseWithStats{
			Course:          courses[i],
			EnrollmentCount: counts[courses[i].ID],
		}
	}

	return result, total, nil
}

func (r *CoursePostgreSQL) approvedCounts(ctx context.Context, db *gorm.DB, courses []models.Course) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(courses))
	if len(courses) == 0 {
		return counts, nil
	}

	ids := make([]uint, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}

	var rows []struct {
		CourseID uint
		Count    int64
	}
	err := db.WithContext(ctx).
		Model(&models.CourseEnrollment{}).
		Select("course_id, COUNT(*) AS count").
		Where("course_id IN ? AND status = ?", ids, models.EnrollmentApproved).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}

	for _, row := range rows {
		counts[row.CourseID] = row.Count
	}
	return counts, nil
}

// CountApprovedEnrollments counts approved enrollments with caching
func (r *CoursePostgreSQL) CountApprovedEnrollments(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	var count int64

	err := r.cacheManager.Stats.CacheOrExecute(ctx, cache.CourseStatsKey(courseID), &count, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var n int64
		err := r.getDB(tx).WithContext(ctx).
			Model(&models.CourseEnrollment{}).
			Where("course_id = ? AND status = ?", courseID, models.EnrollmentApproved).
			Count(&n).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count enrollments: %w", err)
		}
		return n, nil
	})

	return count, err
}
