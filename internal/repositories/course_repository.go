package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/models"
)

type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	Update(ctx context.Context, tx *gorm.DB, course *models.Course) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// List returns courses with their approved enrollment counts
	List(ctx context.Context, tx *gorm.DB, filters CourseFilters) ([]*models.CourseWithStats, int64, error)
	CountApprovedEnrollments(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, enrollment *models.CourseEnrollment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.CourseEnrollment, error)
	GetByCourseAndUser(ctx context.Context, tx *gorm.DB, courseID uint, userID string) (*models.CourseEnrollment, error)

	// UpdateDecision persists status, approval fields and notes
	UpdateDecision(ctx context.Context, tx *gorm.DB, enrollment *models.CourseEnrollment) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	ListByUser(ctx context.Context, tx *gorm.DB, userID string, filters EnrollmentFilters) ([]*models.CourseEnrollment, error)
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters EnrollmentFilters) ([]*models.CourseEnrollment, error)
	ListPendingForCreator(ctx context.Context, tx *gorm.DB, creatorID string) ([]*models.CourseEnrollment, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID string) (*EnrollmentCounts, error)

	// InvalidateStats drops cached course stats; call after commit
	InvalidateStats(ctx context.Context, courseID uint)
}

// EnrollmentHistoryRepository is append-only
type EnrollmentHistoryRepository interface {
	Append(ctx context.Context, tx *gorm.DB, entry *models.EnrollmentHistory) error
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters ListFilters) ([]*models.EnrollmentHistory, error)
}
