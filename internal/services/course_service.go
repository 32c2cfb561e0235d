package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/validator"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type courseService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest, creatorID string) (*models.Course, error) {
	s.logger.Info("Creating course", "creator_id", creatorID, "title", req.Title)

	if errs := s.validator.Business().ValidateCourseCreate(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	course := &models.Course{
		Title:          req.Title,
		Platform:       req.Platform,
		Instructor:     req.Instructor,
		Description:    req.Description,
		Category:       req.Category,
		JobRole:        req.JobRole,
		Level:          req.Level,
		Duration:       req.Duration,
		IsPremium:      req.IsPremium,
		Price:          req.Price,
		PaymentDetails: req.PaymentDetails,
		Skills:         req.Skills,
		ThumbnailURL:   req.ThumbnailURL,
		Videos:         req.Videos,
		Documents:      req.Documents,
		CourseURL:      req.CourseURL,
		Status:         models.CourseActive,
		CreatorID:      creatorID,
	}
	if !course.IsPremium {
		course.Price = 0
	}

	if err := s.repo.Course().Create(ctx, s.db, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID)
	return course, nil
}

func (s *courseService) Get(ctx context.Context, id uint, userID string) (*CourseResponse, error) {
	course, err := s.repo.Course().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	count, err := s.repo.Course().CountApprovedEnrollments(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}

	return &CourseResponse{
		Course:          course,
		EnrollmentCount: count,
		IsCreator:       course.IsOwnedBy(userID),
	}, nil
}

func (s *courseService) Update(ctx context.Context, id uint, req *UpdateCourseRequest, userID string) (*models.Course, error) {
	course, err := loadOwnedCourse(ctx, s.repo, s.db, id, userID, "update")
	if err != nil {
		return nil, err
	}

	if errs := s.validator.Business().ValidateCourseUpdate(req, course); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	applyCourseUpdate(course, req)

	if err := s.repo.Course().Update(ctx, s.db, course); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.logger.Info("Course updated", "course_id", id, "user_id", userID)
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id uint, userID string) error {
	if _, err := loadOwnedCourse(ctx, s.repo, s.db, id, userID, "delete"); err != nil {
		return err
	}

	if err := s.repo.Course().Delete(ctx, s.db, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info("Course deleted", "course_id", id, "user_id", userID)
	return nil
}

// List returns the active catalogue
func (s *courseService) List(ctx context.Context, filters CourseListFilters) (*CourseListResponse, error) {
	limit, offset := normalizePage(filters.Limit, filters.Offset)
	active := models.CourseActive

	repoFilters := repositories.CourseFilters{
		Status:    &active,
		IsPremium: filters.IsPremium,
		Limit:     limit,
		Offset:    offset,
	}
	if filters.Category != "" {
		repoFilters.Category = &filters.Category
	}
	if filters.JobRole != "" {
		repoFilters.JobRole = &filters.JobRole
	}
	if filters.Level != "" {
		level := models.CourseLevel(filters.Level)
		repoFilters.Level = &level
	}

	courses, total, err := s.repo.Course().List(ctx, s.db, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return &CourseListResponse{
		Courses: courses,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// ListMine returns every course the user created, active or not
func (s *courseService) ListMine(ctx context.Context, creatorID string) ([]*models.CourseWithStats, error) {
	courses, _, err := s.repo.Course().List(ctx, s.db, repositories.CourseFilters{CreatorID: &creatorID})
	if err != nil {
		return nil, fmt.Errorf("failed to list created courses: %w", err)
	}
	return courses, nil
}

func applyCourseUpdate(course *models.Course, req *UpdateCourseRequest) {
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Platform != nil {
		course.Platform = *req.Platform
	}
	if req.Instructor != nil {
		course.Instructor = *req.Instructor
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.JobRole != nil {
		course.JobRole = *req.JobRole
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.IsPremium != nil {
		course.IsPremium = *req.IsPremium
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.PaymentDetails != nil {
		course.PaymentDetails = req.PaymentDetails
	}
	if req.Skills != nil {
		course.Skills = req.Skills
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = req.ThumbnailURL
	}
	if req.Videos != nil {
		course.Videos = req.Videos
	}
	if req.Documents != nil {
		course.Documents = req.Documents
	}
	if req.CourseURL != nil {
		course.CourseURL = req.CourseURL
	}
	if req.Status != nil {
		course.Status = *req.Status
	}
	if !course.IsPremium {
		course.Price = 0
	}
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
