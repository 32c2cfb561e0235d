package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/events"
	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/validator"
)

type enrollmentService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewEnrollmentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, courseID uint, userID string, req *EnrollRequest) (*models.CourseEnrollment, error) {
	if req == nil {
		req = &EnrollRequest{}
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	s.logger.Info("Enrolling user", "course_id", courseID, "user_id", userID)

	var enrollment *models.CourseEnrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := s.repo.Course().GetByID(ctx, tx, courseID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("failed to get course: %w", err)
		}
		if course.Status != models.CourseActive {
			return ErrCourseInactive
		}

		existing, err := s.repo.Enrollment().GetByCourseAndUser(ctx, tx, courseID, userID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to get enrollment: %w", err)
		}

		in := EnrollmentTransitionInput{
			Action:    ActionEnroll,
			IsPremium: course.IsPremium,
		}
		if existing != nil {
			in.Current = &existing.Status
		}

		transition, err := NextEnrollmentState(in)
		if err != nil {
			return err
		}

		if transition.DeleteExisting {
			if err := s.repo.Enrollment().Delete(ctx, tx, existing.ID); err != nil {
				return fmt.Errorf("failed to remove rejected enrollment: %w", err)
			}
		}

		now := time.Now()
		enrollment = &models.CourseEnrollment{
			CourseID:      courseID,
			UserID:        userID,
			Status:        transition.Next,
			PaymentProof:  optionalString(req.PaymentProof),
			TransactionID: optionalString(req.TransactionID),
			PaymentMethod: optionalString(req.PaymentMethod),
			EnrolledAt:    now,
		}
		if transition.SetApproval {
			enrollment.ApprovedAt = &now
		}

		if err := s.repo.Enrollment().Create(ctx, tx, enrollment); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrDuplicateRequest
			}
			return fmt.Errorf("failed to create enrollment: %w", err)
		}

		return s.repo.EnrollmentHistory().Append(ctx, tx, &models.EnrollmentHistory{
			EnrollmentID: enrollment.ID,
			CourseID:     courseID,
			UserID:       userID,
			ActorID:      userID,
			Event:        transition.Event,
			Status:       enrollment.Status,
		})
	})
	if err != nil {
		return nil, err
	}
	s.repo.Enrollment().InvalidateStats(ctx, courseID)

	s.logger.Info("User enrolled",
		"course_id", courseID,
		"user_id", userID,
		"enrollment_id", enrollment.ID,
		"status", enrollment.Status)

	events.SafePublish(ctx, s.publisher, s.logger, events.NewEvent(events.EnrollmentRequested, map[string]interface{}{
		"enrollment_id": enrollment.ID,
		"course_id":     courseID,
		"user_id":       userID,
		"status":        enrollment.Status,
	}))

	return enrollment, nil
}

func (s *enrollmentService) Decide(ctx context.Context, enrollmentID uint, actorID string, req *EnrollmentDecisionRequest) (*models.CourseEnrollment, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	action := ActionApprove
	if req.Status == models.EnrollmentRejected {
		action = ActionReject
	}

	var enrollment *models.CourseEnrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		enrollment, err = s.repo.Enrollment().GetByID(ctx, tx, enrollmentID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrEnrollmentNotFound
			}
			return fmt.Errorf("failed to get enrollment: %w", err)
		}

		course, err := s.repo.Course().GetByID(ctx, tx, enrollment.CourseID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("failed to get course: %w", err)
		}

		transition, err := NextEnrollmentState(EnrollmentTransitionInput{
			Current:        &enrollment.Status,
			Action:         action,
			IsPremium:      course.IsPremium,
			ActorIsCreator: course.IsOwnedBy(actorID),
			Notes:          req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				return NewPermissionError(actorID, enrollmentID, "enrollment", string(action), "only the course creator can review enrollments")
			}
			return err
		}

		enrollment.Status = transition.Next
		if transition.SetApproval {
			now := time.Now()
			enrollment.ApprovedAt = &now
			enrollment.ApprovedBy = &actorID
		}
		if notes := strings.TrimSpace(req.Notes); notes != "" {
			enrollment.Notes = &notes
		}

		if err := s.repo.Enrollment().UpdateDecision(ctx, tx, enrollment); err != nil {
			if errors.Is(err, repositories.ErrConditionFailed) {
				return ErrEnrollmentNotPending
			}
			return fmt.Errorf("failed to update enrollment: %w", err)
		}

		return s.repo.EnrollmentHistory().Append(ctx, tx, &models.EnrollmentHistory{
			EnrollmentID: enrollment.ID,
			CourseID:     enrollment.CourseID,
			UserID:       enrollment.UserID,
			ActorID:      actorID,
			Event:        transition.Event,
			Status:       enrollment.Status,
			Notes:        enrollment.Notes,
		})
	})
	if err != nil {
		return nil, err
	}
	s.repo.Enrollment().InvalidateStats(ctx, enrollment.CourseID)

	s.logger.Info("Enrollment reviewed",
		"enrollment_id", enrollmentID,
		"actor_id", actorID,
		"status", enrollment.Status)

	eventType := events.EnrollmentApproved
	if enrollment.Status == models.EnrollmentRejected {
		eventType = events.EnrollmentRejected
	}
	events.SafePublish(ctx, s.publisher, s.logger, events.NewEvent(eventType, map[string]interface{}{
		"enrollment_id": enrollment.ID,
		"course_id":     enrollment.CourseID,
		"user_id":       enrollment.UserID,
		"actor_id":      actorID,
	}))

	return enrollment, nil
}

func (s *enrollmentService) GetStatus(ctx context.Context, courseID uint, userID string) (*models.EnrollmentStatusSummary, error) {
	summary := &models.EnrollmentStatusSummary{CourseID: courseID}

	enrollment, err := s.repo.Enrollment().GetByCourseAndUser(ctx, s.db, courseID, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return summary, nil
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	summary.Enrolled = enrollment.Status == models.EnrollmentApproved
	summary.Status = &enrollment.Status
	summary.EnrolledAt = &enrollment.EnrolledAt
	summary.ApprovedAt = enrollment.ApprovedAt
	summary.Notes = enrollment.Notes
	return summary, nil
}

func (s *enrollmentService) ListMine(ctx context.Context, userID string) ([]*models.CourseEnrollment, error) {
	enrollments, err := s.repo.Enrollment().ListByUser(ctx, s.db, userID, repositories.EnrollmentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *enrollmentService) ListPendingForCreator(ctx context.Context, creatorID string) ([]*models.CourseEnrollment, error) {
	enrollments, err := s.repo.Enrollment().ListPendingForCreator(ctx, s.db, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *enrollmentService) History(ctx context.Context, courseID uint, actorID string, filters repositories.ListFilters) ([]*models.EnrollmentHistory, error) {
	if _, err := loadOwnedCourse(ctx, s.repo, s.db, courseID, actorID, "view_enrollment_history"); err != nil {
		return nil, err
	}

	entries, err := s.repo.EnrollmentHistory().ListByCourse(ctx, s.db, courseID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollment history: %w", err)
	}
	return entries, nil
}

// loadOwnedCourse fetches a course and checks that userID created it
func loadOwnedCourse(ctx context.Context, repo repositories.Repository, db *gorm.DB, courseID uint, userID, action string) (*models.Course, error) {
	course, err := repo.Course().GetByID(ctx, db, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if !course.IsOwnedBy(userID) {
		return nil, NewPermissionError(userID, courseID, "course", action, "not the course creator")
	}
	return course, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
