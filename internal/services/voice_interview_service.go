package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/events"
	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/validator"
)

type voiceInterviewService struct {
	repo       repositories.Repository
	db         *gorm.DB
	logger     *slog.Logger
	validator  *validator.Validator
	interviews *InterviewGenerator
	publisher  events.EventPublisher
}

func NewVoiceInterviewService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, interviews *InterviewGenerator, publisher events.EventPublisher) VoiceInterviewService {
	return &voiceInterviewService{
		repo:       repo,
		db:         db,
		logger:     logger,
		validator:  validator,
		interviews: interviews,
		publisher:  publisher,
	}
}

func (s *voiceInterviewService) Create(ctx context.Context, userID string) (*models.VoiceInterview, error) {
	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	industry := user.Industry
	if industry == "" {
		industry = "General"
	}

	interview := &models.VoiceInterview{
		UserID:    userID,
		Category:  industry + " Interview",
		Language:  "en",
		Questions: s.interviews.Questions(ctx, user),
		Responses: []models.InterviewResponse{},
		Status:    models.InterviewInProgress,
	}

	if err := s.repo.VoiceInterview().Create(ctx, s.db, interview); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	s.logger.Info("Voice interview created", "interview_id", interview.ID, "user_id", userID)
	return interview, nil
}

func (s *voiceInterviewService) Get(ctx context.Context, id uint, userID string) (*models.VoiceInterview, error) {
	return s.loadOwned(ctx, s.db, id, userID, "view")
}

func (s *voiceInterviewService) List(ctx context.Context, userID string) ([]*models.VoiceInterview, error) {
	interviews, err := s.repo.VoiceInterview().ListByUser(ctx, s.db, userID, repositories.ListFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

// RecordResponse stores or replaces the answer to one question
func (s *voiceInterviewService) RecordResponse(ctx context.Context, id uint, userID string, req *InterviewResponseRequest) (*models.VoiceInterview, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	var interview *models.VoiceInterview
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		interview, err = s.loadOwned(ctx, tx, id, userID, "answer")
		if err != nil {
			return err
		}
		if interview.IsCompleted() {
			return ErrInterviewCompleted
		}
		if !interview.HasQuestion(req.QuestionID) {
			return ErrUnknownQuestion
		}

		interview.UpsertResponse(models.InterviewResponse{
			QuestionID: req.QuestionID,
			Response:   req.Response,
			RecordedAt: time.Now(),
		})

		if err := s.repo.VoiceInterview().SaveResponses(ctx, tx, interview); err != nil {
			if errors.Is(err, repositories.ErrConditionFailed) {
				return ErrInterviewCompleted
			}
			return fmt.Errorf("failed to save responses: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return interview, nil
}

// Complete evaluates the interview exactly once
func (s *voiceInterviewService) Complete(ctx context.Context, id uint, userID string) (*models.VoiceInterview, error) {
	interview, err := s.loadOwned(ctx, s.db, id, userID, "complete")
	if err != nil {
		return nil, err
	}
	if interview.IsCompleted() {
		return nil, ErrInterviewCompleted
	}

	score, feedback := s.interviews.Evaluate(ctx, interview)
	now := time.Now()

	interview.OverallScore = &score
	interview.Feedback = &feedback
	interview.Status = models.InterviewCompleted
	interview.CompletedAt = &now

	if err := s.repo.VoiceInterview().Complete(ctx, s.db, interview); err != nil {
		if errors.Is(err, repositories.ErrConditionFailed) {
			return nil, ErrInterviewCompleted
		}
		return nil, fmt.Errorf("failed to complete interview: %w", err)
	}

	s.logger.Info("Voice interview completed", "interview_id", id, "user_id", userID, "score", score)

	events.SafePublish(ctx, s.publisher, s.logger, events.NewEvent(events.InterviewCompleted, map[string]interface{}{
		"interview_id":  id,
		"user_id":       userID,
		"overall_score": score,
		"answered":      len(interview.Responses),
	}))

	return interview, nil
}

func (s *voiceInterviewService) loadOwned(ctx context.Context, tx *gorm.DB, id uint, userID, action string) (*models.VoiceInterview, error) {
	interview, err := s.repo.VoiceInterview().GetByID(ctx, tx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	if interview.UserID != userID {
		return nil, NewPermissionError(userID, id, "interview", action, "not the interview owner")
	}
	return interview, nil
}
