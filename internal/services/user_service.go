package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/events"
	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/validator"
)

const DefaultProfileTxTimeout = 25 * time.Second

type userService struct {
	repo             repositories.Repository
	db               *gorm.DB
	logger           *slog.Logger
	validator        *validator.Validator
	insights         InsightService
	publisher        events.EventPublisher
	profileTxTimeout time.Duration
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, insights InsightService, publisher events.EventPublisher, profileTxTimeout time.Duration) UserService {
	if profileTxTimeout <= 0 {
		profileTxTimeout = DefaultProfileTxTimeout
	}
	return &userService{
		repo:             repo,
		db:               db,
		logger:           logger,
		validator:        validator,
		insights:         insights,
		publisher:        publisher,
		profileTxTimeout: profileTxTimeout,
	}
}

func (s *userService) EnsureUser(ctx context.Context, identity SignInIdentity) (*models.User, error) {
	if identity.ExternalID == "" {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.User().GetByExternalID(ctx, s.db, identity.ExternalID)
	if err == nil {
		return user, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get user by external id: %w", err)
	}

	if identity.Email == "" {
		s.fillFromProvider(ctx, &identity)
	}

	user = &models.User{
		ID:         uuid.NewString(),
		ExternalID: identity.ExternalID,
		Email:      identity.Email,
		Name:       identity.Name,
	}
	if identity.AvatarURL != "" {
		user.ImageURL = &identity.AvatarURL
	}

	if err := s.repo.User().Create(ctx, s.db, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			// concurrent first sign-in
			return s.repo.User().GetByExternalID(ctx, s.db, identity.ExternalID)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User provisioned", "user_id", user.ID, "external_id", user.ExternalID)
	return user, nil
}

// fillFromProvider copies missing identity fields from the identity provider.
// Lookup failures are logged and ignored.
func (s *userService) fillFromProvider(ctx context.Context, identity *SignInIdentity) {
	profile, err := s.repo.Identity().GetProfile(ctx, identity.ExternalID)
	if err != nil {
		s.logger.Warn("Identity profile lookup failed", "external_id", identity.ExternalID, "error", err)
		return
	}
	identity.Email = profile.Email
	if identity.Name == "" {
		identity.Name = profile.Name
	}
	if identity.AvatarURL == "" {
		identity.AvatarURL = profile.AvatarURL
	}
}

func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile writes the profile and ensures an insight exists for the new
// industry in one transaction. Every failure inside it is reported as
// ErrProfileUpdateFailed.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *ProfileUpdateRequest) (*ProfileUpdateResponse, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.profileTxTimeout)
	defer cancel()

	var (
		insight *models.IndustryInsight
		created bool
	)
	err = s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.IndustryInsight().GetByIndustry(txCtx, tx, req.Industry)
		switch {
		case err == nil:
			insight = existing
		case repositories.IsNotFoundError(err):
			insight, err = s.insights.Generate(txCtx, req.Industry)
			if err != nil {
				return err
			}
			if err := s.repo.IndustryInsight().Create(txCtx, tx, insight); err != nil {
				return fmt.Errorf("failed to create industry insight: %w", err)
			}
			created = true
		default:
			return fmt.Errorf("failed to get industry insight: %w", err)
		}

		user.Industry = req.Industry
		user.Experience = req.Experience
		user.Bio = req.Bio
		user.Skills = req.Skills
		if err := s.repo.User().UpdateProfile(txCtx, tx, user); err != nil {
			return fmt.Errorf("failed to update user profile: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Error updating user and industry", "user_id", userID, "industry", req.Industry, "error", err)
		return nil, ErrProfileUpdateFailed
	}

	s.logger.Info("Profile updated", "user_id", userID, "industry", req.Industry, "insight_created", created)

	if created {
		events.SafePublish(ctx, s.publisher, s.logger, events.NewEvent(events.InsightGenerated, map[string]interface{}{
			"insight_id":  insight.ID,
			"industry":    insight.Industry,
			"next_update": insight.NextUpdate,
		}))
	}

	return &ProfileUpdateResponse{User: user, Insight: insight}, nil
}

func (s *userService) GetOnboardingStatus(ctx context.Context, userID string) (*OnboardingStatus, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &OnboardingStatus{IsOnboarded: user.IsOnboarded()}, nil
}
