package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/ai"
	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/validator"
)

type coverLetterService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	generator ai.Generator
}

func NewCoverLetterService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, generator ai.Generator) CoverLetterService {
	return &coverLetterService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		generator: generator,
	}
}

// Generate writes a cover letter for the user. Unlike scoring, a failed
// generation is returned to the caller.
func (s *coverLetterService) Generate(ctx context.Context, userID string, req *CoverLetterRequest) (*models.CoverLetter, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	content, err := s.generator.Generate(ctx, buildCoverLetterPrompt(user, req))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}
	content = ai.StripCodeFences(content)

	letter := &models.CoverLetter{
		UserID:         userID,
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		Content:        content,
		Status:         models.CoverLetterCompleted,
	}
	if err := s.repo.CoverLetter().Create(ctx, s.db, letter); err != nil {
		return nil, fmt.Errorf("failed to create cover letter: %w", err)
	}

	s.logger.Info("Cover letter generated", "cover_letter_id", letter.ID, "user_id", userID)
	return letter, nil
}

func (s *coverLetterService) Get(ctx context.Context, id uint, userID string) (*models.CoverLetter, error) {
	return s.loadOwned(ctx, id, userID, "view")
}

func (s *coverLetterService) List(ctx context.Context, userID string) ([]*models.CoverLetter, error) {
	letters, err := s.repo.CoverLetter().ListByUser(ctx, s.db, userID, repositories.ListFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list cover letters: %w", err)
	}
	return letters, nil
}

func (s *coverLetterService) Delete(ctx context.Context, id uint, userID string) error {
	if _, err := s.loadOwned(ctx, id, userID, "delete"); err != nil {
		return err
	}
	if err := s.repo.CoverLetter().Delete(ctx, s.db, id); err != nil {
		return fmt.Errorf("failed to delete cover letter: %w", err)
	}
	return nil
}

func (s *coverLetterService) loadOwned(ctx context.Context, id uint, userID, action string) (*models.CoverLetter, error) {
	letter, err := s.repo.CoverLetter().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCoverLetterNotFound
		}
		return nil, fmt.Errorf("failed to get cover letter: %w", err)
	}
	if letter.UserID != userID {
		return nil, NewPermissionError(userID, id, "cover_letter", action, "not the cover letter owner")
	}
	return letter, nil
}

func buildCoverLetterPrompt(user *models.User, req *CoverLetterRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a professional cover letter for a %s position at %s.\n\n", req.JobTitle, req.CompanyName)
	b.WriteString("About the candidate:\n")
	if user.Industry != "" {
		fmt.Fprintf(&b, "- Industry: %s\n", user.Industry)
	}
	fmt.Fprintf(&b, "- Years of Experience: %d\n", intOrZero(user.Experience))
	if len(user.Skills) > 0 {
		fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(user.Skills, ", "))
	}
	if user.Bio != nil && *user.Bio != "" {
		fmt.Fprintf(&b, "- Professional Background: %s\n", *user.Bio)
	}
	fmt.Fprintf(&b, "\nJob Description:\n%s\n\n", req.JobDescription)
	b.WriteString("Requirements:\n")
	b.WriteString("1. Use a professional, enthusiastic tone\n")
	b.WriteString("2. Highlight relevant skills and experience\n")
	b.WriteString("3. Show understanding of the company's needs\n")
	b.WriteString("4. Keep it concise (max 400 words)\n")
	b.WriteString("5. Use proper business letter formatting in markdown\n")
	b.WriteString("6. Include specific examples of achievements\n")
	b.WriteString("7. Relate candidate's background to job requirements\n\n")
	b.WriteString("Format the letter in markdown.")
	return b.String()
}
