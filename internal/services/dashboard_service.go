package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/repositories"
)

type dashboardService struct {
	repo     repositories.Repository
	db       *gorm.DB
	logger   *slog.Logger
	insights InsightService
}

func NewDashboardService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, insights InsightService) DashboardService {
	return &dashboardService{
		repo:     repo,
		db:       db,
		logger:   logger,
		insights: insights,
	}
}

// Get aggregates the user's activity. The insight is optional: users who have
// not onboarded, or whose industry has no insight yet, get none.
func (s *dashboardService) Get(ctx context.Context, userID string) (*DashboardResponse, error) {
	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	resp := &DashboardResponse{User: user}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.repo.Enrollment().CountByUser(gctx, s.db, userID)
		if err != nil {
			return fmt.Errorf("failed to count enrollments: %w", err)
		}
		resp.Enrollments = *counts
		return nil
	})

	g.Go(func() error {
		stats, err := s.repo.JobApplication().StatsByApplicant(gctx, s.db, userID)
		if err != nil {
			return fmt.Errorf("failed to get application stats: %w", err)
		}
		resp.Applications = *stats
		return nil
	})

	g.Go(func() error {
		stats, err := s.repo.VoiceInterview().StatsByUser(gctx, s.db, userID)
		if err != nil {
			return fmt.Errorf("failed to get interview stats: %w", err)
		}
		resp.Interviews = *stats
		return nil
	})

	if user.IsOnboarded() {
		g.Go(func() error {
			insight, err := s.insights.GetForIndustry(gctx, user.Industry)
			if err != nil {
				if errors.Is(err, ErrInsightNotFound) {
					return nil
				}
				return err
			}
			resp.Insight = insight
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}
