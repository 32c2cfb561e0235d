package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/ai"
	"github.com/careerkit/careerkit-service/internal/events"
	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
)

// generatedInsight mirrors the JSON shape the generator is asked to return
type generatedInsight struct {
	SalaryRanges      []models.SalaryRange `json:"salaryRanges"`
	GrowthRate        float64              `json:"growthRate"`
	DemandLevel       models.DemandLevel   `json:"demandLevel"`
	TopSkills         []string             `json:"topSkills"`
	MarketOutlook     models.MarketOutlook `json:"marketOutlook"`
	KeyTrends         []string             `json:"keyTrends"`
	RecommendedSkills []string             `json:"recommendedSkills"`
}

type insightService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	generator ai.Generator
	publisher events.EventPublisher
	now       func() time.Time
}

func NewInsightService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, generator ai.Generator, publisher events.EventPublisher) InsightService {
	return &insightService{
		repo:      repo,
		db:        db,
		logger:    logger,
		generator: generator,
		publisher: publisher,
		now:       time.Now,
	}
}

// Generate has no fallback; an unusable response is an error
func (s *insightService) Generate(ctx context.Context, industry string) (*models.IndustryInsight, error) {
	text, err := s.generator.Generate(ctx, buildInsightPrompt(industry))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}

	generated, err := ai.DecodeJSON[generatedInsight](text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}

	now := s.now()
	return &models.IndustryInsight{
		Industry:          industry,
		SalaryRanges:      generated.SalaryRanges,
		GrowthRate:        generated.GrowthRate,
		DemandLevel:       normalizeDemand(generated.DemandLevel),
		TopSkills:         generated.TopSkills,
		MarketOutlook:     normalizeOutlook(generated.MarketOutlook),
		KeyTrends:         generated.KeyTrends,
		RecommendedSkills: generated.RecommendedSkills,
		LastUpdated:       now,
		NextUpdate:        now.Add(models.InsightRefreshInterval),
	}, nil
}

// GetForIndustry refreshes a stale row in place; if the refresh fails the
// stale row is returned as is.
func (s *insightService) GetForIndustry(ctx context.Context, industry string) (*models.IndustryInsight, error) {
	insight, err := s.repo.IndustryInsight().GetByIndustry(ctx, s.db, industry)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInsightNotFound
		}
		return nil, fmt.Errorf("failed to get industry insight: %w", err)
	}

	if !insight.IsStale(s.now()) {
		return insight, nil
	}

	fresh, err := s.Generate(ctx, industry)
	if err != nil {
		s.logger.Warn("Industry insight refresh failed, serving stale data", "industry", industry, "error", err)
		return insight, nil
	}

	fresh.ID = insight.ID
	fresh.CreatedAt = insight.CreatedAt
	if err := s.repo.IndustryInsight().Update(ctx, s.db, fresh); err != nil {
		s.logger.Warn("Failed to store refreshed industry insight", "industry", industry, "error", err)
		return insight, nil
	}

	s.logger.Info("Industry insight refreshed", "industry", industry)
	s.publishGenerated(ctx, fresh)
	return fresh, nil
}

// GetForUser returns the insight for the user's industry, creating it on first use
func (s *insightService) GetForUser(ctx context.Context, userID string) (*models.IndustryInsight, error) {
	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsOnboarded() {
		return nil, ErrProfileIncomplete
	}

	insight, err := s.GetForIndustry(ctx, user.Industry)
	if err == nil {
		return insight, nil
	}
	if !errors.Is(err, ErrInsightNotFound) {
		return nil, err
	}

	insight, err = s.Generate(ctx, user.Industry)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IndustryInsight().Create(ctx, s.db, insight); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			// created concurrently by a profile update
			return s.GetForIndustry(ctx, user.Industry)
		}
		return nil, fmt.Errorf("failed to create industry insight: %w", err)
	}

	s.publishGenerated(ctx, insight)
	return insight, nil
}

func (s *insightService) publishGenerated(ctx context.Context, insight *models.IndustryInsight) {
	events.SafePublish(ctx, s.publisher, s.logger, events.NewEvent(events.InsightGenerated, map[string]interface{}{
		"insight_id":  insight.ID,
		"industry":    insight.Industry,
		"next_update": insight.NextUpdate,
	}))
}

func buildInsightPrompt(industry string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the current state of the %s industry and provide insights in ONLY the following JSON format without any additional notes or explanations:\n", industry)
	b.WriteString(`{
  "salaryRanges": [{"role": "string", "min": number, "max": number, "median": number, "location": "string"}],
  "growthRate": number,
  "demandLevel": "High" | "Medium" | "Low",
  "topSkills": ["skill1", "skill2"],
  "marketOutlook": "Positive" | "Neutral" | "Negative",
  "keyTrends": ["trend1", "trend2"],
  "recommendedSkills": ["skill1", "skill2"]
}`)
	b.WriteString("\n\nReturn ONLY the JSON. Include at least 5 common roles for salary ranges. Growth rate should be a percentage. Include at least 5 skills and trends.")
	return b.String()
}

func normalizeDemand(d models.DemandLevel) models.DemandLevel {
	switch strings.ToLower(string(d)) {
	case "high":
		return models.DemandHigh
	case "low":
		return models.DemandLow
	default:
		return models.DemandMedium
	}
}

func normalizeOutlook(o models.MarketOutlook) models.MarketOutlook {
	switch strings.ToLower(string(o)) {
	case "positive":
		return models.OutlookPositive
	case "negative":
		return models.OutlookNegative
	default:
		return models.OutlookNeutral
	}
}
