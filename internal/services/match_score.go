package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/careerkit/careerkit-service/internal/ai"
	"github.com/careerkit/careerkit-service/internal/models"
)

const matchDescriptionLimit = 500

// MatchScorer rates how well an applicant fits a job on a 0-100 scale
type MatchScorer struct {
	generator ai.Generator
	logger    *slog.Logger
}

func NewMatchScorer(generator ai.Generator, logger *slog.Logger) *MatchScorer {
	return &MatchScorer{generator: generator, logger: logger}
}

// Score never fails: any generation problem yields models.DefaultMatchScore
func (m *MatchScorer) Score(ctx context.Context, applicant *models.User, job *models.Job) int {
	text, err := m.generator.Generate(ctx, buildMatchPrompt(applicant, job))
	if err != nil {
		m.logger.Warn("Match score generation failed, using default",
			"error", err,
			"job_id", job.ID,
			"applicant_id", applicant.ID)
		return models.DefaultMatchScore
	}

	n, ok := ai.FirstInteger(text)
	if !ok {
		m.logger.Warn("Match score response had no number, using default", "job_id", job.ID)
		return models.DefaultMatchScore
	}
	return ai.Clamp(n, 0, 100)
}

func buildMatchPrompt(applicant *models.User, job *models.Job) string {
	industry := applicant.Industry
	if industry == "" {
		industry = "Not specified"
	}

	var b strings.Builder
	b.WriteString("Analyze the match between this candidate and job posting. Return ONLY a number between 0-100.\n\n")
	b.WriteString("Candidate:\n")
	fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(applicant.Skills, ", "))
	fmt.Fprintf(&b, "- Experience: %d years\n", intOrZero(applicant.Experience))
	fmt.Fprintf(&b, "- Industry: %s\n\n", industry)
	b.WriteString("Job:\n")
	fmt.Fprintf(&b, "- Title: %s\n", job.Title)
	fmt.Fprintf(&b, "- Required Skills: %s\n", strings.Join(job.Skills, ", "))
	fmt.Fprintf(&b, "- Minimum Experience: %d years\n", intOrZero(job.Experience))
	fmt.Fprintf(&b, "- Description: %s\n\n", truncateRunes(job.Description, matchDescriptionLimit))
	b.WriteString("Return ONLY a number (e.g., 85). No explanation.")
	return b.String()
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

// truncateRunes cuts s to at most n characters without splitting a rune
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
