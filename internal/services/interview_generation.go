package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/careerkit/careerkit-service/internal/ai"
	"github.com/careerkit/careerkit-service/internal/models"
)

const (
	interviewQuestionCount = 5
	fallbackInterviewScore = 50
	fallbackFeedback       = "Unable to generate feedback. Please try again."
)

// generatedQuestion mirrors the JSON shape the generator is asked to return
type generatedQuestion struct {
	Question       string   `json:"question"`
	ExpectedPoints []string `json:"expectedPoints"`
	Difficulty     string   `json:"difficulty"`
	EstimatedTime  string   `json:"estimatedTime"`
}

type generatedEvaluation struct {
	Score    *int   `json:"score"`
	Feedback string `json:"feedback"`
}

var fallbackQuestions = []generatedQuestion{
	{
		Question:       "Hi there! Thanks for joining me today. To start off, could you tell me a little about yourself and what you do?",
		ExpectedPoints: []string{"Name/Background", "Current role or studies", "Brief introduction"},
		Difficulty:     "Easy",
		EstimatedTime:  "30 seconds",
	},
	{
		Question:       "That's great! So, can you share a bit about your professional journey? How did you get to where you are now?",
		ExpectedPoints: []string{"Career path", "Key experiences", "What brought them here"},
		Difficulty:     "Easy",
		EstimatedTime:  "45 seconds",
	},
	{
		Question:       "Interesting! What are some of the skills or technologies you enjoy working with the most?",
		ExpectedPoints: []string{"Technical skills", "Areas of interest", "What they're good at"},
		Difficulty:     "Easy",
		EstimatedTime:  "1 minute",
	},
	{
		Question:       "Nice! Let's say you're working on a project and you encounter a bug you can't solve immediately. What would you do?",
		ExpectedPoints: []string{"Problem-solving approach", "Resources used", "Collaboration"},
		Difficulty:     "Medium",
		EstimatedTime:  "1 minute",
	},
	{
		Question:       "Almost done! Where do you see yourself growing professionally? What new skills would you like to learn?",
		ExpectedPoints: []string{"Career goals", "Learning interests", "Future aspirations"},
		Difficulty:     "Easy",
		EstimatedTime:  "45 seconds",
	},
}

// InterviewGenerator produces interview questions and evaluates answers.
// Both operations degrade to fixed content when generation fails.
type InterviewGenerator struct {
	generator ai.Generator
	logger    *slog.Logger
}

func NewInterviewGenerator(generator ai.Generator, logger *slog.Logger) *InterviewGenerator {
	return &InterviewGenerator{generator: generator, logger: logger}
}

// ExperienceLevel buckets years of experience for prompt difficulty
func ExperienceLevel(years *int) string {
	switch {
	case years == nil || *years < 2:
		return "entry-level (0-2 years)"
	case *years < 5:
		return "mid-level (2-5 years)"
	default:
		return "senior-level (5+ years)"
	}
}

// Questions returns exactly five questions, each with a fresh id
func (g *InterviewGenerator) Questions(ctx context.Context, user *models.User) []models.InterviewQuestion {
	generated, err := g.generateQuestions(ctx, user)
	if err != nil {
		g.logger.Warn("Interview question generation failed, using fallback set",
			"error", err,
			"user_id", user.ID)
		generated = fallbackQuestions
	}

	questions := make([]models.InterviewQuestion, 0, len(generated))
	for _, q := range generated {
		questions = append(questions, models.InterviewQuestion{
			ID:             uuid.NewString(),
			Question:       q.Question,
			ExpectedPoints: q.ExpectedPoints,
			Difficulty:     q.Difficulty,
			EstimatedTime:  q.EstimatedTime,
		})
	}
	return questions
}

func (g *InterviewGenerator) generateQuestions(ctx context.Context, user *models.User) ([]generatedQuestion, error) {
	text, err := g.generator.Generate(ctx, buildQuestionsPrompt(user))
	if err != nil {
		return nil, err
	}

	questions, err := ai.DecodeJSON[[]generatedQuestion](text)
	if err != nil {
		return nil, err
	}
	if len(questions) != interviewQuestionCount {
		return nil, fmt.Errorf("expected %d questions, got %d", interviewQuestionCount, len(questions))
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("question %d is empty", i+1)
		}
	}
	return questions, nil
}

func buildQuestionsPrompt(user *models.User) string {
	industry := user.Industry
	if industry == "" {
		industry = "general"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly interviewer holding a casual, conversational voice interview for a %s candidate in the %s industry.\n", ExperienceLevel(user.Experience), industry)
	if len(user.Skills) > 0 {
		fmt.Fprintf(&b, "The candidate's skills: %s.\n", strings.Join(user.Skills, ", "))
	}
	if user.Bio != nil && *user.Bio != "" {
		fmt.Fprintf(&b, "About the candidate: %s\n", *user.Bio)
	}
	fmt.Fprintf(&b, "\nGenerate exactly %d interview questions that flow naturally from an introduction to career goals.\n", interviewQuestionCount)
	b.WriteString("Return ONLY a JSON array, no additional text, where each element has this shape:\n")
	b.WriteString(`{"question": "string", "expectedPoints": ["string"], "difficulty": "Easy|Medium|Hard", "estimatedTime": "string"}`)
	return b.String()
}

// Evaluate scores the recorded answers. Failures produce a score of 50 with a
// generic feedback message.
func (g *InterviewGenerator) Evaluate(ctx context.Context, interview *models.VoiceInterview) (int, string) {
	text, err := g.generator.Generate(ctx, buildEvaluationPrompt(interview))
	if err != nil {
		g.logger.Warn("Interview evaluation failed, using fallback", "error", err, "interview_id", interview.ID)
		return fallbackInterviewScore, fallbackFeedback
	}

	eval, err := ai.DecodeJSON[generatedEvaluation](text)
	if err != nil || eval.Score == nil || strings.TrimSpace(eval.Feedback) == "" {
		g.logger.Warn("Interview evaluation unparseable, using fallback", "error", err, "interview_id", interview.ID)
		return fallbackInterviewScore, fallbackFeedback
	}

	return ai.Clamp(*eval.Score, 0, 100), eval.Feedback
}

func buildEvaluationPrompt(interview *models.VoiceInterview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluate this %s. Score the candidate from 0 to 100 and give constructive feedback.\n\n", interview.Category)

	for i, q := range interview.Questions {
		answer := "No response"
		if resp, ok := interview.ResponseFor(q.ID); ok && strings.TrimSpace(resp.Response) != "" {
			answer = resp.Response
		}
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, q.Question)
		fmt.Fprintf(&b, "Expected Points: %s\n", strings.Join(q.ExpectedPoints, ", "))
		fmt.Fprintf(&b, "User Response: %s\n\n", answer)
	}

	b.WriteString(`Return ONLY JSON in this format: {"score": number, "feedback": "string"}`)
	return b.String()
}
