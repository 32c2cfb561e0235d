package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/careerkit/careerkit-service/internal/events"
	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/testutil"
)

const questionsJSON = "```json\n" + `[
  {"question": "Tell me about yourself", "expectedPoints": ["Background"], "difficulty": "Easy", "estimatedTime": "30 seconds"},
  {"question": "Describe a project", "expectedPoints": ["Scope"], "difficulty": "Easy", "estimatedTime": "1 minute"},
  {"question": "How do you debug?", "expectedPoints": ["Approach"], "difficulty": "Medium", "estimatedTime": "1 minute"},
  {"question": "What do you enjoy?", "expectedPoints": ["Interests"], "difficulty": "Easy", "estimatedTime": "45 seconds"},
  {"question": "Where are you heading?", "expectedPoints": ["Goals"], "difficulty": "Easy", "estimatedTime": "45 seconds"}
]` + "\n```"

// one more than an interview holds
const sixQuestionsJSON = "```json\n" + `[
  {"question": "Tell me about yourself", "expectedPoints": ["Background"], "difficulty": "Easy", "estimatedTime": "30 seconds"},
  {"question": "Describe a project", "expectedPoints": ["Scope"], "difficulty": "Easy", "estimatedTime": "1 minute"},
  {"question": "How do you debug?", "expectedPoints": ["Approach"], "difficulty": "Medium", "estimatedTime": "1 minute"},
  {"question": "What do you enjoy?", "expectedPoints": ["Interests"], "difficulty": "Easy", "estimatedTime": "45 seconds"},
  {"question": "Where are you heading?", "expectedPoints": ["Goals"], "difficulty": "Easy", "estimatedTime": "45 seconds"},
  {"question": "Any questions for us?", "expectedPoints": ["Curiosity"], "difficulty": "Easy", "estimatedTime": "30 seconds"}
]` + "\n```"

func newInterviewFixture(t *testing.T, gen *scriptedGenerator) (*testEnv, VoiceInterviewService) {
	t.Helper()
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "candidate")
	user.Industry = "Software"
	if err := env.db.Save(user).Error; err != nil {
		t.Fatal(err)
	}
	testutil.CreateUser(t, env.db, "other")

	svc := NewVoiceInterviewService(env.repo, env.db, env.logger, env.validator, NewInterviewGenerator(gen, env.logger), env.publisher)
	return env, svc
}

func TestExperienceLevel(t *testing.T) {
	tests := []struct {
		years *int
		want  string
	}{
		{nil, "entry-level (0-2 years)"},
		{intPtr(1), "entry-level (0-2 years)"},
		{intPtr(2), "mid-level (2-5 years)"},
		{intPtr(4), "mid-level (2-5 years)"},
		{intPtr(5), "senior-level (5+ years)"},
	}
	for _, tt := range tests {
		if got := ExperienceLevel(tt.years); got != tt.want {
			t.Errorf("ExperienceLevel(%v) = %q, want %q", tt.years, got, tt.want)
		}
	}
}

func TestVoiceInterviewService_CreateUsesGeneratedQuestions(t *testing.T) {
	gen := (&scriptedGenerator{}).on("Generate exactly 5", questionsJSON)
	_, svc := newInterviewFixture(t, gen)

	interview, err := svc.Create(context.Background(), "candidate")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if interview.Category != "Software Interview" || interview.Language != "en" {
		t.Errorf("category/language = %q/%q", interview.Category, interview.Language)
	}
	if interview.Status != models.InterviewInProgress {
		t.Errorf("status = %s", interview.Status)
	}
	if len(interview.Questions) != 5 || interview.Questions[0].Question != "Tell me about yourself" {
		t.Fatalf("questions = %+v", interview.Questions)
	}

	seen := map[string]bool{}
	for _, q := range interview.Questions {
		if q.ID == "" || seen[q.ID] {
			t.Fatalf("question ids must be unique and non-empty: %+v", interview.Questions)
		}
		seen[q.ID] = true
	}
}

func TestVoiceInterviewService_CreateFallsBack(t *testing.T) {
	tests := []struct {
		name string
		gen  *scriptedGenerator
	}{
		{"service error", (&scriptedGenerator{}).fail("Generate exactly 5", errors.New("boom"))},
		{"not json", (&scriptedGenerator{}).on("Generate exactly 5", "Here are some questions!")},
		{"too few", (&scriptedGenerator{}).on("Generate exactly 5", `[{"question": "Only one"}]`)},
		{"too many", (&scriptedGenerator{}).on("Generate exactly 5", sixQuestionsJSON)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, svc := newInterviewFixture(t, tt.gen)

			interview, err := svc.Create(context.Background(), "candidate")
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if len(interview.Questions) != 5 {
				t.Fatalf("got %d questions, want 5", len(interview.Questions))
			}
			if !strings.HasPrefix(interview.Questions[0].Question, "Hi there!") {
				t.Errorf("expected fallback questions, got %q", interview.Questions[0].Question)
			}
		})
	}
}

func TestVoiceInterviewService_RecordAndComplete(t *testing.T) {
	gen := (&scriptedGenerator{}).
		on("Generate exactly 5", questionsJSON).
		on(`{"score": number`, `{"score": 120, "feedback": "Strong answers"}`)
	env, svc := newInterviewFixture(t, gen)
	ctx := context.Background()

	interview, err := svc.Create(ctx, "candidate")
	if err != nil {
		t.Fatal(err)
	}
	qid := interview.Questions[2].ID

	if _, err := svc.RecordResponse(ctx, interview.ID, "candidate", &InterviewResponseRequest{QuestionID: qid, Response: "first"}); err != nil {
		t.Fatalf("RecordResponse() error = %v", err)
	}
	updated, err := svc.RecordResponse(ctx, interview.ID, "candidate", &InterviewResponseRequest{QuestionID: qid, Response: "second"})
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Responses) != 1 || updated.Responses[0].Response != "second" {
		t.Errorf("responses should be upserted by question id: %+v", updated.Responses)
	}

	_, err = svc.RecordResponse(ctx, interview.ID, "candidate", &InterviewResponseRequest{QuestionID: "nope", Response: "x"})
	if !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("unknown question error = %v", err)
	}
	_, err = svc.RecordResponse(ctx, interview.ID, "other", &InterviewResponseRequest{QuestionID: qid, Response: "x"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("non-owner error = %v", err)
	}

	completed, err := svc.Complete(ctx, interview.ID, "candidate")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if completed.OverallScore == nil || *completed.OverallScore != 100 {
		t.Errorf("score = %v, want clamped 100", completed.OverallScore)
	}
	if completed.Feedback == nil || *completed.Feedback != "Strong answers" || completed.CompletedAt == nil {
		t.Errorf("completed interview = %+v", completed)
	}

	if _, err := svc.Complete(ctx, interview.ID, "candidate"); !errors.Is(err, ErrInterviewCompleted) {
		t.Errorf("second Complete() error = %v", err)
	}
	if _, err := svc.RecordResponse(ctx, interview.ID, "candidate", &InterviewResponseRequest{QuestionID: qid, Response: "late"}); !errors.Is(err, ErrConflict) {
		t.Errorf("response after completion error = %v", err)
	}
	if got := len(env.publisher.EventsOfType(events.InterviewCompleted)); got != 1 {
		t.Errorf("published %d interview.completed events, want 1", got)
	}

	evalPrompt := gen.prompts[len(gen.prompts)-1]
	if !strings.Contains(evalPrompt, "User Response: second") || !strings.Contains(evalPrompt, "User Response: No response") {
		t.Errorf("evaluation prompt missing responses:\n%s", evalPrompt)
	}
}

func TestVoiceInterviewService_CompleteFallback(t *testing.T) {
	tests := []struct {
		name       string
		evaluation string
	}{
		{"not json", "I cannot evaluate this"},
		{"missing score", `{"feedback": "ok"}`},
		{"missing feedback", `{"score": 80}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := (&scriptedGenerator{}).
				on("Generate exactly 5", questionsJSON).
				on(`{"score": number`, tt.evaluation)
			_, svc := newInterviewFixture(t, gen)
			ctx := context.Background()

			interview, err := svc.Create(ctx, "candidate")
			if err != nil {
				t.Fatal(err)
			}

			completed, err := svc.Complete(ctx, interview.ID, "candidate")
			if err != nil {
				t.Fatal(err)
			}
			if *completed.OverallScore != 50 || *completed.Feedback != "Unable to generate feedback. Please try again." {
				t.Errorf("fallback evaluation = %d / %q", *completed.OverallScore, *completed.Feedback)
			}
		})
	}
}
