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

func newJobFixture(t *testing.T, gen *scriptedGenerator) (*testEnv, JobService, *models.Job) {
	t.Helper()
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "poster")
	testutil.CreateUser(t, env.db, "applicant")

	svc := NewJobService(env.repo, env.db, env.logger, env.validator, NewMatchScorer(gen, env.logger), env.publisher)
	job, err := svc.Create(context.Background(), &CreateJobRequest{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build Go services",
		Skills:      []string{"Go", "PostgreSQL"},
		Experience:  intPtr(3),
	}, "poster")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return env, svc, job
}

func TestJobService_CreateDefaults(t *testing.T) {
	_, _, job := newJobFixture(t, &scriptedGenerator{})

	if job.Type != models.DefaultJobType || job.Remote != models.DefaultJobRemote {
		t.Errorf("type/remote = %s/%s, want defaults", job.Type, job.Remote)
	}
	if job.Status != models.JobActive {
		t.Errorf("status = %s, want active", job.Status)
	}
}

func TestMatchScorer_Score(t *testing.T) {
	user := &models.User{ID: "u", Skills: []string{"Go"}}
	job := &models.Job{ID: 1, Title: "Engineer", Description: strings.Repeat("x", 800)}

	tests := []struct {
		name string
		gen  *scriptedGenerator
		want int
	}{
		{"plain number", (&scriptedGenerator{}).on("Return ONLY a number", "85"), 85},
		{"number in prose", (&scriptedGenerator{}).on("Return ONLY a number", "Score: 72 out of 100"), 72},
		{"clamped high", (&scriptedGenerator{}).on("Return ONLY a number", "150"), 100},
		{"no integer", (&scriptedGenerator{}).on("Return ONLY a number", "excellent fit"), 50},
		{"service error", (&scriptedGenerator{}).fail("Return ONLY a number", errors.New("timeout")), 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := NewMatchScorer(tt.gen, testutil.NewTestLogger())
			if got := scorer.Score(context.Background(), user, job); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildMatchPrompt(t *testing.T) {
	user := &models.User{Skills: []string{"Go", "SQL"}}
	job := &models.Job{Title: "Engineer", Description: strings.Repeat("a", 600)}

	prompt := buildMatchPrompt(user, job)

	for _, want := range []string{"Skills: Go, SQL", "Experience: 0 years", "Industry: Not specified", "Minimum Experience: 0 years"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, strings.Repeat("a", 501)) {
		t.Error("description should be truncated to 500 characters")
	}
}

func TestJobService_Apply(t *testing.T) {
	gen := (&scriptedGenerator{}).on("Return ONLY a number", "91")
	env, svc, job := newJobFixture(t, gen)
	ctx := context.Background()

	application, err := svc.Apply(ctx, job.ID, "applicant", &ApplyJobRequest{CoverLetter: "Hello"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if application.MatchScore != 91 {
		t.Errorf("match score = %d, want 91", application.MatchScore)
	}
	if application.Status != models.ApplicationPending {
		t.Errorf("status = %s, want pending", application.Status)
	}
	if got := len(env.publisher.EventsOfType(events.JobApplicationSubmitted)); got != 1 {
		t.Errorf("published %d submitted events, want 1", got)
	}

	if _, err := svc.Apply(ctx, job.ID, "applicant", nil); !errors.Is(err, ErrAlreadyApplied) {
		t.Errorf("second Apply() error = %v, want ErrAlreadyApplied", err)
	}
	if gen.calls() != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls())
	}
}

func TestJobService_ApplyFallbackScore(t *testing.T) {
	gen := (&scriptedGenerator{}).fail("Return ONLY a number", errors.New("unavailable"))
	_, svc, job := newJobFixture(t, gen)

	application, err := svc.Apply(context.Background(), job.ID, "applicant", nil)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if application.MatchScore != 50 {
		t.Errorf("match score = %d, want 50", application.MatchScore)
	}
}

func TestJobService_ApplyRules(t *testing.T) {
	_, svc, job := newJobFixture(t, &scriptedGenerator{})
	ctx := context.Background()

	if _, err := svc.Apply(ctx, job.ID, "poster", nil); !errors.Is(err, ErrCannotApplyOwnJob) {
		t.Errorf("own job error = %v", err)
	}
	if _, err := svc.Apply(ctx, 999, "applicant", nil); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("missing job error = %v", err)
	}

	if err := svc.Close(ctx, job.ID, "applicant"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Close() by non-poster error = %v", err)
	}
	if err := svc.Close(ctx, job.ID, "poster"); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := svc.Apply(ctx, job.ID, "applicant", nil); !errors.Is(err, ErrJobClosed) {
		t.Errorf("closed job error = %v", err)
	}

	list, err := svc.List(ctx, JobListFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if list.Total != 0 {
		t.Errorf("closed jobs should not be listed, total = %d", list.Total)
	}
}

func TestJobService_UpdateApplicationStatus(t *testing.T) {
	gen := (&scriptedGenerator{}).on("Return ONLY a number", "64")
	env, svc, job := newJobFixture(t, gen)
	ctx := context.Background()

	application, err := svc.Apply(ctx, job.ID, "applicant", nil)
	if err != nil {
		t.Fatal(err)
	}

	req := &ApplicationStatusRequest{Status: models.ApplicationShortlisted}
	if _, err := svc.UpdateApplicationStatus(ctx, application.ID, "applicant", req); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("non-poster update error = %v", err)
	}

	updated, err := svc.UpdateApplicationStatus(ctx, application.ID, "poster", req)
	if err != nil {
		t.Fatalf("UpdateApplicationStatus() error = %v", err)
	}
	if updated.Status != models.ApplicationShortlisted {
		t.Errorf("status = %s", updated.Status)
	}

	applications, err := svc.ListApplications(ctx, job.ID, "poster")
	if err != nil {
		t.Fatal(err)
	}
	if len(applications) != 1 || applications[0].MatchScore != 64 {
		t.Errorf("match score must be unchanged by status updates: %+v", applications)
	}
	if got := len(env.publisher.EventsOfType(events.JobApplicationStatusChanged)); got != 1 {
		t.Errorf("published %d status events, want 1", got)
	}

	mine, err := svc.ListMyApplications(ctx, "applicant")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 {
		t.Errorf("ListMyApplications() = %d, want 1", len(mine))
	}
}
