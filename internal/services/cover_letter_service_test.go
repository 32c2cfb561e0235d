package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/testutil"
)

func TestCoverLetterService(t *testing.T) {
	gen := (&scriptedGenerator{}).on("cover letter", "Dear Hiring Manager,\n\nI am excited...")
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "u1")
	testutil.CreateUser(t, env.db, "u2")
	svc := NewCoverLetterService(env.repo, env.db, env.logger, env.validator, gen)
	ctx := context.Background()

	req := &CoverLetterRequest{CompanyName: "Acme", JobTitle: "Engineer", JobDescription: "Build reliable Go services"}
	letter, err := svc.Generate(ctx, "u1", req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if letter.Status != models.CoverLetterCompleted || !strings.HasPrefix(letter.Content, "Dear Hiring Manager") {
		t.Errorf("letter = %+v", letter)
	}

	if _, err := svc.Get(ctx, letter.ID, "u2"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Get() by other user error = %v", err)
	}
	list, err := svc.List(ctx, "u1")
	if err != nil || len(list) != 1 {
		t.Fatalf("List() = %v, %v", list, err)
	}

	if err := svc.Delete(ctx, letter.ID, "u1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, letter.ID, "u1"); !errors.Is(err, ErrCoverLetterNotFound) {
		t.Errorf("Get() after delete error = %v", err)
	}
}

func TestCoverLetterService_GenerationFailureSurfaces(t *testing.T) {
	gen := (&scriptedGenerator{}).fail("cover letter", errors.New("overloaded"))
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "u1")
	svc := NewCoverLetterService(env.repo, env.db, env.logger, env.validator, gen)

	_, err := svc.Generate(context.Background(), "u1", &CoverLetterRequest{CompanyName: "Acme", JobTitle: "Engineer", JobDescription: "Build reliable Go services"})
	if !errors.Is(err, ErrUpstreamFailure) {
		t.Fatalf("error = %v, want ErrUpstreamFailure", err)
	}

	var n int64
	env.db.Model(&models.CoverLetter{}).Count(&n)
	if n != 0 {
		t.Errorf("cover letter rows = %d, want 0", n)
	}
}
