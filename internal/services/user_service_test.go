package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/careerkit/careerkit-service/internal/events"
	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/testutil"
)

func newUserFixture(t *testing.T, gen *scriptedGenerator) (*testEnv, UserService) {
	t.Helper()
	env := newTestEnv(t)
	insights := NewInsightService(env.repo, env.db, env.logger, gen, env.publisher)
	return env, NewUserService(env.repo, env.db, env.logger, env.validator, insights, env.publisher, time.Second)
}

func TestUserService_EnsureUser(t *testing.T) {
	env, svc := newUserFixture(t, &scriptedGenerator{})
	env.repo.(*stubIdentityRepo).profiles = map[string]*repositories.IdentityProfile{
		"casdoor-1": {ExternalID: "casdoor-1", Email: "ada@example.com", Name: "Ada"},
	}
	ctx := context.Background()

	user, err := svc.EnsureUser(ctx, SignInIdentity{ExternalID: "casdoor-1"})
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	if user.ID == "" || user.Email != "ada@example.com" || user.Name != "Ada" {
		t.Errorf("provisioned user = %+v", user)
	}

	again, err := svc.EnsureUser(ctx, SignInIdentity{ExternalID: "casdoor-1", Email: "other@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != user.ID {
		t.Errorf("second sign-in created a new user %s != %s", again.ID, user.ID)
	}

	// provider lookup failures are tolerated
	anon, err := svc.EnsureUser(ctx, SignInIdentity{ExternalID: "unknown"})
	if err != nil {
		t.Fatalf("EnsureUser() with unknown provider profile error = %v", err)
	}
	if anon.Email != "" {
		t.Errorf("email = %q, want empty", anon.Email)
	}

	if _, err := svc.EnsureUser(ctx, SignInIdentity{}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("empty identity error = %v", err)
	}
}

func TestUserService_UpdateProfileCreatesInsight(t *testing.T) {
	gen := (&scriptedGenerator{}).on("Software industry", insightJSON)
	env, svc := newUserFixture(t, gen)
	testutil.CreateUser(t, env.db, "u1")
	testutil.CreateUser(t, env.db, "u2")
	ctx := context.Background()

	resp, err := svc.UpdateProfile(ctx, "u1", &ProfileUpdateRequest{
		Industry:   "Software",
		Experience: intPtr(4),
		Skills:     []string{"Go"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if resp.User.Industry != "Software" || resp.Insight == nil {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Insight.DemandLevel != models.DemandHigh {
		t.Errorf("demand level = %q, want normalized High", resp.Insight.DemandLevel)
	}
	if d := resp.Insight.NextUpdate.Sub(resp.Insight.LastUpdated); d != models.InsightRefreshInterval {
		t.Errorf("next update offset = %v, want 7 days", d)
	}
	if got := len(env.publisher.EventsOfType(events.InsightGenerated)); got != 1 {
		t.Errorf("published %d insight events, want 1", got)
	}

	// second user in the same industry reuses the stored insight
	if _, err := svc.UpdateProfile(ctx, "u2", &ProfileUpdateRequest{Industry: "Software"}); err != nil {
		t.Fatal(err)
	}
	if gen.calls() != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls())
	}

	status, err := svc.GetOnboardingStatus(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if !status.IsOnboarded {
		t.Error("user should be onboarded after a profile update")
	}
}

func TestUserService_UpdateProfileRollsBack(t *testing.T) {
	gen := (&scriptedGenerator{}).fail("Finance industry", errors.New("quota exceeded"))
	env, svc := newUserFixture(t, gen)
	testutil.CreateUser(t, env.db, "u1")
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, "u1", &ProfileUpdateRequest{Industry: "Finance", Experience: intPtr(2)})
	if !errors.Is(err, ErrProfileUpdateFailed) {
		t.Fatalf("error = %v, want ErrProfileUpdateFailed", err)
	}
	if err.Error() != "failed to update profile" {
		t.Errorf("message = %q", err.Error())
	}

	user, err := svc.GetByID(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if user.Industry != "" || user.Experience != nil {
		t.Errorf("user was modified: %+v", user)
	}

	var n int64
	env.db.Model(&models.IndustryInsight{}).Count(&n)
	if n != 0 {
		t.Errorf("insight rows = %d, want 0", n)
	}

	status, err := svc.GetOnboardingStatus(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if status.IsOnboarded {
		t.Error("user should not be onboarded")
	}
}

func TestUserService_UpdateProfileValidation(t *testing.T) {
	env, svc := newUserFixture(t, &scriptedGenerator{})
	testutil.CreateUser(t, env.db, "u1")

	_, err := svc.UpdateProfile(context.Background(), "u1", &ProfileUpdateRequest{})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("error = %v, want validation failure", err)
	}
}

func TestInsightService_LazyRefresh(t *testing.T) {
	gen := (&scriptedGenerator{}).on("Software industry", insightJSON)
	env := newTestEnv(t)
	svc := NewInsightService(env.repo, env.db, env.logger, gen, env.publisher).(*insightService)
	ctx := context.Background()

	stale := &models.IndustryInsight{
		Industry:    "Software",
		GrowthRate:  1,
		DemandLevel: models.DemandLow,
		LastUpdated: time.Now().Add(-8 * 24 * time.Hour),
		NextUpdate:  time.Now().Add(-time.Hour),
	}
	if err := env.repo.IndustryInsight().Create(ctx, nil, stale); err != nil {
		t.Fatal(err)
	}

	fresh, err := svc.GetForIndustry(ctx, "Software")
	if err != nil {
		t.Fatalf("GetForIndustry() error = %v", err)
	}
	if fresh.ID != stale.ID || fresh.GrowthRate != 12.5 {
		t.Errorf("insight not refreshed in place: %+v", fresh)
	}
	if !fresh.NextUpdate.After(time.Now()) {
		t.Error("refreshed insight should have a future next_update")
	}
}

func TestInsightService_StaleServedOnFailure(t *testing.T) {
	gen := (&scriptedGenerator{}).fail("Software industry", errors.New("down"))
	env := newTestEnv(t)
	svc := NewInsightService(env.repo, env.db, env.logger, gen, env.publisher)
	ctx := context.Background()

	stale := &models.IndustryInsight{Industry: "Software", GrowthRate: 1, NextUpdate: time.Now().Add(-time.Hour)}
	if err := env.repo.IndustryInsight().Create(ctx, nil, stale); err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetForIndustry(ctx, "Software")
	if err != nil {
		t.Fatalf("GetForIndustry() error = %v", err)
	}
	if got.GrowthRate != 1 {
		t.Errorf("expected the stale row, got %+v", got)
	}

	if _, err := svc.GetForIndustry(ctx, "Farming"); !errors.Is(err, ErrInsightNotFound) {
		t.Errorf("missing industry error = %v", err)
	}
}

func TestInsightService_GetForUserRequiresOnboarding(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInsightService(env.repo, env.db, env.logger, &scriptedGenerator{}, env.publisher)
	testutil.CreateUser(t, env.db, "u1")

	if _, err := svc.GetForUser(context.Background(), "u1"); !errors.Is(err, ErrProfileIncomplete) {
		t.Errorf("error = %v, want ErrProfileIncomplete", err)
	}
}
