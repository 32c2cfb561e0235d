package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/ai"
	"github.com/careerkit/careerkit-service/internal/events"
	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/repositories/postgres"
	"github.com/careerkit/careerkit-service/internal/testutil"
	"github.com/careerkit/careerkit-service/internal/validator"
)

type testEnv struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher *events.MockEventPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	logger := testutil.NewTestLogger()

	return &testEnv{
		db:        db,
		repo:      &stubIdentityRepo{Repository: postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})},
		logger:    logger,
		validator: validator.New(),
		publisher: events.NewMockEventPublisher(logger),
	}
}

// stubIdentityRepo replaces the identity provider with an in-memory map
type stubIdentityRepo struct {
	repositories.Repository
	profiles map[string]*repositories.IdentityProfile
}

func (s *stubIdentityRepo) Identity() repositories.IdentityRepository {
	return s
}

func (s *stubIdentityRepo) GetProfile(_ context.Context, externalID string) (*repositories.IdentityProfile, error) {
	if p, ok := s.profiles[externalID]; ok {
		return p, nil
	}
	return nil, repositories.ErrIdentityNotFound
}

// scriptedGenerator answers prompts by matching a substring, and records calls
type scriptedGenerator struct {
	mu      sync.Mutex
	rules   []scriptRule
	prompts []string
}

type scriptRule struct {
	contains string
	text     string
	err      error
}

func (g *scriptedGenerator) on(contains, text string) *scriptedGenerator {
	g.rules = append(g.rules, scriptRule{contains: contains, text: text})
	return g
}

func (g *scriptedGenerator) fail(contains string, err error) *scriptedGenerator {
	g.rules = append(g.rules, scriptRule{contains: contains, err: err})
	return g
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, prompt)
	for _, r := range g.rules {
		if strings.Contains(prompt, r.contains) {
			return r.text, r.err
		}
	}
	return "", errors.New("no scripted response")
}

func (g *scriptedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

var _ ai.Generator = (*scriptedGenerator)(nil)

const insightJSON = "```json\n" + `{
  "salaryRanges": [{"role": "Engineer", "min": 80000, "max": 150000, "median": 110000, "location": "Remote"}],
  "growthRate": 12.5,
  "demandLevel": "high",
  "topSkills": ["Go", "SQL"],
  "marketOutlook": "Positive",
  "keyTrends": ["AI tooling"],
  "recommendedSkills": ["Kubernetes"]
}` + "\n```"

func intPtr(n int) *int { return &n }
