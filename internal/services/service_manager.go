package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/ai"
	"github.com/careerkit/careerkit-service/internal/events"
	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	// ProfileTxTimeout bounds the profile update transaction, including insight generation
	ProfileTxTimeout time.Duration

	QuoteAPIURL string
	// HTTPClient is used for the quote relay; nil means a client with a 10s timeout
	HTTPClient *http.Client
}

// Dependencies are the external clients services are built on
type Dependencies struct {
	DB        *gorm.DB
	Repo      repositories.Repository
	Logger    *slog.Logger
	Validator *validator.Validator
	Generator ai.Generator
	Publisher events.EventPublisher
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	generator ai.Generator
	publisher events.EventPublisher
	config    ServiceManagerConfig

	// Service instances
	userService           UserService
	insightService        InsightService
	courseService         CourseService
	enrollmentService     EnrollmentService
	exportService         ExportService
	jobService            JobService
	voiceInterviewService VoiceInterviewService
	coverLetterService    CoverLetterService
	dashboardService      DashboardService
	quoteService          QuoteService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(deps Dependencies, config ServiceManagerConfig) ServiceManager {
	generator := deps.Generator
	if generator == nil {
		generator = ai.Disabled{}
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NewMockEventPublisher(deps.Logger)
	}

	return &serviceManager{
		db:        deps.DB,
		repo:      deps.Repo,
		logger:    deps.Logger,
		validator: deps.Validator,
		generator: generator,
		publisher: publisher,
		config:    config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(deps Dependencies) ServiceManager {
	return NewServiceManager(deps, ServiceManagerConfig{
		ProfileTxTimeout: DefaultProfileTxTimeout,
		QuoteAPIURL:      "https://zenquotes.io/api/today",
	})
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if err := sm.initializeServices(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) initializeServices() error {
	if sm.db == nil || sm.repo == nil {
		return fmt.Errorf("database and repository are required")
	}

	sm.insightService = NewInsightService(sm.repo, sm.db, sm.logger, sm.generator, sm.publisher)
	sm.userService = NewUserService(sm.repo, sm.db, sm.logger, sm.validator, sm.insightService, sm.publisher, sm.config.ProfileTxTimeout)
	sm.logger.Info("User and insight services initialized")

	sm.courseService = NewCourseService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.enrollmentService = NewEnrollmentService(sm.repo, sm.db, sm.logger, sm.validator, sm.publisher)
	sm.exportService = NewExportService(sm.repo, sm.db, sm.logger)
	sm.logger.Info("Course services initialized")

	sm.jobService = NewJobService(sm.repo, sm.db, sm.logger, sm.validator, NewMatchScorer(sm.generator, sm.logger), sm.publisher)
	sm.logger.Info("Job service initialized")

	sm.voiceInterviewService = NewVoiceInterviewService(sm.repo, sm.db, sm.logger, sm.validator, NewInterviewGenerator(sm.generator, sm.logger), sm.publisher)
	sm.coverLetterService = NewCoverLetterService(sm.repo, sm.db, sm.logger, sm.validator, sm.generator)
	sm.logger.Info("Career tool services initialized")

	sm.dashboardService = NewDashboardService(sm.repo, sm.db, sm.logger, sm.insightService)
	sm.quoteService = NewQuoteService(sm.config.QuoteAPIURL, sm.config.HTTPClient, sm.logger)

	return nil
}

// guard panics when a getter is called before Initialize
func (sm *serviceManager) guard() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

// Service getters
func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.guard()
	return sm.userService
}

func (sm *serviceManager) Insight() InsightService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.guard()
	return sm.insightService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.guard()
	return sm.courseService
}

func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.guard()
	return sm.enrollmentService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.guard()
	return sm.exportService
}

func (sm *serviceManager) Job() JobService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.guard()
	return sm.jobService
}

func (sm *serviceManager) VoiceInterview() VoiceInterviewService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.guard()
	return sm.voiceInterviewService
}

func (sm *serviceManager) CoverLetter() CoverLetterService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.guard()
	return sm.coverLetterService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.guard()
	return sm.dashboardService
}

func (sm *serviceManager) Quote() QuoteService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.guard()
	return sm.quoteService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

// Shutdown closes the event publisher. The repository is owned by the caller.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.publisher.Close(); err != nil {
		sm.logger.Error("Failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
