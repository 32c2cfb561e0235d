package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/cache"
	"github.com/careerkit/careerkit-service/internal/config"
	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/repositories/casdoor"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	user              repositories.UserRepository
	identity          repositories.IdentityRepository
	course            repositories.CourseRepository
	enrollment        repositories.EnrollmentRepository
	enrollmentHistory repositories.EnrollmentHistoryRepository
	job               repositories.JobRepository
	jobApplication    repositories.JobApplicationRepository
	voiceInterview    repositories.VoiceInterviewRepository
	industryInsight   repositories.IndustryInsightRepository
	coverLetter       repositories.CoverLetterRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB            *gorm.DB
	RedisClient   *redis.Client
	CasdoorConfig config.CasdoorConfig
}

// NewPostgreSQLRepository creates a new repository with all sub-repositories
func NewPostgreSQLRepository(cfg RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(cfg.RedisClient)

	return &PostgreSQLRepository{
		db:                cfg.DB,
		redisClient:       cfg.RedisClient,
		cacheManager:      cacheManager,
		user:              NewUserPostgreSQL(cfg.DB, cacheManager),
		identity:          casdoor.NewIdentityCasdoor(cfg.CasdoorConfig, cfg.RedisClient),
		course:            NewCoursePostgreSQL(cfg.DB, cacheManager),
		enrollment:        NewEnrollmentPostgreSQL(cfg.DB, cacheManager),
		enrollmentHistory: NewEnrollmentHistoryPostgreSQL(cfg.DB),
		job:               NewJobPostgreSQL(cfg.DB),
		jobApplication:    NewJobApplicationPostgreSQL(cfg.DB),
		voiceInterview:    NewVoiceInterviewPostgreSQL(cfg.DB),
		industryInsight:   NewIndustryInsightPostgreSQL(cfg.DB, cacheManager),
		coverLetter:       NewCoverLetterPostgreSQL(cfg.DB),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

// Identity returns the identity provider repository
func (r *PostgreSQLRepository) Identity() repositories.IdentityRepository {
	return r.identity
}

func (r *PostgreSQLRepository) Course() repositories.CourseRepository {
	return r.course
}

func (r *PostgreSQLRepository) Enrollment() repositories.EnrollmentRepository {
	return r.enrollment
}

func (r *PostgreSQLRepository) EnrollmentHistory() repositories.EnrollmentHistoryRepository {
	return r.enrollmentHistory
}

func (r *PostgreSQLRepository) Job() repositories.JobRepository {
	return r.job
}

func (r *PostgreSQLRepository) JobApplication() repositories.JobApplicationRepository {
	return r.jobApplication
}

func (r *PostgreSQLRepository) VoiceInterview() repositories.VoiceInterviewRepository {
	return r.voiceInterview
}

func (r *PostgreSQLRepository) IndustryInsight() repositories.IndustryInsightRepository {
	return r.industryInsight
}

func (r *PostgreSQLRepository) CoverLetter() repositories.CoverLetterRepository {
	return r.coverLetter
}

// Ping checks the health of database and cache connections
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.cacheManager.Enabled() {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(cfg RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{
		config: cfg,
	}
}

// Initialize checks connections and builds the repository
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if _, err := rm.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
	}

	rm.repo = NewPostgreSQLRepository(rm.config)

	return nil
}

func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	return rm.repo.Ping(ctx)
}

// Shutdown gracefully shuts down all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}

	return rm.repo.Close()
}
