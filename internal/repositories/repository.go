package repositories

import "context"

// Repository aggregates all repository interfaces
type Repository interface {
	// User domain
	User() UserRepository
	Identity() IdentityRepository

	// Course marketplace
	Course() CourseRepository
	Enrollment() EnrollmentRepository
	EnrollmentHistory() EnrollmentHistoryRepository

	// Jobs
	Job() JobRepository
	JobApplication() JobApplicationRepository

	// Career tools
	VoiceInterview() VoiceInterviewRepository
	IndustryInsight() IndustryInsightRepository
	CoverLetter() CoverLetterRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
