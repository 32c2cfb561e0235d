package services

import (
	"context"
	"encoding/json"

	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
	"github.com/careerkit/careerkit-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use validator request types
type CreateCourseRequest = validator.CourseCreateRequest
type UpdateCourseRequest = validator.CourseUpdateRequest
type EnrollRequest = validator.EnrollRequest
type EnrollmentDecisionRequest = validator.EnrollmentDecisionRequest
type CreateJobRequest = validator.JobCreateRequest
type ApplyJobRequest = validator.ApplyJobRequest
type ApplicationStatusRequest = validator.ApplicationStatusRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest
type InterviewResponseRequest = validator.InterviewResponseRequest
type CoverLetterRequest = validator.CoverLetterRequest

// SignInIdentity is the authenticated principal resolved from a bearer token
type SignInIdentity struct {
	ExternalID string
	Email      string
	Name       string
	AvatarURL  string
}

type CourseListFilters struct {
	Category  string
	JobRole   string
	IsPremium *bool
	Level     string
	Limit     int
	Offset    int
}

type CourseListResponse struct {
	Courses []*models.CourseWithStats `json:"courses"`
	Total   int64                     `json:"total"`
	Limit   int                       `json:"limit"`
	Offset  int                       `json:"offset"`
}

type CourseResponse struct {
	*models.Course
	EnrollmentCount int64 `json:"enrollment_count"`
	IsCreator       bool  `json:"is_creator"`
}

type JobListFilters struct {
	Query  string
	Type   string
	Remote string
	Limit  int
	Offset int
}

type JobListResponse struct {
	Jobs   []*models.Job `json:"jobs"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type ProfileUpdateResponse struct {
	User    *models.User            `json:"user"`
	Insight *models.IndustryInsight `json:"insight"`
}

type OnboardingStatus struct {
	IsOnboarded bool `json:"is_onboarded"`
}

type DashboardResponse struct {
	User         *models.User                  `json:"user"`
	Enrollments  repositories.EnrollmentCounts `json:"enrollments"`
	Applications repositories.ApplicationStats `json:"applications"`
	Interviews   repositories.InterviewStats   `json:"interviews"`
	Insight      *models.IndustryInsight       `json:"insight,omitempty"`
}

type RosterExport struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	// EnsureUser returns the local user for an identity, provisioning it on first sign-in
	EnsureUser(ctx context.Context, identity SignInIdentity) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *ProfileUpdateRequest) (*ProfileUpdateResponse, error)
	GetOnboardingStatus(ctx context.Context, userID string) (*OnboardingStatus, error)
}

type InsightService interface {
	// Generate asks the generative service for a fresh insight; it is not persisted
	Generate(ctx context.Context, industry string) (*models.IndustryInsight, error)
	GetForIndustry(ctx context.Context, industry string) (*models.IndustryInsight, error)
	GetForUser(ctx context.Context, userID string) (*models.IndustryInsight, error)
}

type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest, creatorID string) (*models.Course, error)
	Get(ctx context.Context, id uint, userID string) (*CourseResponse, error)
	Update(ctx context.Context, id uint, req *UpdateCourseRequest, userID string) (*models.Course, error)
	Delete(ctx context.Context, id uint, userID string) error
	List(ctx context.Context, filters CourseListFilters) (*CourseListResponse, error)
	ListMine(ctx context.Context, creatorID string) ([]*models.CourseWithStats, error)
}

type EnrollmentService interface {
	Enroll(ctx context.Context, courseID uint, userID string, req *EnrollRequest) (*models.CourseEnrollment, error)
	Decide(ctx context.Context, enrollmentID uint, actorID string, req *EnrollmentDecisionRequest) (*models.CourseEnrollment, error)
	GetStatus(ctx context.Context, courseID uint, userID string) (*models.EnrollmentStatusSummary, error)
	ListMine(ctx context.Context, userID string) ([]*models.CourseEnrollment, error)
	ListPendingForCreator(ctx context.Context, creatorID string) ([]*models.CourseEnrollment, error)
	History(ctx context.Context, courseID uint, actorID string, filters repositories.ListFilters) ([]*models.EnrollmentHistory, error)
}

type ExportService interface {
	// ExportRoster builds an XLSX roster of a course's enrollments (creator only)
	ExportRoster(ctx context.Context, courseID uint, actorID string) (*RosterExport, error)
}

type JobService interface {
	Create(ctx context.Context, req *CreateJobRequest, posterID string) (*models.Job, error)
	List(ctx context.Context, filters JobListFilters) (*JobListResponse, error)
	ListMine(ctx context.Context, posterID string) ([]*models.Job, error)
	Close(ctx context.Context, id uint, userID string) error
	Apply(ctx context.Context, jobID uint, userID string, req *ApplyJobRequest) (*models.JobApplication, error)
	ListMyApplications(ctx context.Context, userID string) ([]*models.JobApplication, error)
	ListApplications(ctx context.Context, jobID uint, userID string) ([]*models.JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, applicationID uint, userID string, req *ApplicationStatusRequest) (*models.JobApplication, error)
}

type VoiceInterviewService interface {
	Create(ctx context.Context, userID string) (*models.VoiceInterview, error)
	Get(ctx context.Context, id uint, userID string) (*models.VoiceInterview, error)
	List(ctx context.Context, userID string) ([]*models.VoiceInterview, error)
	RecordResponse(ctx context.Context, id uint, userID string, req *InterviewResponseRequest) (*models.VoiceInterview, error)
	Complete(ctx context.Context, id uint, userID string) (*models.VoiceInterview, error)
}

type CoverLetterService interface {
	Generate(ctx context.Context, userID string, req *CoverLetterRequest) (*models.CoverLetter, error)
	Get(ctx context.Context, id uint, userID string) (*models.CoverLetter, error)
	List(ctx context.Context, userID string) ([]*models.CoverLetter, error)
	Delete(ctx context.Context, id uint, userID string) error
}

type DashboardService interface {
	Get(ctx context.Context, userID string) (*DashboardResponse, error)
}

type QuoteService interface {
	// Today returns the upstream quote object verbatim
	Today(ctx context.Context) (json.RawMessage, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	User() UserService
	Insight() InsightService
	Course() CourseService
	Enrollment() EnrollmentService
	Export() ExportService
	Job() JobService
	VoiceInterview() VoiceInterviewService
	CoverLetter() CoverLetterService
	Dashboard() DashboardService
	Quote() QuoteService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
