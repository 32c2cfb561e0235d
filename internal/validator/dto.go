package validator

import "github.com/careerkit/careerkit-service/internal/models"

// CourseCreateRequest represents the request structure for creating courses
type CourseCreateRequest struct {
	Title          string               `json:"title" validate:"required,min=1,max=200"`
	Platform       string               `json:"platform" validate:"omitempty,max=100"`
	Instructor     string               `json:"instructor" validate:"omitempty,max=200"`
	Description    string               `json:"description" validate:"omitempty,max=5000"`
	Category       string               `json:"category" validate:"required,max=100"`
	JobRole        string               `json:"job_role" validate:"omitempty,max=100"`
	Level          models.CourseLevel   `json:"level" validate:"required,course_level"`
	Duration       string               `json:"duration" validate:"omitempty,max=50"`
	IsPremium      bool                 `json:"is_premium"`
	Price          float64              `json:"price" validate:"min=0"`
	PaymentDetails *string              `json:"payment_details" validate:"omitempty,max=2000"`
	Skills         []string             `json:"skills" validate:"omitempty,max=30,dive,min=1,max=50"`
	ThumbnailURL   *string              `json:"thumbnail_url" validate:"omitempty,url"`
	Videos         []models.CourseVideo `json:"videos" validate:"omitempty,max=200"`
	Documents      []string             `json:"documents" validate:"omitempty,max=50,dive,url"`
	CourseURL      *string              `json:"course_url" validate:"omitempty,url"`
}

// CourseUpdateRequest represents a partial course update
type CourseUpdateRequest struct {
	Title          *string              `json:"title" validate:"omitempty,min=1,max=200"`
	Platform       *string              `json:"platform" validate:"omitempty,max=100"`
	Instructor     *string              `json:"instructor" validate:"omitempty,max=200"`
	Description    *string              `json:"description" validate:"omitempty,max=5000"`
	Category       *string              `json:"category" validate:"omitempty,max=100"`
	JobRole        *string              `json:"job_role" validate:"omitempty,max=100"`
	Level          *models.CourseLevel  `json:"level" validate:"omitempty,course_level"`
	Duration       *string              `json:"duration" validate:"omitempty,max=50"`
	IsPremium      *bool                `json:"is_premium"`
	Price          *float64             `json:"price" validate:"omitempty,min=0"`
	PaymentDetails *string              `json:"payment_details" validate:"omitempty,max=2000"`
	Skills         []string             `json:"skills" validate:"omitempty,max=30,dive,min=1,max=50"`
	ThumbnailURL   *string              `json:"thumbnail_url" validate:"omitempty,url"`
	Videos         []models.CourseVideo `json:"videos" validate:"omitempty,max=200"`
	Documents      []string             `json:"documents" validate:"omitempty,max=50,dive,url"`
	CourseURL      *string              `json:"course_url" validate:"omitempty,url"`
	Status         *models.CourseStatus `json:"status" validate:"omitempty,course_status"`
}

// EnrollRequest carries optional payment evidence for premium courses
type EnrollRequest struct {
	PaymentProof  string `json:"payment_proof" validate:"omitempty,max=500"`
	TransactionID string `json:"transaction_id" validate:"omitempty,max=255"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,payment_method"`
}

// EnrollmentDecisionRequest approves or rejects a pending enrollment
type EnrollmentDecisionRequest struct {
	Status models.EnrollmentStatus `json:"status" validate:"required,enrollment_decision"`
	Notes  string                  `json:"notes" validate:"omitempty,max=1000"`
}

// JobCreateRequest represents the request structure for posting jobs
type JobCreateRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Company     string   `json:"company" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required,max=10000"`
	Location    string   `json:"location" validate:"omitempty,max=200"`
	Type        string   `json:"type" validate:"omitempty,job_type"`
	Remote      string   `json:"remote" validate:"omitempty,remote_type"`
	SalaryMin   *int     `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax   *int     `json:"salary_max" validate:"omitempty,min=0"`
	Skills      []string `json:"skills" validate:"omitempty,max=30,dive,min=1,max=50"`
	Experience  *int     `json:"experience" validate:"omitempty,min=0,max=50"`
}

type ApplyJobRequest struct {
	CoverLetter string `json:"cover_letter" validate:"omitempty,max=10000"`
}

type ApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,application_status"`
}

// ProfileUpdateRequest is the onboarding/profile form
type ProfileUpdateRequest struct {
	Industry   string   `json:"industry" validate:"required,min=1,max=255"`
	Experience *int     `json:"experience" validate:"omitempty,min=0,max=60"`
	Bio        *string  `json:"bio" validate:"omitempty,max=2000"`
	Skills     []string `json:"skills" validate:"omitempty,max=50,dive,min=1,max=50"`
}

type InterviewResponseRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Response   string `json:"response" validate:"required,max=10000"`
}

type CoverLetterRequest struct {
	CompanyName    string `json:"company_name" validate:"required,max=200"`
	JobTitle       string `json:"job_title" validate:"required,max=200"`
	JobDescription string `json:"job_description" validate:"required,min=10,max=10000"`
}
